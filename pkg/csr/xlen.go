package csr

import (
	"strconv"
	"strings"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// Machine word width (XLEN) of the generation target
type XLEN int

const (
	XLEN32 XLEN = 32
	XLEN64 XLEN = 64
)

// All supported machine word widths
var SupportedXLENs = []XLEN{XLEN32, XLEN64}

// Parses "32", "64", "rv32" or "rv64"
func ParseXLEN(s string) (XLEN, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "rv")

	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, utils.MakeError(ErrInvalidXLEN, "'%v' is not a number", s)
	}

	xlen := XLEN(value)
	if err := xlen.Validate(); err != nil {
		return 0, err
	}

	return xlen, nil
}

func (x XLEN) Validate() error {
	switch x {
	case XLEN32, XLEN64:
		return nil
	}

	return utils.MakeError(ErrInvalidXLEN, "%d, expected 32 or 64", int(x))
}

// Index of the most significant bit of a machine word
func (x XLEN) TopBit() int {
	return int(x) - 1
}

// Largest value representable in a machine word
func (x XLEN) AllOnes() uint64 {
	return utils.AllOnes[uint64](int(x))
}

func (x XLEN) String() string {
	return "RV" + strconv.Itoa(int(x))
}
