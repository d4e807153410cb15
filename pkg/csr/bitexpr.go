package csr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// A bit index that is either a literal or relative to the machine word width
// ("xlen-1" is the top bit on both RV32 and RV64).
type BitExpr struct {
	Relative bool
	Value    int
}

// Literal bit index
func Bit(index int) BitExpr {
	return BitExpr{Value: index}
}

// Bit index relative to XLEN, XLENBit(-1) is the top bit
func XLENBit(delta int) BitExpr {
	return BitExpr{Relative: true, Value: delta}
}

// Prefixes accepted for XLEN relative expressions. The privilege specific
// spellings all resolve to the generation target width.
var xlenNames = []string{"mxlen", "sxlen", "uxlen", "xlen"}

// Parses "12", "xlen", "mxlen-1" or "sxlen - 2"
func ParseBitExpr(s string) (BitExpr, error) {
	expr := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")

	if value, err := strconv.Atoi(expr); err == nil {
		if value < 0 {
			return BitExpr{}, utils.MakeError(ErrInvalidBitExpression, "'%v' is negative", s)
		}
		return Bit(value), nil
	}

	for _, name := range xlenNames {
		rest, found := strings.CutPrefix(expr, name)
		if !found {
			continue
		}

		if rest == "" {
			return XLENBit(0), nil
		}

		if rest[0] != '-' && rest[0] != '+' {
			break
		}

		delta, err := strconv.Atoi(rest)
		if err != nil {
			break
		}

		return XLENBit(delta), nil
	}

	return BitExpr{}, utils.MakeError(ErrInvalidBitExpression, "'%v', expected an integer or xlen[+-N]", s)
}

// Returns the bit index for the given machine word width
func (e BitExpr) Resolve(xlen XLEN) int {
	if e.Relative {
		return int(xlen) + e.Value
	}

	return e.Value
}

func (e BitExpr) String() string {
	switch {
	case !e.Relative:
		return strconv.Itoa(e.Value)
	case e.Value == 0:
		return "xlen"
	default:
		return fmt.Sprintf("xlen%+d", e.Value)
	}
}
