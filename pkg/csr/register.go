package csr

import (
	"fmt"
	"regexp"
	"strings"
)

// Width of the value held by a register
type ValueWidth int

const (
	// The register is as wide as the machine word
	WidthXLEN ValueWidth = 0
	// Always 32 bits, even on RV64 (mvendorid, the upper halves of counters, ...)
	Width32 ValueWidth = 32
	// 64 bit counter, read as a whole on RV64 and through its upper half on RV32
	Width64 ValueWidth = 64
)

func (w ValueWidth) String() string {
	if w == WidthXLEN {
		return "xlen"
	}

	return fmt.Sprint(int(w))
}

// CSR numbers with bits [11:10] set are read-only
const (
	AddressBits           = 12
	readOnlyAddressMask   = 0xC00
	readOnlyAddressPrefix = 0xC00
)

var (
	registerNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	fieldNamePattern    = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Description of a control and status register
type Register struct {
	Name        string
	Description string
	Access      Access

	// Memory mapped registers are not reachable through CSR instructions
	MMIO bool

	Width ValueWidth

	// The register only exists on RV32 targets
	RV32Only bool

	// CSR number, only meaningful if HasAddress is set
	Address    uint16
	HasAddress bool

	// Fields in declaration order
	Fields []*Field
}

// Builds a register, binding its fields to it
func NewRegister(name string, access Access, fields ...*Field) *Register {
	r := &Register{
		Name:   name,
		Access: access,
	}

	for _, f := range fields {
		r.AddField(f)
	}

	return r
}

// Appends a field to the register
func (r *Register) AddField(f *Field) {
	f.register = r.Name
	r.Fields = append(r.Fields, f)
}

// Returns the field with the given name
func (r *Register) Field(name string) (*Field, error) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, nil
		}
	}

	return nil, registerError(ErrUnknownField, r.Name, "no field '%v'", name)
}

func (r *Register) HasFields() bool {
	return len(r.Fields) > 0
}

// Register symbol fragment used in constant names
func (r *Register) UpperName() string {
	return strings.ToUpper(r.Name)
}

// Whether the register is implemented on the given machine word width
func (r *Register) ExistsOn(xlen XLEN) bool {
	return !r.RV32Only || xlen == XLEN32
}

// Size in bits of the values read from or written to the register
func (r *Register) ValueBits(xlen XLEN) int {
	if r.Width == Width32 {
		return 32
	}

	return int(xlen)
}

// Whether the CSR number lies in the read-only address space
func (r *Register) ReadOnlyAddress() bool {
	return r.HasAddress && r.Address&readOnlyAddressMask == readOnlyAddressPrefix
}
