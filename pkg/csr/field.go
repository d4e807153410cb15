package csr

import (
	"fmt"
	"strings"
)

// A named, contiguous bit range of a CSR
type Field struct {
	Name        string
	Description string

	// Inclusive bit range, Msb == Lsb for single bit fields
	Msb BitExpr
	Lsb BitExpr

	// Explicit immediate shorthand eligibility, nil to infer it from the layout
	Immediate *bool

	// Name of the owning register, set by AddField
	register string
}

// Field symbol fragment used in constant names
func (f *Field) UpperName() string {
	return strings.ToUpper(f.Name)
}

// "register.field", used in diagnostics
func (f *Field) QualifiedName() string {
	return f.register + "." + f.Name
}

// Whether the field bounds depend on the machine word width
func (f *Field) IsXLENRelative() bool {
	return f.Msb.Relative || f.Lsb.Relative
}

// Resolves the bit range of the field for a machine word width
func (f *Field) Layout(xlen XLEN) (Layout, error) {
	msb, lsb := f.Msb.Resolve(xlen), f.Lsb.Resolve(xlen)

	if msb < lsb {
		return Layout{}, fieldError(ErrMalformedField, f.register, f.Name, "msb %v below lsb %v", f.Msb, f.Lsb)
	}

	layout, err := NewLayout(lsb, msb-lsb+1, xlen)
	if err != nil {
		return Layout{}, fmt.Errorf("%v: %w", f.QualifiedName(), err)
	}

	return layout, nil
}

// Returns whether the field gets immediate shorthand accessors. Fields without
// an explicit flag are eligible when their shifted mask fits the 5 bit immediate.
// An explicit request for a field that does not fit is an error.
func (f *Field) ImmediateEligible(xlen XLEN) (bool, error) {
	layout, err := f.Layout(xlen)
	if err != nil {
		return false, err
	}

	if f.Immediate == nil {
		return layout.FitsImmediate(), nil
	}

	if *f.Immediate && !layout.FitsImmediate() {
		return false, fieldError(ErrImmediateNotEncodable, f.register, f.Name, "mask 0x%X on %v", layout.BitMask, xlen)
	}

	return *f.Immediate, nil
}
