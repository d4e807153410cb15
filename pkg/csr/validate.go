package csr

import (
	"errors"
	"fmt"
)

// Checks a register for a machine word width. Every problem found is
// reported, joined into a single error.
func (r *Register) Validate(xlen XLEN) error {
	if err := xlen.Validate(); err != nil {
		return err
	}

	var errs []error

	if !registerNamePattern.MatchString(r.Name) {
		errs = append(errs, registerError(ErrMalformedRegister, r.Name, "not a valid CSR mnemonic"))
	}

	if !r.Access.CanRead() && !r.Access.CanWrite() {
		errs = append(errs, registerError(ErrInvalidAccess, r.Name, "'%v' is neither readable nor writable", r.Access))
	}

	switch r.Width {
	case WidthXLEN, Width32, Width64:
	default:
		errs = append(errs, registerError(ErrMalformedRegister, r.Name, "unsupported value width %v", r.Width))
	}

	if r.HasAddress {
		if r.Address>>AddressBits != 0 {
			errs = append(errs, registerError(ErrMalformedRegister, r.Name, "address 0x%X does not fit %d bits", r.Address, AddressBits))
		} else if r.ReadOnlyAddress() == r.Access.CanWrite() {
			errs = append(errs, registerError(ErrMalformedRegister, r.Name,
				"access '%v' disagrees with address 0x%03X (read-only space: %v)", r.Access, r.Address, r.ReadOnlyAddress()))
		}
	}

	if r.MMIO || !r.ExistsOn(xlen) {
		return errors.Join(errs...)
	}

	names := make(map[string]bool, len(r.Fields))
	layouts := make([]Layout, 0, len(r.Fields))
	laidOut := make([]*Field, 0, len(r.Fields))
	valueBits := r.ValueBits(xlen)

	for _, f := range r.Fields {
		if names[f.Name] {
			errs = append(errs, fieldError(ErrDuplicateField, r.Name, f.Name, "declared twice"))
			continue
		}
		names[f.Name] = true

		if !fieldNamePattern.MatchString(f.Name) {
			errs = append(errs, fieldError(ErrMalformedField, r.Name, f.Name, "not a valid identifier"))
		}

		layout, err := f.Layout(xlen)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if layout.TopBit() >= valueBits {
			errs = append(errs, fieldError(ErrFieldOutOfRange, r.Name, f.Name, "bit %d outside the %d bit register value", layout.TopBit(), valueBits))
			continue
		}

		if _, err := f.ImmediateEligible(xlen); err != nil {
			errs = append(errs, err)
		}

		for i, other := range layouts {
			if layout.Overlaps(other) {
				errs = append(errs, fieldError(ErrMalformedField, r.Name, f.Name, "overlaps field '%v'", laidOut[i].Name))
			}
		}

		layouts = append(layouts, layout)
		laidOut = append(laidOut, f)
	}

	return errors.Join(errs...)
}

// Checks every register of the database for a machine word width
func (db *Database) Validate(xlen XLEN) error {
	if err := xlen.Validate(); err != nil {
		return err
	}

	var errs []error

	for _, r := range db.registers {
		if err := r.Validate(xlen); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%v (%v): %w", db.Source, xlen, errors.Join(errs...))
	}

	return nil
}
