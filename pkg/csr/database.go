package csr

import (
	"errors"
)

// Ordered collection of register descriptions
type Database struct {
	// Where the database was loaded from, used in diagnostics
	Source string

	registers []*Register
	byName    map[string]*Register
}

// Builds a database from registers in declaration order. Register names must be unique.
func NewDatabase(source string, registers ...*Register) (*Database, error) {
	db := &Database{
		Source:    source,
		registers: make([]*Register, 0, len(registers)),
		byName:    make(map[string]*Register, len(registers)),
	}

	for _, r := range registers {
		if _, exists := db.byName[r.Name]; exists {
			return nil, registerError(ErrDuplicateRegister, r.Name, "declared twice in %v", source)
		}

		db.byName[r.Name] = r
		db.registers = append(db.registers, r)
	}

	return db, nil
}

// All registers in declaration order
func (db *Database) Registers() []*Register {
	return db.registers
}

func (db *Database) Len() int {
	return len(db.registers)
}

// Returns the register with the given name
func (db *Database) Register(name string) (*Register, error) {
	if r, found := db.byName[name]; found {
		return r, nil
	}

	return nil, registerError(ErrUnknownRegister, name, "not found in %v", db.Source)
}

// Returns the registers to generate for a machine word width, in declaration order.
//
// With no names every register implemented on xlen is returned. Otherwise each
// name must be known and implemented on xlen; all offending names are reported.
func (db *Database) Select(xlen XLEN, names ...string) ([]*Register, error) {
	if err := xlen.Validate(); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		result := make([]*Register, 0, len(db.registers))

		for _, r := range db.registers {
			if r.ExistsOn(xlen) {
				result = append(result, r)
			}
		}

		return result, nil
	}

	requested := make(map[string]bool, len(names))
	var errs []error

	for _, name := range names {
		r, err := db.Register(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !r.ExistsOn(xlen) {
			errs = append(errs, registerError(ErrUnsupportedOnXLEN, name, "only implemented on %v", XLEN32))
			continue
		}

		requested[name] = true
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	result := make([]*Register, 0, len(requested))

	for _, r := range db.registers {
		if requested[r.Name] {
			result = append(result, r)
		}
	}

	return result, nil
}
