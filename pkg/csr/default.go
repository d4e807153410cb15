package csr

import (
	"bytes"
	_ "embed"
)

//go:embed data/riscv-csr.yaml
var defaultDatabase []byte

// Name of the embedded database in diagnostics
const DefaultSource = "<builtin riscv-csr.yaml>"

// Returns the embedded RISC-V privileged architecture register database
func Default() (*Database, error) {
	return Parse(bytes.NewReader(defaultDatabase), DefaultSource)
}

// Must version of Default, panics if the embedded database is malformed
func MustDefault() *Database {
	db, err := Default()
	if err != nil {
		panic(err)
	}

	return db
}

// Raw YAML of the embedded database
func DefaultYAML() []byte {
	return defaultDatabase
}

// Loads the database at path, or the embedded one when path is empty
func Open(path string) (*Database, error) {
	if path == "" {
		return Default()
	}

	return Load(path)
}
