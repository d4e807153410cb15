// Package settings resolves the options shared by every csrgen command from
// flags, CSRGEN_ environment variables and the config file.
package settings

import (
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Manu343726/csrgen/pkg/csr"
)

// XLEN of the target
func XLEN() (csr.XLEN, error) {
	return csr.ParseXLEN(viper.GetString("xlen"))
}

// Register database given by --database, the builtin one by default
func Database() (*csr.Database, error) {
	path := viper.GetString("database")

	db, err := csr.Open(path)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded register database", "source", db.Source, "registers", db.Len())
	return db, nil
}

// Database and XLEN together, the database validated for the XLEN
func Target() (*csr.Database, csr.XLEN, error) {
	xlen, err := XLEN()
	if err != nil {
		return nil, 0, err
	}

	db, err := Database()
	if err != nil {
		return nil, 0, err
	}

	if err := db.Validate(xlen); err != nil {
		return nil, 0, err
	}

	return db, xlen, nil
}
