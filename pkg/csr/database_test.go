package csr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerNames(registers []*Register) []string {
	names := make([]string, 0, len(registers))
	for _, r := range registers {
		names = append(names, r.Name)
	}
	return names
}

func TestNewDatabase_Duplicate(t *testing.T) {
	_, err := NewDatabase("test", NewRegister("mip", MustParseAccess("MRW")), NewRegister("mip", MustParseAccess("MRW")))
	assert.ErrorIs(t, err, ErrDuplicateRegister)
}

func TestDatabase_Register(t *testing.T) {
	db := parseTestDatabase(t, testDatabase)

	r, err := db.Register("mip")
	require.NoError(t, err)
	assert.Equal(t, "MIP", r.UpperName())

	_, err = db.Register("mipp")
	assert.ErrorIs(t, err, ErrUnknownRegister)
}

func TestDatabase_Select(t *testing.T) {
	db := parseTestDatabase(t, testDatabase)

	all32, err := db.Select(XLEN32)
	require.NoError(t, err)
	assert.Equal(t, []string{"mtvec", "cycleh", "mcycle", "mtime", "mip"}, registerNames(all32))

	all64, err := db.Select(XLEN64)
	require.NoError(t, err)
	assert.Equal(t, []string{"mtvec", "mcycle", "mtime", "mip"}, registerNames(all64))

	// declaration order, duplicates collapsed
	some, err := db.Select(XLEN64, "mip", "mtvec", "mip")
	require.NoError(t, err)
	assert.Equal(t, []string{"mtvec", "mip"}, registerNames(some))
}

func TestDatabase_Select_Errors(t *testing.T) {
	db := parseTestDatabase(t, testDatabase)

	_, err := db.Select(XLEN64, "cycleh")
	assert.ErrorIs(t, err, ErrUnsupportedOnXLEN)

	_, err = db.Select(XLEN32, "mip", "nope", "cycleh")
	assert.ErrorIs(t, err, ErrUnknownRegister)
	assert.NotErrorIs(t, err, ErrUnsupportedOnXLEN)

	_, err = db.Select(XLEN64, "nope", "cycleh")
	assert.ErrorIs(t, err, ErrUnknownRegister)
	assert.ErrorIs(t, err, ErrUnsupportedOnXLEN)

	_, err = db.Select(XLEN(8))
	assert.ErrorIs(t, err, ErrInvalidXLEN)
}

func TestRegister_ValueBits(t *testing.T) {
	db := parseTestDatabase(t, testDatabase)

	for name, expected := range map[string][2]int{"mtvec": {32, 64}, "cycleh": {32, 32}, "mcycle": {32, 64}} {
		r, err := db.Register(name)
		require.NoError(t, err)
		assert.Equal(t, expected[0], r.ValueBits(XLEN32), name)
		assert.Equal(t, expected[1], r.ValueBits(XLEN64), name)
	}
}
