package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterBank(t *testing.T) {
	bank := MakeRegisters[string, uint64](map[string]int{"wide": 64, "narrow": 32, "huge": 128})

	require.NoError(t, bank.Write(0xFFFFFFFF_FFFFFFFF, "wide"))
	require.NoError(t, bank.Write(0xFFFFFFFF_FFFFFFFF, "narrow"))

	value, err := bank.Read("wide")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFF_FFFFFFFF), value)

	value, err = bank.Read("narrow")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFF), value)

	width, err := bank.Width("huge")
	require.NoError(t, err)
	assert.Equal(t, 64, width)

	_, err = bank.Read("missing")
	assert.ErrorIs(t, err, ErrUnknownRegister)
	assert.ErrorIs(t, bank.Write(1, "missing"), ErrUnknownRegister)
}
