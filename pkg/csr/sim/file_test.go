package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/csrgen/pkg/csr"
)

func newFile64(t *testing.T) *File[uint64] {
	t.Helper()

	f, err := NewFile[uint64](csr.MustDefault(), csr.XLEN64)
	require.NoError(t, err)
	return f
}

func TestNewFile(t *testing.T) {
	_, err := NewFile[uint32](csr.MustDefault(), csr.XLEN64)
	assert.ErrorIs(t, err, ErrUnsupportedValueType)

	_, err = NewFile[uint64](csr.MustDefault(), csr.XLEN(48))
	assert.ErrorIs(t, err, csr.ErrInvalidXLEN)

	f, err := NewFile[uint32](csr.MustDefault(), csr.XLEN32)
	require.NoError(t, err)
	assert.Equal(t, csr.XLEN32, f.XLEN())
}

func TestFile_UnimplementedRegisters(t *testing.T) {
	f := newFile64(t)

	for _, name := range []string{"cycleh", "mstatush", "mtime", "nope"} {
		_, err := f.Read(name)
		assert.ErrorIs(t, err, ErrUnknownRegister, name)
	}

	f32, err := NewFile[uint32](csr.MustDefault(), csr.XLEN32)
	require.NoError(t, err)
	_, err = f32.Read("cycleh")
	assert.NoError(t, err)
}

func TestFile_ReadWrite(t *testing.T) {
	f := newFile64(t)

	require.NoError(t, f.Write("mscratch", 0xDEADBEEFCAFE))
	value, err := f.Read("mscratch")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEFCAFE), value)

	old, err := f.ReadWrite("mscratch", 0x1234)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEFCAFE), old)

	value, err = f.Peek("mscratch")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1234), value)
}

func TestFile_SetClearBits(t *testing.T) {
	f := newFile64(t)

	require.NoError(t, f.Poke("mstatus", 0x1800))
	require.NoError(t, f.SetBits("mstatus", 0x8))

	value, err := f.Peek("mstatus")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1808), value)

	old, err := f.ReadClearBits("mstatus", 0x1800)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1808), old)

	old, err = f.ReadSetBits("mstatus", 0x80)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x8), old)

	require.NoError(t, f.ClearBits("mstatus", 0x8))
	value, err = f.Peek("mstatus")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x80), value)
}

func TestFile_Immediates(t *testing.T) {
	f := newFile64(t)

	require.NoError(t, f.SetBitsImm("mip", 0x8))
	require.NoError(t, f.SetBitsImm("mip", 0x1))
	value, err := f.Peek("mip")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x9), value)

	require.NoError(t, f.ClearBitsImm("mip", 0x8))
	value, err = f.Peek("mip")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1), value)

	require.NoError(t, f.WriteImm("mip", 0x1F))
	value, err = f.Peek("mip")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1F), value)

	for _, imm := range []uint64{0x20, 0x80, 0xFFFF} {
		assert.ErrorIs(t, f.SetBitsImm("mip", imm), ErrImmediateOutOfRange)
		assert.ErrorIs(t, f.ClearBitsImm("mip", imm), ErrImmediateOutOfRange)
		assert.ErrorIs(t, f.WriteImm("mip", imm), ErrImmediateOutOfRange)
	}
}

func TestFile_ReadOnlyRegister(t *testing.T) {
	f := newFile64(t)

	require.NoError(t, f.Poke("cycle", 42))

	value, err := f.Read("cycle")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), value)

	assert.ErrorIs(t, f.Write("cycle", 1), ErrIllegalInstruction)
	assert.ErrorIs(t, f.SetBits("cycle", 1), ErrIllegalInstruction)
	assert.ErrorIs(t, f.ClearBitsImm("cycle", 1), ErrIllegalInstruction)

	// csrrs and csrrc with a zero source do not write
	value, err = f.Exec(Step[uint64]{Instruction: csr.CSRRC, Register: "cycle", ZeroSource: true})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), value)

	value, err = f.Exec(Step[uint64]{Instruction: csr.CSRRSI, Register: "cycle", Source: 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), value)
}

func TestFile_ZeroSourceIgnoresValue(t *testing.T) {
	f := newFile64(t)

	require.NoError(t, f.Poke("mscratch", 7))

	_, err := f.Exec(Step[uint64]{Instruction: csr.CSRRW, Register: "mscratch", Source: 0xFF, ZeroSource: true, DiscardResult: true})
	require.NoError(t, err)

	value, err := f.Peek("mscratch")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), value)
}

func TestFile_DiscardedResult(t *testing.T) {
	f := newFile64(t)

	require.NoError(t, f.Poke("mscratch", 7))
	value, err := f.Exec(Step[uint64]{Instruction: csr.CSRRS, Register: "mscratch", Source: 8, DiscardResult: true})
	require.NoError(t, err)
	assert.Zero(t, value)

	value, err = f.Peek("mscratch")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), value)
}

func TestFile_Width32RegisterOnRV64(t *testing.T) {
	f := newFile64(t)

	width, err := f.Width("mcounteren")
	require.NoError(t, err)
	assert.Equal(t, 32, width)

	require.NoError(t, f.Write("mcounteren", 0xFFFFFFFF_FFFFFFFF))
	value, err := f.Read("mcounteren")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFF), value)

	width, err = f.Width("mcycle")
	require.NoError(t, err)
	assert.Equal(t, 64, width)
}

func checkFieldProperties[T interface{ ~uint32 | ~uint64 }](t *testing.T, xlen csr.XLEN) {
	db := csr.MustDefault()
	f, err := NewFile[T](db, xlen)
	require.NoError(t, err)

	var pattern uint64 = 0xA5A5A5A5A5A5A5A5

	for _, r := range db.Registers() {
		if r.MMIO || !r.ExistsOn(xlen) || !r.Access.CanWrite() {
			continue
		}

		valueMask := T(xlen.AllOnes())
		if r.ValueBits(xlen) == 32 {
			valueMask = T(0xFFFFFFFF)
		}

		for _, field := range r.Fields {
			layout, err := field.Layout(xlen)
			require.NoError(t, err)

			mask := T(layout.BitMask)
			name := xlen.String() + " " + field.QualifiedName()
			initial := T(pattern) & valueMask

			require.NoError(t, f.Poke(r.Name, initial))
			require.NoError(t, f.SetBits(r.Name, mask))
			value, err := f.Read(r.Name)
			require.NoError(t, err)
			assert.Equal(t, initial|mask, value, name)
			assert.Equal(t, layout.AllSetMask, layout.Extract(uint64(value)), name)

			require.NoError(t, f.ClearBits(r.Name, mask))
			value, err = f.Read(r.Name)
			require.NoError(t, err)
			assert.Equal(t, initial&^mask, value, name)
			assert.Zero(t, layout.Extract(uint64(value)), name)

			written, err := f.ReadWrite(r.Name, mask)
			require.NoError(t, err)
			assert.Equal(t, initial&^mask, written, name)
			value, err = f.Read(r.Name)
			require.NoError(t, err)
			assert.Equal(t, mask, value, name)

			if layout.FitsImmediate() {
				require.NoError(t, f.Poke(r.Name, 0))
				require.NoError(t, f.SetBitsImm(r.Name, mask))
				value, err = f.Read(r.Name)
				require.NoError(t, err)
				assert.Equal(t, mask, value, name)

				require.NoError(t, f.ClearBitsImm(r.Name, mask))
				value, err = f.Read(r.Name)
				require.NoError(t, err)
				assert.Zero(t, value, name)
			}
		}
	}
}

func TestFile_FieldProperties(t *testing.T) {
	t.Run("RV32", func(t *testing.T) { checkFieldProperties[uint32](t, csr.XLEN32) })
	t.Run("RV64", func(t *testing.T) { checkFieldProperties[uint64](t, csr.XLEN64) })
}
