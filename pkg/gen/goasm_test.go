package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/csr/sim"
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Register value after the accessor and the value it returns
func applyOperation(op Operation, old, operand uint64) (value, result uint64) {
	switch op {
	case Read:
		return old, old
	case Write, WriteImm:
		return operand, 0
	case ReadWrite:
		return operand, old
	case SetBits, SetBitsImm:
		return old | operand, 0
	case ClearBits, ClearBitsImm:
		return old &^ operand, 0
	case ReadSetBits:
		return old | operand, old
	case ReadClearBits:
		return old &^ operand, old
	}

	return old, 0
}

func TestGoFunc_Frames(t *testing.T) {
	r, err := csr.MustDefault().Register("mscratch")
	require.NoError(t, err)

	cases := []struct {
		op           Operation
		bits         int
		frame        string
		signature    string
		instructions []string
	}{
		{Read, 64, "$0-8", "ReadMscratch() uint64", []string{"WORD $0x340022f3 // csrr    t0, mscratch", "MOV X5, ret+0(FP)", "RET"}},
		{Write, 64, "$0-8", "WriteMscratch(value uint64)", []string{"MOV value+0(FP), X6", "WORD $0x34031073 // csrw    mscratch, t1", "RET"}},
		{ReadWrite, 64, "$0-16", "ReadWriteMscratch(value uint64) uint64", []string{"MOV value+0(FP), X6", "WORD $0x340312f3 // csrrw    t0, mscratch, t1", "MOV X5, ret+8(FP)", "RET"}},
		{Read, 32, "$0-4", "ReadMscratch() uint32", []string{"WORD $0x340022f3 // csrr    t0, mscratch", "MOVW X5, ret+0(FP)", "RET"}},
		{ReadSetBits, 32, "$0-12", "ReadSetBitsMscratch(mask uint32) uint32", []string{"MOVWU mask+0(FP), X6", "WORD $0x340322f3 // csrrs    t0, mscratch, t1", "MOVW X5, ret+8(FP)", "RET"}},
	}

	for _, c := range cases {
		t.Run(c.signature, func(t *testing.T) {
			f, err := newGoFunc(c.op, r, c.bits, nil)
			require.NoError(t, err)

			assert.Equal(t, c.frame, f.Frame)
			assert.Equal(t, c.signature, f.Signature())
			assert.Equal(t, c.instructions, f.Instructions)
		})
	}
}

func TestGoFunc_MissingAddress(t *testing.T) {
	_, err := newGoFunc(Read, csr.NewRegister("scratch", csr.MustParseAccess("MRW")), 64, nil)
	assert.ErrorIs(t, err, ErrMissingAddress)
}

// Decodes every accessor word of the default database and runs it on a
// simulated CSR file
func TestGoFuncs_ExecuteOnSimulator(t *testing.T) {
	db := csr.MustDefault()

	plan, err := NewPlan(db, csr.XLEN64, nil, nil)
	require.NoError(t, err)

	file, err := sim.NewFile[uint64](db, csr.XLEN64)
	require.NoError(t, err)

	for _, r := range plan.Registers {
		type accessor struct {
			op      Operation
			field   *FieldPlan
			operand uint64
		}

		mask := utils.AllOnes[uint64](r.ValueBits)
		accessors := []accessor{}

		for _, op := range r.Operations {
			if !op.Immediate() {
				accessors = append(accessors, accessor{op: op, operand: 0x0123456789abcdef & mask})
			}
		}

		for _, field := range r.Shorthands {
			for _, op := range []Operation{WriteImm, SetBitsImm, ClearBitsImm} {
				accessors = append(accessors, accessor{op: op, field: field, operand: field.Layout.BitMask})
			}
		}

		for _, a := range accessors {
			f, err := newGoFunc(a.op, r.Register, r.ValueBits, a.field)
			require.NoError(t, err)

			decoded, ok := Decode(f.Word)
			require.True(t, ok, f.Name)

			assert.Equal(t, a.op.Instruction(), decoded.Instruction, f.Name)
			assert.Equal(t, r.Register.Address, decoded.Address, f.Name)

			step := sim.Step[uint64]{
				Instruction:   decoded.Instruction,
				Register:      r.Register.Name,
				DiscardResult: decoded.Rd == regZero,
			}

			switch {
			case a.op.Immediate():
				assert.Equal(t, a.operand, uint64(decoded.Rs1), f.Name)
				step.Source = uint64(decoded.Rs1)
			case decoded.Rs1 == regZero:
				step.ZeroSource = true
			default:
				assert.Equal(t, uint32(regSource), decoded.Rs1, f.Name)
				step.Source = a.operand
			}

			if !step.DiscardResult {
				assert.Equal(t, uint32(regResult), decoded.Rd, f.Name)
			}

			old := 0xf0f0f0f0f0f0f0f0 & mask
			require.NoError(t, file.Poke(r.Register.Name, old))

			result, err := file.Exec(step)
			require.NoError(t, err, f.Name)

			value, expected := applyOperation(a.op, old, a.operand)
			current, err := file.Peek(r.Register.Name)
			require.NoError(t, err)

			assert.Equal(t, value, current, f.Name)
			assert.Equal(t, expected, result, f.Name)
		}
	}
}
