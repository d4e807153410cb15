package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Manu343726/csrgen/pkg/csr"
)

func TestRegisterOperations(t *testing.T) {
	field := func() *csr.Field {
		return &csr.Field{Name: "f", Msb: csr.Bit(0), Lsb: csr.Bit(0)}
	}

	mmio := csr.NewRegister("mtime", csr.MustParseAccess("MRW"), field())
	mmio.MMIO = true

	tests := []struct {
		name     string
		register *csr.Register
		expected []Operation
	}{
		{"memory mapped", mmio, nil},
		{"read only", csr.NewRegister("cycle", csr.MustParseAccess("URO")), []Operation{Read}},
		{"read only with fields", csr.NewRegister("cycle", csr.MustParseAccess("URO"), field()), []Operation{Read}},
		{"write only", csr.NewRegister("x", csr.MustParseAccess("MWO")), []Operation{Write}},
		{"read write", csr.NewRegister("mscratch", csr.MustParseAccess("MRW")), []Operation{Read, Write, ReadWrite}},
		{
			"read write with fields",
			csr.NewRegister("mstatus", csr.MustParseAccess("MRW"), field()),
			[]Operation{Read, Write, ReadWrite, SetBits, ClearBits, ReadSetBits, ReadClearBits, WriteImm, SetBitsImm, ClearBitsImm},
		},
		{
			"write only with fields",
			csr.NewRegister("x", csr.MustParseAccess("MWO"), field()),
			[]Operation{Write, SetBits, ClearBits, ReadSetBits, ReadClearBits, WriteImm, SetBitsImm, ClearBitsImm},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := RegisterOperations(tt.register)
			if tt.expected == nil {
				assert.Empty(t, ops)
			} else {
				assert.Equal(t, tt.expected, ops)
			}
		})
	}
}

func TestOperation_Instruction(t *testing.T) {
	tests := []struct {
		op          Operation
		instruction csr.Instruction
		mnemonic    string
		asm         string
	}{
		{Read, csr.CSRRS, "csrr", "csrr    %0, mip"},
		{Write, csr.CSRRW, "csrw", "csrw    mip, %1"},
		{ReadWrite, csr.CSRRW, "csrrw", "csrrw    %0, mip, %1"},
		{SetBits, csr.CSRRS, "csrs", "csrs    mip, %1"},
		{ClearBits, csr.CSRRC, "csrc", "csrc    mip, %1"},
		{ReadSetBits, csr.CSRRS, "csrrs", "csrrs    %0, mip, %1"},
		{ReadClearBits, csr.CSRRC, "csrrc", "csrrc    %0, mip, %1"},
		{WriteImm, csr.CSRRWI, "csrwi", "csrwi    mip, %1"},
		{SetBitsImm, csr.CSRRSI, "csrsi", "csrsi    mip, %1"},
		{ClearBitsImm, csr.CSRRCI, "csrci", "csrci    mip, %1"},
		{ReadWriteImm, csr.CSRRWI, "csrrwi", "csrrwi    %0, mip, %1"},
		{ReadSetBitsImm, csr.CSRRSI, "csrrsi", "csrrsi    %0, mip, %1"},
		{ReadClearBitsImm, csr.CSRRCI, "csrrci", "csrrci    %0, mip, %1"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.instruction, tt.op.Instruction())
			assert.Equal(t, tt.mnemonic, tt.op.Mnemonic())
			assert.Equal(t, tt.asm, tt.op.Asm("mip", "%0", "%1"))
			assert.Equal(t, tt.instruction.Immediate(), tt.op.Immediate())
		})
	}
}

func TestOperations_Order(t *testing.T) {
	ops := Operations()
	assert.Len(t, ops, 10)
	assert.Equal(t, "read", ops[0].String())
	assert.Equal(t, "ClearBitsImm", ops[9].GoName())

	for _, op := range ReadImmediateOperations() {
		assert.NotContains(t, ops, op)
		assert.True(t, op.Immediate(), op.String())
		assert.False(t, op.DiscardResult(), op.String())
	}
	assert.Equal(t, "read_clr_bits_imm", ReadClearBitsImm.String())
}
