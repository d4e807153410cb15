package gen

import (
	"strings"

	"github.com/Manu343726/csrgen/pkg/csr"
)

// Accessor kinds. Every accessor lowers to a single CSR instruction.
type Operation int

const (
	Read Operation = iota
	Write
	ReadWrite
	SetBits
	ClearBits
	ReadSetBits
	ReadClearBits
	WriteImm
	SetBitsImm
	ClearBitsImm
	ReadWriteImm
	ReadSetBitsImm
	ReadClearBitsImm
)

type operationInfo struct {
	instruction   csr.Instruction
	discardResult bool
	zeroSource    bool
	name          string
	goName        string
}

var operations = [...]operationInfo{
	Read:          {csr.CSRRS, false, true, "read", "Read"},
	Write:         {csr.CSRRW, true, false, "write", "Write"},
	ReadWrite:     {csr.CSRRW, false, false, "read_write", "ReadWrite"},
	SetBits:       {csr.CSRRS, true, false, "set_bits", "SetBits"},
	ClearBits:     {csr.CSRRC, true, false, "clr_bits", "ClearBits"},
	ReadSetBits:   {csr.CSRRS, false, false, "read_set_bits", "ReadSetBits"},
	ReadClearBits: {csr.CSRRC, false, false, "read_clr_bits", "ReadClearBits"},
	WriteImm:      {csr.CSRRWI, true, false, "write_imm", "WriteImm"},
	SetBitsImm:    {csr.CSRRSI, true, false, "set_bits_imm", "SetBitsImm"},
	ClearBitsImm:  {csr.CSRRCI, true, false, "clr_bits_imm", "ClearBitsImm"},

	ReadWriteImm:     {csr.CSRRWI, false, false, "read_write_imm", "ReadWriteImm"},
	ReadSetBitsImm:   {csr.CSRRSI, false, false, "read_set_bits_imm", "ReadSetBitsImm"},
	ReadClearBitsImm: {csr.CSRRCI, false, false, "read_clr_bits_imm", "ReadClearBitsImm"},
}

// Operations of the C, Rust and Go backends in emission order
func Operations() []Operation {
	return []Operation{Read, Write, ReadWrite, SetBits, ClearBits, ReadSetBits, ReadClearBits, WriteImm, SetBitsImm, ClearBitsImm}
}

// Immediate operations returning the previous value. Only the C++ backend
// emits them, as templates over the immediate.
func ReadImmediateOperations() []Operation {
	return []Operation{ReadWriteImm, ReadSetBitsImm, ReadClearBitsImm}
}

func (o Operation) info() operationInfo {
	return operations[o]
}

func (o Operation) Instruction() csr.Instruction {
	return o.info().instruction
}

// The accessor returns nothing (rd is x0)
func (o Operation) DiscardResult() bool {
	return o.info().discardResult
}

// The accessor takes no operand (rs1 is x0)
func (o Operation) ZeroSource() bool {
	return o.info().zeroSource
}

// The accessor operand is a 5 bit immediate
func (o Operation) Immediate() bool {
	return o.Instruction().Immediate()
}

// Assembler mnemonic, using the pseudo instruction when one exists
func (o Operation) Mnemonic() string {
	return o.Instruction().Pseudo(o.DiscardResult(), o.ZeroSource())
}

// snake_case name ("read_set_bits")
func (o Operation) String() string {
	return o.info().name
}

// CamelCase name ("ReadSetBits")
func (o Operation) GoName() string {
	return o.info().goName
}

// Assembly text of the instruction for a register, with the given operand placeholders
func (o Operation) Asm(register, result, source string) string {
	operands := make([]string, 0, 3)

	if !o.DiscardResult() {
		operands = append(operands, result)
	}

	operands = append(operands, register)

	if !o.ZeroSource() {
		operands = append(operands, source)
	}

	return o.Mnemonic() + "    " + strings.Join(operands, ", ")
}

// Returns the accessors generated for a register, in emission order:
//
//	memory mapped          nothing
//	readable               read
//	writable               write
//	readable and writable  read_write
//	fields and writable    set_bits, clr_bits, read_set_bits, read_clr_bits,
//	                       write_imm, set_bits_imm, clr_bits_imm
func RegisterOperations(r *csr.Register) []Operation {
	if r.MMIO {
		return nil
	}

	read, write := r.Access.CanRead(), r.Access.CanWrite()
	ops := make([]Operation, 0, len(operations))

	if read {
		ops = append(ops, Read)
	}
	if write {
		ops = append(ops, Write)
	}
	if read && write {
		ops = append(ops, ReadWrite)
	}
	if r.HasFields() && write {
		ops = append(ops, SetBits, ClearBits, ReadSetBits, ReadClearBits, WriteImm, SetBitsImm, ClearBitsImm)
	}

	return ops
}
