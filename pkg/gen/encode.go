package gen

import (
	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Integer registers used by the Go backend. Go assembly treats X5 and X6
// (t0 and t1) as scratch registers.
const (
	regZero   uint32 = 0
	regResult uint32 = 5
	regSource uint32 = 6

	opcodeSystem uint32 = 0b1110011
)

// Fields of the I-type SYSTEM encoding used by the Zicsr instructions
type encoding struct {
	csr    uint32
	rs1    uint32
	funct3 uint32
	rd     uint32
}

func (e encoding) word() uint32 {
	return e.csr<<20 | e.rs1<<15 | e.funct3<<12 | e.rd<<7 | opcodeSystem
}

// Encodes a CSR instruction. rs1 is a register number, or the 5 bit immediate
// for the immediate forms.
func Encode(instruction csr.Instruction, address uint16, rd, rs1 uint32) (uint32, error) {
	if uint32(address)>>csr.AddressBits != 0 {
		return 0, utils.MakeError(csr.ErrMalformedRegister, "address 0x%X does not fit %d bits", address, csr.AddressBits)
	}

	if rd > 31 {
		return 0, utils.MakeError(csr.ErrFieldOutOfRange, "rd x%d", rd)
	}

	if uint64(rs1)&^csr.ImmediateMask != 0 {
		if instruction.Immediate() {
			return 0, utils.MakeError(csr.ErrImmediateNotEncodable, "%v immediate %d", instruction, rs1)
		}

		return 0, utils.MakeError(csr.ErrFieldOutOfRange, "rs1 x%d", rs1)
	}

	return encoding{
		csr:    uint32(address),
		rs1:    rs1,
		funct3: instruction.Funct3(),
		rd:     rd,
	}.word(), nil
}

// Encodes the instruction of an accessor. imm is only used by immediate accessors.
func EncodeOperation(op Operation, address uint16, imm uint64) (uint32, error) {
	rd, rs1 := regResult, regSource

	if op.DiscardResult() {
		rd = regZero
	}

	switch {
	case op.Immediate():
		if imm&^csr.ImmediateMask != 0 {
			return 0, utils.MakeError(csr.ErrImmediateNotEncodable, "%v immediate 0x%X", op.Instruction(), imm)
		}
		rs1 = uint32(imm)
	case op.ZeroSource():
		rs1 = regZero
	}

	return Encode(op.Instruction(), address, rd, rs1)
}

// Decoded fields of a CSR instruction word
type Decoded struct {
	Instruction csr.Instruction
	Address     uint16
	Rd          uint32
	Rs1         uint32
}

// Decodes a Zicsr instruction word, returning false for any other instruction
func Decode(word uint32) (Decoded, bool) {
	if word&0x7F != opcodeSystem {
		return Decoded{}, false
	}

	funct3 := (word >> 12) & 0x7

	for _, instruction := range csr.Instructions() {
		if instruction.Funct3() == funct3 {
			return Decoded{
				Instruction: instruction,
				Address:     uint16(word >> 20),
				Rd:          (word >> 7) & 0x1F,
				Rs1:         (word >> 15) & 0x1F,
			}, true
		}
	}

	return Decoded{}, false
}
