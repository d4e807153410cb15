// Package sim implements a CSR file in memory, executing the Zicsr
// instructions the generated accessors issue. It checks accessor semantics
// without RISC-V hardware.
package sim

import (
	"golang.org/x/exp/constraints"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/utils"
)

// One Zicsr instruction applied to a CSR
type Step[T constraints.Unsigned] struct {
	Instruction csr.Instruction
	Register    string

	// rs1 value, or the 5 bit immediate of the immediate forms
	Source T

	// rs1 is x0. For immediate forms a zero immediate has the same effect.
	ZeroSource bool

	// rd is x0
	DiscardResult bool
}

// CSR file for one machine word width. Not safe for concurrent use.
type File[T constraints.Unsigned] struct {
	xlen      csr.XLEN
	bank      RegisterBank[string, T]
	registers map[string]*csr.Register
}

// Builds a zero initialized file with every CSR instruction addressable register
// of the database implemented on xlen. T must hold a machine word.
func NewFile[T constraints.Unsigned](db *csr.Database, xlen csr.XLEN) (*File[T], error) {
	if err := xlen.Validate(); err != nil {
		return nil, err
	}

	if utils.SizeofBits[T]() < int(xlen) {
		return nil, utils.MakeError(ErrUnsupportedValueType, "%d bits for %v", utils.SizeofBits[T](), xlen)
	}

	registers := utils.GenMap(
		utils.Filter(db.Registers(), func(r *csr.Register) bool { return !r.MMIO && r.ExistsOn(xlen) }),
		func(r *csr.Register) string { return r.Name })

	widths := make(map[string]int, len(registers))
	for name, r := range registers {
		widths[name] = r.ValueBits(xlen)
	}

	return &File[T]{
		xlen:      xlen,
		bank:      MakeRegisters[string, T](widths),
		registers: registers,
	}, nil
}

func (f *File[T]) XLEN() csr.XLEN {
	return f.xlen
}

func (f *File[T]) register(name string) (*csr.Register, error) {
	if r, found := f.registers[name]; found {
		return r, nil
	}

	return nil, utils.MakeError(ErrUnknownRegister, "'%v' on %v", name, f.xlen)
}

// Executes a single instruction, returning the value written to rd (zero when discarded)
func (f *File[T]) Exec(step Step[T]) (T, error) {
	r, err := f.register(step.Register)
	if err != nil {
		return 0, err
	}

	source := step.Source
	zeroSource := step.ZeroSource

	if step.Instruction.Immediate() {
		if uint64(source)&^csr.ImmediateMask != 0 {
			return 0, utils.MakeError(ErrImmediateOutOfRange, "%v %v, %d", step.Instruction, r.Name, source)
		}

		zeroSource = zeroSource || source == 0
	} else if zeroSource {
		source = 0
	}

	reads := step.Instruction.Reads(step.DiscardResult)
	writes := step.Instruction.Writes(zeroSource)

	if reads && !r.Access.CanRead() {
		return 0, utils.MakeError(ErrIllegalInstruction, "%v reads write-only %v", step.Instruction, r.Name)
	}
	if writes && !r.Access.CanWrite() {
		return 0, utils.MakeError(ErrIllegalInstruction, "%v writes read-only %v", step.Instruction, r.Name)
	}

	old, err := f.bank.Read(r.Name)
	if err != nil {
		return 0, err
	}

	if writes {
		var value T

		switch step.Instruction {
		case csr.CSRRW, csr.CSRRWI:
			value = source
		case csr.CSRRS, csr.CSRRSI:
			value = old | source
		case csr.CSRRC, csr.CSRRCI:
			value = old &^ source
		}

		if err := f.bank.Write(value, r.Name); err != nil {
			return 0, err
		}
	}

	if !reads || step.DiscardResult {
		return 0, nil
	}

	return old, nil
}

// Current value of a register, bypassing access rules
func (f *File[T]) Peek(name string) (T, error) {
	if _, err := f.register(name); err != nil {
		return 0, err
	}

	return f.bank.Read(name)
}

// Overwrites a register, bypassing access rules. The value is truncated to the register width.
func (f *File[T]) Poke(name string, value T) error {
	if _, err := f.register(name); err != nil {
		return err
	}

	return f.bank.Write(value, name)
}

// Width in bits of the register value
func (f *File[T]) Width(name string) (int, error) {
	return f.bank.Width(name)
}

// csrr rd, csr
func (f *File[T]) Read(name string) (T, error) {
	return f.Exec(Step[T]{Instruction: csr.CSRRS, Register: name, ZeroSource: true})
}

// csrw csr, rs1
func (f *File[T]) Write(name string, value T) error {
	_, err := f.Exec(Step[T]{Instruction: csr.CSRRW, Register: name, Source: value, DiscardResult: true})
	return err
}

// csrrw rd, csr, rs1
func (f *File[T]) ReadWrite(name string, value T) (T, error) {
	return f.Exec(Step[T]{Instruction: csr.CSRRW, Register: name, Source: value})
}

// csrs csr, rs1
func (f *File[T]) SetBits(name string, mask T) error {
	_, err := f.Exec(Step[T]{Instruction: csr.CSRRS, Register: name, Source: mask, DiscardResult: true})
	return err
}

// csrc csr, rs1
func (f *File[T]) ClearBits(name string, mask T) error {
	_, err := f.Exec(Step[T]{Instruction: csr.CSRRC, Register: name, Source: mask, DiscardResult: true})
	return err
}

// csrrs rd, csr, rs1
func (f *File[T]) ReadSetBits(name string, mask T) (T, error) {
	return f.Exec(Step[T]{Instruction: csr.CSRRS, Register: name, Source: mask})
}

// csrrc rd, csr, rs1
func (f *File[T]) ReadClearBits(name string, mask T) (T, error) {
	return f.Exec(Step[T]{Instruction: csr.CSRRC, Register: name, Source: mask})
}

// csrwi csr, imm
func (f *File[T]) WriteImm(name string, imm T) error {
	_, err := f.Exec(Step[T]{Instruction: csr.CSRRWI, Register: name, Source: imm, DiscardResult: true})
	return err
}

// csrsi csr, imm
func (f *File[T]) SetBitsImm(name string, imm T) error {
	_, err := f.Exec(Step[T]{Instruction: csr.CSRRSI, Register: name, Source: imm, DiscardResult: true})
	return err
}

// csrci csr, imm
func (f *File[T]) ClearBitsImm(name string, imm T) error {
	_, err := f.Exec(Step[T]{Instruction: csr.CSRRCI, Register: name, Source: imm, DiscardResult: true})
	return err
}
