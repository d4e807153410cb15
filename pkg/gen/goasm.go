package gen

import (
	"fmt"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/utils"
)

const goPointerSize = 8

// A Go function declared in the generated package and implemented in Go assembly
type goFunc struct {
	Name    string
	Doc     string
	Params  string
	Results string

	// TEXT frame size, "$0-<argument bytes>"
	Frame        string
	Instructions []string

	// Encoded CSR instruction
	Word uint32
}

// Declaration without the func keyword, "ReadWriteMstatus(value uint64) uint64"
func (f goFunc) Signature() string {
	signature := f.Name + "(" + f.Params + ")"

	if f.Results != "" {
		signature += " " + f.Results
	}

	return signature
}

func goType(bits int) string {
	if bits == 32 {
		return "uint32"
	}

	return "uint64"
}

func goLoadStore(bits int) (load, store string) {
	if bits == 32 {
		return "MOVWU", "MOVW"
	}

	return "MOV", "MOV"
}

func goOperandName(op Operation) string {
	switch op {
	case SetBits, ClearBits, ReadSetBits, ReadClearBits:
		return "mask"
	}

	return "value"
}

func goDoc(op Operation, register string) string {
	switch op {
	case Read:
		return "reads " + register
	case Write:
		return "writes value to " + register
	case ReadWrite:
		return "writes value to " + register + " and returns its previous value"
	case SetBits:
		return "sets the bits of mask in " + register
	case ClearBits:
		return "clears the bits of mask in " + register
	case ReadSetBits:
		return "sets the bits of mask in " + register + " and returns its previous value"
	case ReadClearBits:
		return "clears the bits of mask in " + register + " and returns its previous value"
	case WriteImm:
		return "writes the field mask to " + register
	case SetBitsImm:
		return "sets every bit of the field in " + register
	case ClearBitsImm:
		return "clears every bit of the field in " + register
	}

	return op.String() + " " + register
}

func newGoFunc(op Operation, r *csr.Register, bits int, field *FieldPlan) (goFunc, error) {
	if !r.HasAddress {
		return goFunc{}, utils.MakeError(ErrMissingAddress, "%v", r.Name)
	}

	var imm uint64
	name := op.GoName() + utils.CamelCase(r.Name)

	if op.Immediate() {
		imm = field.Layout.BitMask
		name = op.GoName() + field.GoName()
	}

	word, err := EncodeOperation(op, r.Address, imm)
	if err != nil {
		return goFunc{}, fmt.Errorf("%v: %w", name, err)
	}

	typ := goType(bits)
	size := bits / utils.BitsPerByte
	load, store := goLoadStore(bits)
	operand := goOperandName(op)

	f := goFunc{
		Name: name,
		Doc:  name + " " + goDoc(op, r.Name),
		Word: word,
	}

	argsSize := 0
	asm := op.Asm(r.Name, "t0", "t1")

	if op.Immediate() {
		asm = op.Asm(r.Name, "", fmt.Sprintf("0x%x", imm))
		f.Doc = fmt.Sprintf("%v (%v)", f.Doc, field.Field.QualifiedName())
	} else if !op.ZeroSource() {
		f.Params = operand + " " + typ
		f.Instructions = append(f.Instructions, fmt.Sprintf("%v %v+0(FP), X%d", load, operand, regSource))
		argsSize = size
	}

	f.Instructions = append(f.Instructions, fmt.Sprintf("WORD $0x%08x // %v", word, asm))

	if !op.DiscardResult() {
		offset := (argsSize + goPointerSize - 1) / goPointerSize * goPointerSize
		f.Results = typ
		f.Instructions = append(f.Instructions, fmt.Sprintf("%v X%d, ret+%d(FP)", store, regResult, offset))
		argsSize = offset + size
	}

	f.Instructions = append(f.Instructions, "RET")
	f.Frame = fmt.Sprintf("$0-%d", argsSize)

	return f, nil
}

// Go functions of a register: one per register operand accessor, and one per
// immediate accessor and shorthand field
func goFuncs(p *RegisterPlan) ([]goFunc, error) {
	funcs := make([]goFunc, 0, len(p.Operations)+3*len(p.Shorthands))

	for _, op := range p.Operations {
		if op.Immediate() {
			continue
		}

		f, err := newGoFunc(op, p.Register, p.ValueBits, nil)
		if err != nil {
			return nil, err
		}

		funcs = append(funcs, f)
	}

	for _, field := range p.Shorthands {
		for _, op := range []Operation{WriteImm, SetBitsImm, ClearBitsImm} {
			f, err := newGoFunc(op, p.Register, p.ValueBits, field)
			if err != nil {
				return nil, err
			}

			funcs = append(funcs, f)
		}
	}

	return funcs, nil
}
