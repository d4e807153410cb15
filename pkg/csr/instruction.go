package csr

// Zicsr instructions. Every accessor issues exactly one of them.
type Instruction int

const (
	CSRRW Instruction = iota + 1
	CSRRS
	CSRRC
	CSRRWI
	CSRRSI
	CSRRCI
)

var instructions = []Instruction{CSRRW, CSRRS, CSRRC, CSRRWI, CSRRSI, CSRRCI}

// All Zicsr instructions
func Instructions() []Instruction {
	return instructions
}

func (i Instruction) Mnemonic() string {
	switch i {
	case CSRRW:
		return "csrrw"
	case CSRRS:
		return "csrrs"
	case CSRRC:
		return "csrrc"
	case CSRRWI:
		return "csrrwi"
	case CSRRSI:
		return "csrrsi"
	case CSRRCI:
		return "csrrci"
	}

	return "unknown"
}

func (i Instruction) String() string {
	return i.Mnemonic()
}

// Value of the funct3 field in the SYSTEM opcode encoding
func (i Instruction) Funct3() uint32 {
	switch i {
	case CSRRW:
		return 0b001
	case CSRRS:
		return 0b010
	case CSRRC:
		return 0b011
	case CSRRWI:
		return 0b101
	case CSRRSI:
		return 0b110
	case CSRRCI:
		return 0b111
	}

	return 0
}

// Whether the source operand is a 5 bit unsigned immediate instead of a register
func (i Instruction) Immediate() bool {
	return i == CSRRWI || i == CSRRSI || i == CSRRCI
}

// Returns the assembler pseudo instruction for the given operand shape, or the
// base mnemonic when there is none. discardResult means rd is x0 and
// zeroSource means rs1 is x0.
func (i Instruction) Pseudo(discardResult, zeroSource bool) string {
	switch {
	case i == CSRRS && zeroSource && !discardResult:
		return "csrr"
	case i == CSRRW && discardResult:
		return "csrw"
	case i == CSRRS && discardResult:
		return "csrs"
	case i == CSRRC && discardResult:
		return "csrc"
	case i == CSRRWI && discardResult:
		return "csrwi"
	case i == CSRRSI && discardResult:
		return "csrsi"
	case i == CSRRCI && discardResult:
		return "csrci"
	}

	return i.Mnemonic()
}

// Whether the instruction writes the CSR. csrrs and csrrc with a zero source leave it untouched.
func (i Instruction) Writes(zeroSource bool) bool {
	switch i {
	case CSRRW, CSRRWI:
		return true
	}

	return !zeroSource
}

// Whether the instruction reads the CSR. csrrw and csrrwi with rd x0 skip the read.
func (i Instruction) Reads(discardResult bool) bool {
	switch i {
	case CSRRW, CSRRWI:
		return !discardResult
	}

	return true
}
