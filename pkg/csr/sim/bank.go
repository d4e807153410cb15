package sim

import (
	"golang.org/x/exp/constraints"

	"github.com/Manu343726/csrgen/pkg/utils"
)

type RegisterName interface {
	comparable
}

// Raw register storage with no access rules. Registers may be narrower than
// Type; values written to them are truncated to their width.
type RegisterBank[Register RegisterName, Type constraints.Unsigned] interface {
	Read(r Register) (Type, error)
	Write(value Type, r Register) error
	Width(r Register) (int, error)
}

type slot[Type constraints.Unsigned] struct {
	value Type
	mask  Type
	bits  int
}

type registers[Register RegisterName, Type constraints.Unsigned] struct {
	rs map[Register]*slot[Type]
}

// Builds a zero initialized bank from the width in bits of every register.
// Widths larger than Type are clamped to it.
func MakeRegisters[Register RegisterName, Type constraints.Unsigned](widths map[Register]int) RegisterBank[Register, Type] {
	rs := make(map[Register]*slot[Type], len(widths))
	typeBits := utils.SizeofBits[Type]()

	for r, bits := range widths {
		bits = min(bits, typeBits)

		rs[r] = &slot[Type]{
			mask: utils.AllOnes[Type](bits),
			bits: bits,
		}
	}

	return &registers[Register, Type]{
		rs: rs,
	}
}

func (rs *registers[Register, Type]) get(r Register) (*slot[Type], error) {
	if s, contains := rs.rs[r]; contains {
		return s, nil
	}

	return nil, utils.MakeError(ErrUnknownRegister, "'%v'", r)
}

func (rs *registers[Register, Type]) Read(r Register) (Type, error) {
	s, err := rs.get(r)
	if err != nil {
		return 0, err
	}

	return s.value, nil
}

func (rs *registers[Register, Type]) Write(value Type, r Register) error {
	s, err := rs.get(r)
	if err != nil {
		return err
	}

	s.value = value & s.mask
	return nil
}

func (rs *registers[Register, Type]) Width(r Register) (int, error) {
	s, err := rs.get(r)
	if err != nil {
		return 0, err
	}

	return s.bits, nil
}
