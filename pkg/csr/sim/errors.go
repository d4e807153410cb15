package sim

import "errors"

var (
	ErrUnknownRegister      = errors.New("unknown register")
	ErrIllegalInstruction   = errors.New("illegal instruction")
	ErrImmediateOutOfRange  = errors.New("immediate out of range")
	ErrUnsupportedValueType = errors.New("value type narrower than the machine word")
)
