package csr

import (
	"errors"

	"github.com/Manu343726/csrgen/pkg/utils"
)

var (
	ErrInvalidXLEN           = errors.New("invalid machine word width")
	ErrInvalidAccess         = errors.New("invalid access string")
	ErrInvalidBitExpression  = errors.New("invalid bit expression")
	ErrMalformedDatabase     = errors.New("malformed register database")
	ErrMalformedRegister     = errors.New("malformed register")
	ErrMalformedField        = errors.New("malformed field")
	ErrDuplicateRegister     = errors.New("duplicate register")
	ErrDuplicateField        = errors.New("duplicate field")
	ErrFieldOutOfRange       = errors.New("field out of range")
	ErrImmediateNotEncodable = errors.New("field mask does not fit a 5 bit immediate")
	ErrUnknownRegister       = errors.New("unknown register")
	ErrUnknownField          = errors.New("unknown field")
	ErrUnsupportedOnXLEN     = errors.New("register does not exist on this machine word width")
)

func registerError(err error, register string, details string, args ...any) error {
	return utils.MakeError(err, register+": "+details, args...)
}

func fieldError(err error, register, field string, details string, args ...any) error {
	return utils.MakeError(err, register+"."+field+": "+details, args...)
}
