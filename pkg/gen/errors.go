package gen

import "errors"

var (
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrMissingAddress  = errors.New("register has no CSR address")
	ErrUnsupportedXLEN = errors.New("backend does not support this machine word width")
	ErrInvalidPackage  = errors.New("invalid package name")
)
