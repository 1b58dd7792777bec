package errors

import "errors"

var (
	ErrorNotImplemented      = errors.New("not implemented")
	ErrorUnknownProvider     = errors.New("unknown calendar provider")
	ErrorMissingProviderAuth = errors.New("provider credentials missing")
)
