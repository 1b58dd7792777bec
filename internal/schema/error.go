package schema

import "errors"

// ErrorKind is the closed set of failure classes surfaced to callers.
type ErrorKind string

const (
	ValidationError    ErrorKind = "VALIDATION_ERROR"
	ProviderAuthError  ErrorKind = "PROVIDER_AUTH_ERROR"
	ProviderQueryError ErrorKind = "PROVIDER_QUERY_ERROR"
	ProviderWriteError ErrorKind = "PROVIDER_WRITE_ERROR"
	MailError          ErrorKind = "MAIL_ERROR"
	InternalError      ErrorKind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: ValidationError, Message: message}
}

// KindOf extracts the error kind, defaulting to InternalError for
// errors raised outside the provider/mail paths.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return InternalError
}

type ResponseError struct {
	Code    ErrorKind `json:"code"`
	Message string    `json:"message"`
}

type ErrorResponse struct {
	Success bool          `json:"success"`
	Error   ResponseError `json:"error"`
}
