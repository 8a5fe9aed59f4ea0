package core

import "github.com/pkg/errors"

// FieldError attaches a message to the struct field that failed validation.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries the cause of a rejected input together with the
// per-field messages returned to the caller.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// shutdown marks an error the service cannot recover from. The API stops
// accepting requests once one surfaces.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err, at its cause, is a shutdown error.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
