package errors

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input caught before any external call is
// made. The node aborts with no partial output.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ExternalFailure wraps an error raised by the inference model, the MIDI
// writer, or file I/O. Intentionally undifferentiated: the original
// message is carried through, nothing else is classified.
type ExternalFailure struct {
	Msg   string
	Cause error
}

func (e *ExternalFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *ExternalFailure) Unwrap() error {
	return e.Cause
}

// NewValidation creates a ValidationError
func NewValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NewExternal creates an ExternalFailure wrapping cause
func NewExternal(msg string, cause error) error {
	return &ExternalFailure{Msg: msg, Cause: cause}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsExternal reports whether err is an ExternalFailure
func IsExternal(err error) bool {
	var e *ExternalFailure
	return errors.As(err, &e)
}
