package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is wrapped by every ValidationError.
var ErrInvalidProfile = errors.New("invalid financial profile")

// ValidationError names the first offending input field. No projection is
// computed when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProfile }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
