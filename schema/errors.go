package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every malformed-input error.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError names the offending field of a malformed site input.
type InvalidInputError struct {
	Field  string
	Reason string
}

// NewInvalidInput builds an InvalidInputError for field.
func NewInvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
