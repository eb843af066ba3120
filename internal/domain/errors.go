package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate record.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidDescriptor signals a malformed filter or sort descriptor.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrValidation signals a record that failed field validation.
	ErrValidation = errors.New("validation failed")
	// ErrBatchTooLarge signals a batch above the configured maximum.
	ErrBatchTooLarge = errors.New("batch too large")
)

// FieldError describes one failing field of a record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError wraps ErrValidation with the failing fields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for the given fields.
func NewValidationError(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}
