package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrPermission: the caller may not perform the intent at all
	// (anonymous submission disabled, not the AMA host).
	ErrPermission = errors.New("permission denied")

	// ErrEligibility: the follow-up preconditions are unmet (no answer yet,
	// follow-up already present, or the caller is not the question's author).
	ErrEligibility = errors.New("not eligible")

	// ErrTransientWrite: a write-through to the store failed. The local
	// ledger is left as toggled; the user may re-trigger the action.
	ErrTransientWrite = errors.New("transient write failure")

	// ErrOrphanEvent: a change event references a row not present locally.
	// Dropped silently; the view self-heals on the next full reconciliation.
	ErrOrphanEvent = errors.New("orphan event")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
