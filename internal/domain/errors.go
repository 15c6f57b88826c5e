package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError names the offending input field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TransitionError reports a transition attempted from the wrong state.
type TransitionError struct {
	ClaimID int64
	From    ClaimStatus
	To      ClaimStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("claim %d cannot move from %q to %q", e.ClaimID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
