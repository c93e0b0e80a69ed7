package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoActiveAssignment = errors.New("no active company assignment")
	ErrAlreadyClockedIn   = errors.New("already clocked in")
	ErrNotClockedIn       = errors.New("not clocked in")
)

// ValidationError reports which field of a request failed validation.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ErrNoHistory is returned by history lookups for a student with no stored readings.
var ErrNoHistory = errors.New("no location history")
