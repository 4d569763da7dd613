package domain

import (
	"fmt"
)

type ErrCustomerNotFound struct {
	Message string
}

func (e *ErrCustomerNotFound) Error() string {
	return e.Message
}

type ErrIdentityNotFound struct {
	Message string
}

func (e *ErrIdentityNotFound) Error() string {
	return e.Message
}

type ErrCursorNotFound struct {
	SourceType string
}

func (e *ErrCursorNotFound) Error() string {
	return fmt.Sprintf("no sync cursor for source: %s", e.SourceType)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// ErrIdentityConflict is returned when an insert lost a race on the
// (provider, external_id) unique constraint. Callers retry through the
// exact-identity path, which converges on the winning row.
type ErrIdentityConflict struct {
	Provider   Provider
	ExternalID string
}

func (e *ErrIdentityConflict) Error() string {
	return fmt.Sprintf("identity already exists for (%s, %s)", e.Provider, e.ExternalID)
}

// ErrMergeConflict is returned when a merge request violates a merge
// invariant (self-merge, empty merge set, duplicate ids). It is raised
// before any transaction opens, so there are never partial effects.
type ErrMergeConflict struct {
	Message string
}

func (e *ErrMergeConflict) Error() string {
	return fmt.Sprintf("merge rejected: %s", e.Message)
}
