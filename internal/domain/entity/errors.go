package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntityType indicates an unrecognized entity tag
	ErrInvalidEntityType = errors.New("invalid entity type")

	// ErrGeneratorUnavailable indicates that the random/text source could not produce a value
	ErrGeneratorUnavailable = errors.New("generator unavailable")

	// ErrStorageWriteFailed indicates that the storage rejected a truncate or insert
	ErrStorageWriteFailed = errors.New("storage write failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
