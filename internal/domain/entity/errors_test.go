package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required field error",
			field:    "title",
			message:  "title is required",
			expected: "validation error on field 'title': title is required",
		},
		{
			name:     "range error",
			field:    "author_id",
			message:  "must be zero or positive",
			expected: "validation error on field 'author_id': must be zero or positive",
		},
		{
			name:     "empty message",
			field:    "body",
			message:  "",
			expected: "validation error on field 'body': ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{
				Field:   tt.field,
				Message: tt.message,
			}

			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_WithErrors(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrGeneratorUnavailable, &ValidationError{Field: "title", Message: "title is required"})

	assert.True(t, errors.Is(err, ErrGeneratorUnavailable))

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "title", validationErr.Field)
}

func TestSentinelErrors_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "ErrNotFound", err: ErrNotFound, expected: "entity not found"},
		{name: "ErrInvalidEntityType", err: ErrInvalidEntityType, expected: "invalid entity type"},
		{name: "ErrGeneratorUnavailable", err: ErrGeneratorUnavailable, expected: "generator unavailable"},
		{name: "ErrStorageWriteFailed", err: ErrStorageWriteFailed, expected: "storage write failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestSentinelErrors_Uniqueness(t *testing.T) {
	all := []error{ErrNotFound, ErrInvalidEntityType, ErrGeneratorUnavailable, ErrStorageWriteFailed}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
