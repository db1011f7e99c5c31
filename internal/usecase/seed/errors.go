// Package seed implements the fake-data seeding pipeline: a registry of record
// factories and an orchestrator that truncates and repopulates entity tables in
// dependency order.
package seed

import (
	"errors"
	"fmt"

	"pressroom/internal/domain/entity"
)

// Sentinel errors for seeding operations.
var (
	// ErrInvalidCount indicates a negative row count.
	ErrInvalidCount = errors.New("invalid count: must be zero or positive")

	// ErrMissingReferences indicates that linked references were requested but the
	// referenced entity has no rows to point at.
	ErrMissingReferences = errors.New("no rows available to reference")

	// ErrDuplicateStep indicates that a plan lists the same entity type twice.
	ErrDuplicateStep = errors.New("entity type listed more than once")
)

// Phase names the part of a seeding step that failed.
type Phase string

const (
	PhaseValidate   Phase = "validate"
	PhaseReferences Phase = "references"
	PhaseTruncate   Phase = "truncate"
	PhaseGenerate   Phase = "generate"
	PhaseInsert     Phase = "insert"
)

// StepError reports the entity type and phase a seeding step stopped at.
// Inserted is the number of rows written by the step before it failed.
type StepError struct {
	Type     entity.Type
	Phase    Phase
	Inserted int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("seed %s: %s: %v", e.Type, e.Phase, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// storageErr tags err as a storage write failure unless the adapter already did.
func storageErr(err error) error {
	if errors.Is(err, entity.ErrStorageWriteFailed) || errors.Is(err, entity.ErrInvalidEntityType) {
		return err
	}
	return fmt.Errorf("%w: %w", entity.ErrStorageWriteFailed, err)
}
