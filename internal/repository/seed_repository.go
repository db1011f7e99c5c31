// Package repository declares the storage contracts the use cases depend on.
package repository

import (
	"context"

	"pressroom/internal/domain/entity"
)

// Truncatable removes every row of an entity type and restarts its id sequence.
// Implementations must be all-or-nothing: when a referencing row blocks the
// removal, the table is left exactly as it was.
type Truncatable interface {
	Truncate(ctx context.Context, t entity.Type) error
}

// Insertable persists one record and returns its generated id.
type Insertable interface {
	Insert(ctx context.Context, rec entity.Record) (int64, error)
}

// SeedStore is the storage collaborator of the seeding pipeline.
type SeedStore interface {
	Truncatable
	Insertable
}

// IDLister lists the ids currently stored for an entity type, in ascending order.
type IDLister interface {
	IDs(ctx context.Context, t entity.Type) ([]int64, error)
}
