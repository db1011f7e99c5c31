package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pressroom/internal/domain/entity"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/repository"
	"pressroom/internal/resilience/circuitbreaker"
)

// SeedStore writes seeded records to PostgreSQL.
type SeedStore struct {
	db           *sql.DB
	breaker      *circuitbreaker.CircuitBreaker
	queryBuilder *InsertQueryBuilder
}

var (
	_ repository.SeedStore = (*SeedStore)(nil)
	_ repository.IDLister  = (*SeedStore)(nil)
)

// NewSeedStore creates a seed store. A nil breaker disables circuit breaking.
func NewSeedStore(db *sql.DB, breaker *circuitbreaker.CircuitBreaker) *SeedStore {
	return &SeedStore{
		db:           db,
		breaker:      breaker,
		queryBuilder: NewInsertQueryBuilder(),
	}
}

// Truncate deletes every row of t and restarts its id sequence at 1.
// Both statements run in one transaction, so a foreign-key violation leaves
// the table unchanged.
func (s *SeedStore) Truncate(ctx context.Context, t entity.Type) error {
	if !t.Valid() {
		return fmt.Errorf("Truncate: %w: %q", entity.ErrInvalidEntityType, t)
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("truncate_"+t.Table(), time.Since(start)) }()

	err := s.breaker.Guard(func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("BeginTx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.Table()); err != nil {
			return fmt.Errorf("DELETE: %w", err)
		}
		const reset = `SELECT setval(pg_get_serial_sequence($1, 'id'), 1, false)`
		if _, err := tx.ExecContext(ctx, reset, t.Table()); err != nil {
			return fmt.Errorf("setval: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("Truncate %s: %w: %w", t, entity.ErrStorageWriteFailed, err)
	}
	return nil
}

// Insert persists rec and returns its generated id.
func (s *SeedStore) Insert(ctx context.Context, rec entity.Record) (int64, error) {
	query, args, err := s.queryBuilder.Build(rec)
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_"+rec.EntityType().Table(), time.Since(start)) }()

	var id int64
	err = s.breaker.Guard(func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("Insert %s: %w: %w", rec.EntityType(), entity.ErrStorageWriteFailed, err)
	}
	return id, nil
}

// IDs returns the ids stored for t in ascending order.
func (s *SeedStore) IDs(ctx context.Context, t entity.Type) ([]int64, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("IDs: %w: %q", entity.ErrInvalidEntityType, t)
	}
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM "+t.Table()+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("IDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("IDs: Scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
