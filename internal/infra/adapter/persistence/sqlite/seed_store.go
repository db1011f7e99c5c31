package sqlite

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

// SeedStore writes seeded records to SQLite.
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

// Truncate deletes every row of t and resets its AUTOINCREMENT counter so the
// next id is 1. With foreign_keys enabled, a referenced table is left unchanged.
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
		if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = ?`, t.Table()); err != nil {
			return fmt.Errorf("reset sequence: %w", err)
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
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
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
		return nil, fmt.Errorf("IDs: QueryContext: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("IDs: rows.Err: %w", err)
	}
	return ids, nil
}
