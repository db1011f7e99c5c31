// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"pressroom/internal/domain/entity"
)

// InsertQueryBuilder builds INSERT statements for seeded records.
// Table and column names come from the record type; values are always bound
// through numbered placeholders ($1, $2, etc.).
type InsertQueryBuilder struct{}

// NewInsertQueryBuilder creates a new query builder instance.
func NewInsertQueryBuilder() *InsertQueryBuilder {
	return &InsertQueryBuilder{}
}

// Build returns the INSERT ... RETURNING id statement for rec and its arguments.
func (qb *InsertQueryBuilder) Build(rec entity.Record) (query string, args []any, err error) {
	t := rec.EntityType()
	if !t.Valid() {
		return "", nil, fmt.Errorf("%w: %q", entity.ErrInvalidEntityType, t)
	}
	cols := rec.Columns()
	args = rec.Values()
	if len(cols) != len(args) {
		return "", nil, fmt.Errorf("%s: %d columns but %d values", t, len(cols), len(args))
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.Table(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	return query, args, nil
}
