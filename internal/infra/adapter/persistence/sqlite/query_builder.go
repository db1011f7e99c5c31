package sqlite

import (
	"fmt"
	"strings"

	"pressroom/internal/domain/entity"
)

// InsertQueryBuilder builds INSERT statements for seeded records using
// positional ? placeholders. Generated ids are read back with LastInsertId.
type InsertQueryBuilder struct{}

// NewInsertQueryBuilder creates a new query builder instance.
func NewInsertQueryBuilder() *InsertQueryBuilder {
	return &InsertQueryBuilder{}
}

// Build returns the INSERT statement for rec and its arguments.
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

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Table(), strings.Join(cols, ", "), placeholders)
	return query, args, nil
}
