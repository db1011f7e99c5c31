package entity

import (
	"fmt"
	"strings"
)

// Type tags an entity kind. The tag doubles as the table name.
type Type string

const (
	TypePeople  Type = "people"
	TypeArticle Type = "articles"
	TypeComment Type = "comments"
)

// Record is implemented by every seeded entity.
// Columns and Values are aligned and exclude storage-generated fields.
type Record interface {
	EntityType() Type
	Columns() []string
	Values() []any
}

// DependencyOrder returns the entity types ordered so that referenced types come first.
func DependencyOrder() []Type {
	return []Type{TypePeople, TypeArticle, TypeComment}
}

// Valid reports whether t is a known entity type.
func (t Type) Valid() bool {
	switch t {
	case TypePeople, TypeArticle, TypeComment:
		return true
	}
	return false
}

// Table returns the table name for t.
func (t Type) Table() string { return string(t) }

func (t Type) String() string { return string(t) }

// ParseType resolves a user supplied tag. Singular and plural forms are accepted
// and matching is case-insensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "people", "person", "persons":
		return TypePeople, nil
	case "articles", "article":
		return TypeArticle, nil
	case "comments", "comment":
		return TypeComment, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEntityType, s)
}
