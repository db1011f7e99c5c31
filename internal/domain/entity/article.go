// Package entity defines the core domain entities and validation logic for the application.
// It contains the seeded record types (Article, Comment, Person), the entity type tags
// used to address their tables, and domain-specific errors.
package entity

import (
	"strings"
	"time"
)

// Article represents an article written by a person.
type Article struct {
	ID        int64
	AuthorID  int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntityType returns TypeArticle.
func (a Article) EntityType() Type { return TypeArticle }

// Columns returns the insertable columns of the articles table.
func (a Article) Columns() []string { return []string{"author_id", "title"} }

// Values returns the insertable values aligned with Columns.
func (a Article) Values() []any { return []any{a.AuthorID, a.Title} }

// Validate checks the attributes a freshly generated article must carry.
func (a Article) Validate() error {
	if a.AuthorID < 0 {
		return &ValidationError{Field: "author_id", Message: "must be zero or positive"}
	}
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	return nil
}
