package entity

import (
	"strings"
	"time"
)

// Comment represents a comment left by a person on an article.
type Comment struct {
	ID        int64
	ArticleID int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntityType returns TypeComment.
func (c Comment) EntityType() Type { return TypeComment }

// Columns returns the insertable columns of the comments table.
func (c Comment) Columns() []string { return []string{"article_id", "author_id", "body"} }

// Values returns the insertable values aligned with Columns.
func (c Comment) Values() []any { return []any{c.ArticleID, c.AuthorID, c.Body} }

// Validate checks the attributes a freshly generated comment must carry.
func (c Comment) Validate() error {
	if c.ArticleID < 0 {
		return &ValidationError{Field: "article_id", Message: "must be zero or positive"}
	}
	if c.AuthorID < 0 {
		return &ValidationError{Field: "author_id", Message: "must be zero or positive"}
	}
	if strings.TrimSpace(c.Body) == "" {
		return &ValidationError{Field: "body", Message: "body is required"}
	}
	return nil
}
