// Package article provides the read use cases behind the article resources:
// lookup by id, full listing and paginated listing.
package article

import (
	"errors"
	"fmt"

	"pressroom/internal/domain/entity"
)

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound is returned when no article has the requested id.
	ErrArticleNotFound = fmt.Errorf("article %w", entity.ErrNotFound)

	// ErrInvalidArticleID indicates a non-positive id.
	ErrInvalidArticleID = errors.New("invalid article ID")
)
