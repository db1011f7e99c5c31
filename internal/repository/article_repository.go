package repository

import (
	"context"

	"pressroom/internal/domain/entity"
)

// ArticleRepository is the read side used to serve article resources.
type ArticleRepository interface {
	// ListPaginated returns at most limit articles after skipping offset rows, ordered by id.
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Article, error)
	// CountArticles returns the total number of articles.
	CountArticles(ctx context.Context) (int64, error)
	// Get returns (nil, nil) when the article does not exist.
	Get(ctx context.Context, id int64) (*entity.Article, error)
}
