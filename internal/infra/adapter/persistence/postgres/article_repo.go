package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// ListPaginated retrieves one page of articles ordered by id.
// Uses LIMIT and OFFSET for pagination.
func (repo *ArticleRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Article, error) {
	const query = `
SELECT id, author_id, title, created_at, updated_at
FROM articles
ORDER BY id
LIMIT $1 OFFSET $2`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		var article entity.Article
		if err := rows.Scan(&article.ID, &article.AuthorID, &article.Title,
			&article.CreatedAt, &article.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ListPaginated: Scan: %w", err)
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

// CountArticles returns the total number of articles in the database.
func (repo *ArticleRepo) CountArticles(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountArticles: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, author_id, title, created_at, updated_at
FROM articles
WHERE id = $1
LIMIT 1`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.AuthorID, &article.Title,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &article, nil
}
