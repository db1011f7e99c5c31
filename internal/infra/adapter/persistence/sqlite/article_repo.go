// Package sqlite provides SQLite implementations of repository interfaces.
// It backs the seeder and the article read API for local development.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// ListPaginated retrieves one page of articles ordered by id.
func (repo *ArticleRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Article, error) {
	const query = `
SELECT id, author_id, title, created_at, updated_at
FROM articles
ORDER BY id
LIMIT ? OFFSET ?
`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanArticles(rows, limit, "ListPaginated")
}

// CountArticles returns the total number of articles.
func (repo *ArticleRepo) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountArticles: QueryRowContext: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, author_id, title, created_at, updated_at
FROM articles
WHERE id = ?
LIMIT 1
`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.AuthorID, &article.Title,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return &article, nil
}

func scanArticles(rows *sql.Rows, capacity int, op string) ([]*entity.Article, error) {
	articles := make([]*entity.Article, 0, capacity)
	for rows.Next() {
		var article entity.Article
		if err := rows.Scan(&article.ID, &article.AuthorID, &article.Title,
			&article.CreatedAt, &article.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, &article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return articles, nil
}
