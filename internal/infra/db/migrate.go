package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// SchemaOptions controls the tables created by MigrateUp and MigrateUpSQLite.
type SchemaOptions struct {
	// ForeignKeys adds REFERENCES constraints from articles and comments to
	// the rows they point at. Random-digit references violate them.
	ForeignKeys bool
}

// MigrateUp creates the people, articles and comments tables in PostgreSQL
// if they do not exist.
func MigrateUp(db *sql.DB, opts SchemaOptions) error {
	ref := func(table string) string {
		if !opts.ForeignKeys {
			return ""
		}
		return " REFERENCES " + table + "(id)"
	}

	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS people (
    id         SERIAL PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    twitter    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS articles (
    id         SERIAL PRIMARY KEY,
    author_id  BIGINT NOT NULL` + ref("people") + `,
    title      TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS comments (
    id         SERIAL PRIMARY KEY,
    article_id BIGINT NOT NULL` + ref("articles") + `,
    author_id  BIGINT NOT NULL` + ref("people") + `,
    body       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	}
	stmts = append(stmts, indexes...)
	return execAll(db, stmts)
}

// MigrateUpSQLite creates the same tables in SQLite. AUTOINCREMENT keeps the
// id counter in sqlite_sequence so truncation can restart it.
func MigrateUpSQLite(db *sql.DB, opts SchemaOptions) error {
	ref := func(table string) string {
		if !opts.ForeignKeys {
			return ""
		}
		return " REFERENCES " + table + "(id)"
	}

	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS people (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    twitter    TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		`
CREATE TABLE IF NOT EXISTS articles (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    author_id  INTEGER NOT NULL` + ref("people") + `,
    title      TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		`
CREATE TABLE IF NOT EXISTS comments (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id INTEGER NOT NULL` + ref("articles") + `,
    author_id  INTEGER NOT NULL` + ref("people") + `,
    body       TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	}
	stmts = append(stmts, indexes...)
	return execAll(db, stmts)
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_author_id ON comments(author_id)`,
}

func execAll(db *sql.DB, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %s: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if i := strings.IndexByte(stmt, '('); i > 0 {
		stmt = stmt[:i]
	}
	return strings.TrimSpace(stmt)
}
