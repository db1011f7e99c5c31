package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUp_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS people").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS comments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_author_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_comments_article_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_comments_author_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, MigrateUp(db, SchemaOptions{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_ForeignKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS people").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`author_id  BIGINT NOT NULL REFERENCES people\(id\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`article_id BIGINT NOT NULL REFERENCES articles\(id\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for i := 0; i < 3; i++ {
		mock.ExpectExec("CREATE INDEX").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, MigrateUp(db, SchemaOptions{ForeignKeys: true}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS people").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnError(errors.New("permission denied"))

	err = MigrateUp(db, SchemaOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CREATE TABLE IF NOT EXISTS articles")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUpSQLite_Idempotent(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, MigrateUpSQLite(db, SchemaOptions{ForeignKeys: true}))
	require.NoError(t, MigrateUpSQLite(db, SchemaOptions{ForeignKeys: true}))

	for _, table := range []string{"people", "articles", "comments"} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestMigrateUpSQLite_ForeignKeysEnforced(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, MigrateUpSQLite(db, SchemaOptions{ForeignKeys: true}))

	_, err = db.Exec(`INSERT INTO articles (author_id, title) VALUES (42, 'orphan')`)
	assert.Error(t, err)
}

func TestMigrateUpSQLite_WithoutForeignKeys(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, MigrateUpSQLite(db, SchemaOptions{}))

	_, err = db.Exec(`INSERT INTO articles (author_id, title) VALUES (42, 'orphan')`)
	assert.NoError(t, err)
}
