// Package db opens the seeding database and creates its schema.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"pressroom/internal/resilience/retry"
	envcfg "pressroom/internal/pkg/config"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrEmptyDSN is returned when no connection string is configured.
var ErrEmptyDSN = errors.New("database connection string is empty")

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open creates a PostgreSQL connection pool for dsn and verifies it with a
// ping, retrying transient connection failures.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	cfg := getConnectionConfigFromEnv()
	applyConnectionConfig(db, cfg)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	if err := ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	slog.Info("database connection established successfully", slog.String("driver", DriverPostgres))
	return db, nil
}

// OpenSQLite opens the SQLite database at path with foreign-key enforcement
// enabled. Use ":memory:" for a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	slog.Info("database connection established successfully", slog.String("driver", DriverSQLite))
	return db, nil
}

func sqliteDSN(path string) string {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	return "file:" + filepath.Clean(path) + "?" + pragmas
}

func ping(ctx context.Context, db *sql.DB) error {
	return retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
}

func applyConnectionConfig(db *sql.DB, cfg ConnectionConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// getConnectionConfigFromEnv reads pool sizing from DB_* variables.
// Unparsable or non-positive values fall back to the defaults with a warning.
func getConnectionConfigFromEnv() ConnectionConfig {
	def := DefaultConnectionConfig()
	positive := func(v int) error { return envcfg.ValidateIntRange(v, 1, 1<<16) }

	openConns := envcfg.LoadEnvInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns, positive)
	idleConns := envcfg.LoadEnvInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns, positive)
	lifetime := envcfg.LoadEnvDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime, envcfg.ValidatePositiveDuration)
	idleTime := envcfg.LoadEnvDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime, envcfg.ValidatePositiveDuration)

	for _, w := range []string{openConns.Warning, idleConns.Warning, lifetime.Warning, idleTime.Warning} {
		if w != "" {
			slog.Warn("database pool configuration fallback", slog.String("warning", w))
		}
	}

	return ConnectionConfig{
		MaxOpenConns:    openConns.Value,
		MaxIdleConns:    idleConns.Value,
		ConnMaxLifetime: lifetime.Value,
		ConnMaxIdleTime: idleTime.Value,
	}
}
