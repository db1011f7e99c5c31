// Package bootstrap wires configuration to concrete storage adapters and the
// seeding service. It is shared by the seed CLI, the API server and the worker.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"pressroom/internal/config"
	pgRepo "pressroom/internal/infra/adapter/persistence/postgres"
	sqliteRepo "pressroom/internal/infra/adapter/persistence/sqlite"
	"pressroom/internal/infra/db"
	"pressroom/internal/infra/fakedata"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/repository"
	"pressroom/internal/resilience/circuitbreaker"
	"pressroom/internal/usecase/seed"
)

// Storage is an open database with the adapters built over it.
type Storage struct {
	Driver   string
	DB       *sql.DB
	Seeds    repository.SeedStore
	Articles repository.ArticleRepository
}

// Close closes the database.
func (s *Storage) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// OpenStorage opens the configured database, bootstraps the schema and builds
// the adapters. Seed writes go through a circuit breaker when cfg.DBBreaker is set.
func OpenStorage(ctx context.Context, cfg *config.SeedConfig, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema := db.SchemaOptions{ForeignKeys: cfg.ForeignKeys}

	var breaker *circuitbreaker.CircuitBreaker
	if cfg.DBBreaker {
		breaker = circuitbreaker.New(circuitbreaker.DBConfig())
	}

	st := &Storage{Driver: cfg.Driver}
	switch cfg.Driver {
	case db.DriverPostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(conn, schema); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		st.DB = conn
		st.Seeds = pgRepo.NewSeedStore(conn, breaker)
		st.Articles = pgRepo.NewArticleRepo(conn)
	case db.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUpSQLite(conn, schema); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		st.DB = conn
		st.Seeds = sqliteRepo.NewSeedStore(conn, breaker)
		st.Articles = sqliteRepo.NewArticleRepo(conn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	logger.Info("storage ready",
		slog.String("driver", cfg.Driver),
		slog.Bool("foreign_keys", cfg.ForeignKeys),
		slog.Bool("db_breaker", cfg.DBBreaker))
	return st, nil
}

// NewSeeder builds the seeding service over store with the configured random
// seed and reference policy.
func NewSeeder(cfg *config.SeedConfig, store repository.SeedStore, logger *slog.Logger) *seed.Service {
	svc := seed.NewService(seed.NewDefaultRegistry(fakedata.New(cfg.RandomSeed)), store, logger)
	svc.References = cfg.ReferenceMode()
	return svc
}

// ReportDBStats publishes connection pool gauges every interval until ctx ends.
func ReportDBStats(ctx context.Context, conn *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		stats := conn.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
