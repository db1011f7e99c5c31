// Package config loads the seeder configuration from the environment and plan files.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"pressroom/internal/domain/entity"
	"pressroom/internal/usecase/seed"
)

// SeedConfig holds the settings shared by the seed CLI, the API and the worker.
type SeedConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `env:"SEED_DB_DRIVER" envDefault:"sqlite"`
	// DatabaseURL is the PostgreSQL DSN. Required for the postgres driver.
	DatabaseURL string `env:"DATABASE_URL"`
	// SQLitePath is the database file. ":memory:" is accepted.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"pressroom.db"`

	// RandomSeed fixes the fake-data generator. 0 picks a random seed.
	RandomSeed uint64 `env:"SEED_RANDOM_SEED" envDefault:"0"`
	// LinkReferences fills foreign keys with existing ids instead of random digits.
	LinkReferences bool `env:"SEED_LINK_REFERENCES" envDefault:"false"`
	// ForeignKeys creates REFERENCES constraints when bootstrapping the schema.
	ForeignKeys bool `env:"SEED_FOREIGN_KEYS" envDefault:"false"`

	// PlanFile is an optional YAML plan. It takes precedence over Count.
	PlanFile string `env:"SEED_PLAN_FILE"`
	// Count is the number of rows per entity type when no plan file is set.
	Count int `env:"SEED_COUNT" envDefault:"10"`

	// DBBreaker wraps seed writes in a circuit breaker.
	DBBreaker bool `env:"SEED_DB_BREAKER" envDefault:"false"`
}

// ParseSeedConfig reads SeedConfig from the environment without validating
// it, so callers can apply overrides before calling Validate.
func ParseSeedConfig() (*SeedConfig, error) {
	cfg := &SeedConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	return cfg, nil
}

// LoadSeedConfig parses SeedConfig from the environment and validates it.
func LoadSeedConfig() (*SeedConfig, error) {
	cfg, err := ParseSeedConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *SeedConfig) Validate() error {
	var errs []error

	switch c.Driver {
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH cannot be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("SEED_DB_DRIVER must be postgres or sqlite, got %q", c.Driver))
	}

	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("SEED_COUNT must be zero or positive, got %d", c.Count))
	}

	// Random digits rarely satisfy REFERENCES constraints.
	if c.ForeignKeys && !c.LinkReferences {
		errs = append(errs, errors.New("SEED_FOREIGN_KEYS requires SEED_LINK_REFERENCES=true"))
	}

	return errors.Join(errs...)
}

// ReferenceMode returns the reference policy selected by LinkReferences.
func (c *SeedConfig) ReferenceMode() seed.ReferenceMode {
	if c.LinkReferences {
		return seed.ReferencesLinked
	}
	return seed.ReferencesRandom
}

// Plan returns the plan from PlanFile, or Count rows of every entity type.
func (c *SeedConfig) Plan() (seed.Plan, error) {
	if c.PlanFile != "" {
		return LoadPlanFile(c.PlanFile)
	}
	return seed.UniformPlan(c.Count, entity.DependencyOrder()...), nil
}
