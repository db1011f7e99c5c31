// Package pagination parses page/limit query parameters and builds the
// metadata returned alongside paginated collections.
package pagination

import "pressroom/internal/pkg/config"

// Config bounds the accepted query parameters.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}
}

// LoadFromEnv reads PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT.
// Values that are not positive integers keep their defaults.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	positive := func(v int) error { return config.ValidateIntRange(v, 1, 1000) }

	cfg.MaxLimit = config.LoadEnvInt("PAGINATION_MAX_LIMIT", cfg.MaxLimit, positive).Value
	cfg.DefaultLimit = config.LoadEnvInt("PAGINATION_DEFAULT_LIMIT", cfg.DefaultLimit, positive).Value
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return cfg
}
