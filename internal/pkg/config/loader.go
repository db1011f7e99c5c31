// Package config provides fail-open environment loading for long-running
// processes: an invalid value is replaced by its default and reported as a
// warning instead of stopping startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult is the outcome of loading one environment variable.
// Warning is set only when FallbackApplied is true.
type LoadResult[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// LoadEnvString returns the variable or defaultValue when unset. No validation is performed.
func LoadEnvString(envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

// LoadEnvWithFallback loads a string and falls back to defaultValue when validator rejects it.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult[string] {
	return load(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvDuration loads a time.Duration such as "90s" or "1h30m".
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	return load(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvInt loads a base-10 integer. Surrounding whitespace is ignored.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult[int] {
	return load(envKey, defaultValue, func(s string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(s))
	}, validator)
}

// LoadEnvBool loads a boolean in any form strconv.ParseBool accepts.
func LoadEnvBool(envKey string, defaultValue bool) LoadResult[bool] {
	return load(envKey, defaultValue, strconv.ParseBool, nil)
}

func load[T any](envKey string, defaultValue T, parse func(string) (T, error), validator func(T) error) LoadResult[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	v, err := parse(raw)
	if err == nil && validator != nil {
		err = validator(v)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("invalid %s=%q: %v, falling back to default %v", envKey, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: v}
}
