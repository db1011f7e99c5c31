// Package circuitbreaker stops seed writes from hammering a database that keeps
// failing. It wraps github.com/sony/gobreaker.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// breakerState reports each breaker's state: 0 closed, 1 half-open, 2 open.
var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
	},
	[]string{"name"},
)

// Config tunes a breaker.
type Config struct {
	Name string
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// HalfOpenRequests are let through after OpenTimeout to probe recovery.
	HalfOpenRequests uint32
	// OpenTimeout is how long the breaker rejects calls once tripped.
	OpenTimeout time.Duration
	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration
}

// DBConfig suits seed writes: five failures in a row open the breaker for 30s.
func DBConfig() Config {
	return Config{
		Name:                "seed-db",
		ConsecutiveFailures: 5,
		HalfOpenRequests:    1,
		OpenTimeout:         30 * time.Second,
		Interval:            time.Minute,
	}
}

// CircuitBreaker guards calls to one dependency.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// New builds a breaker from cfg. State changes are logged and exported as
// the circuit_breaker_state gauge.
func New(cfg Config) *CircuitBreaker {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 1
	}
	breakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))

	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(float64(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})}
}

// Guard runs fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState. A nil breaker always runs fn.
func (b *CircuitBreaker) Guard(fn func() error) error {
	if b == nil {
		return fn()
	}
	_, err := b.cb.Execute(func() (any, error) { return nil, fn() })
	return err
}

// State reports the current state. A nil breaker is always closed.
func (b *CircuitBreaker) State() gobreaker.State {
	if b == nil {
		return gobreaker.StateClosed
	}
	return b.cb.State()
}

// IsOpen reports whether calls are currently rejected.
func (b *CircuitBreaker) IsOpen() bool {
	return b.State() == gobreaker.StateOpen
}
