package infra

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Feeds (price board, exchange rate) run behind a gobreaker so a dead upstream
// fails fast instead of stacking timeouts on every request.
//
// States: closed → open after FailureThreshold consecutive failures,
// half-open after OpenTimeout, closed again on the first successful probe.

// ErrCircuitOpen is returned by Execute while the breaker is open.
var ErrCircuitOpen = gobreaker.ErrOpenState

// CircuitBreakerConfig holds tunable parameters.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip open (default: 3)
	OpenTimeout      time.Duration // how long to stay open before probing (default: 60s)
	Interval         time.Duration // closed-state counter reset; 0 never resets
}

// DefaultCBConfig returns defaults suited to slow public feeds.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 3,
		OpenTimeout:      60 * time.Second,
	}
}

// NewCircuitBreaker builds a named breaker and logs every state transition.
func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	fails := uint32(cfg.FailureThreshold)

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: cfg.Interval,
		Timeout:  cfg.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= fails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
}
