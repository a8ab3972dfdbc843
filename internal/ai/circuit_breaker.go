package ai

import (
	"skillproof/internal/config"
	"skillproof/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// Breaker wraps a typed circuit breaker around one class of AI calls.
// A nil Breaker executes functions directly, which is how a disabled
// breaker is represented.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// newBreaker creates a circuit breaker with the given trip thresholds.
// Returns nil when the breaker is disabled in configuration.
func newBreaker[T any](name string, cfg *config.CircuitBreakerConfig, minRequests uint32, failureThreshold float64, logger *errors.Logger) *Breaker[T] {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= failureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", failureThreshold)
		},
	}

	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// newGenerationBreaker creates the breaker protecting content generation
func newGenerationBreaker[T any](cfg *config.CircuitBreakerConfig, logger *errors.Logger) *Breaker[T] {
	return newBreaker[T]("AI-extract-skills", cfg, cfg.MinRequests, cfg.FailureThreshold, logger)
}

// newModelBreaker creates the breaker protecting model info lookups.
// Model info is less critical, so the thresholds are more lenient.
func newModelBreaker[T any](cfg *config.CircuitBreakerConfig, logger *errors.Logger) *Breaker[T] {
	return newBreaker[T]("AI-model-info", cfg, 5, 0.8, logger)
}

// Execute runs fn with circuit breaker protection
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// Stats returns circuit breaker statistics for the stats endpoint
func (b *Breaker[T]) Stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}

	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the breaker is closed or disabled
func (b *Breaker[T]) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
