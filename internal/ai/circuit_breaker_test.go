package ai

import (
	"errors"
	"testing"
	"time"

	"skillproof/internal/config"
)

func enabledBreakerConfig() *config.CircuitBreakerConfig {
	return &config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func TestBreakerDisabled(t *testing.T) {
	cfg := &config.CircuitBreakerConfig{Enabled: false}

	b := newGenerationBreaker[string](cfg, nil)
	if b != nil {
		t.Fatal("breaker should be nil when disabled")
	}

	// A nil breaker still executes the function directly.
	result, err := b.Execute(func() (string, error) { return "ok", nil })
	if err != nil || result != "ok" {
		t.Errorf("nil breaker Execute = (%q, %v), want (ok, nil)", result, err)
	}

	if !b.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
	if enabled, _ := b.Stats()["enabled"].(bool); enabled {
		t.Error("nil breaker stats should report enabled=false")
	}
}

func TestBreakerEnabled(t *testing.T) {
	b := newGenerationBreaker[int](enabledBreakerConfig(), testLogger)
	if b == nil {
		t.Fatal("breaker should not be nil when enabled")
	}

	stats := b.Stats()
	if name, _ := stats["name"].(string); name != "AI-extract-skills" {
		t.Errorf("breaker name = %q, want AI-extract-skills", name)
	}
	if state, _ := stats["state"].(string); state != "closed" {
		t.Errorf("initial state = %q, want closed", state)
	}
	if !b.IsHealthy() {
		t.Error("breaker should be healthy initially")
	}

	result, err := b.Execute(func() (int, error) { return 42, nil })
	if err != nil || result != 42 {
		t.Errorf("Execute = (%d, %v), want (42, nil)", result, err)
	}
}

func TestBreakerTripsAfterFailures(t *testing.T) {
	b := newGenerationBreaker[int](enabledBreakerConfig(), testLogger)

	boom := errors.New("upstream failure")
	for range 5 {
		if _, err := b.Execute(func() (int, error) { return 0, boom }); err == nil {
			t.Fatal("expected failure to propagate")
		}
	}

	if b.IsHealthy() {
		t.Error("breaker should be open after repeated failures")
	}
	if state, _ := b.Stats()["state"].(string); state != "open" {
		t.Errorf("state = %q, want open", state)
	}
}

func TestModelBreakerName(t *testing.T) {
	b := newModelBreaker[string](enabledBreakerConfig(), testLogger)
	if name, _ := b.Stats()["name"].(string); name != "AI-model-info" {
		t.Errorf("model breaker name = %q, want AI-model-info", name)
	}
}
