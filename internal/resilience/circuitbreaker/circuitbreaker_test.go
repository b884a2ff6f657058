package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          1 * time.Second, // Short timeout for testing
		FailureThreshold: 0.6,             // 60% failure rate
		MinRequests:      5,               // Minimum 5 requests
	}
}

func fail(err error) func() (interface{}, error) {
	return func() (interface{}, error) { return nil, err }
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected result='success', got %v", result)
	}
}

func TestCircuitBreaker_TripsOpen(t *testing.T) {
	cb := New(testConfig())
	testErr := errors.New("test error")

	// 5 failures = 100% failure rate
	for i := 0; i < 5; i++ {
		if _, err := cb.Execute(fail(testErr)); err != testErr {
			t.Errorf("request %d: expected test error, got %v", i, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected state=Open after exceeding failure threshold, got %v", cb.State())
	}

	// Next request should fail immediately with ErrOpenState
	_, err := cb.Execute(func() (interface{}, error) {
		t.Error("function should not be called when circuit is open")
		return nil, nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	cfg := testConfig()
	cfg.Timeout = 100 * time.Millisecond // Very short timeout for testing
	cb := New(cfg)

	for i := 0; i < 6; i++ {
		_, _ = cb.Execute(fail(errors.New("test error")))
	}
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("circuit should be open, got %v", cb.State())
	}

	// Wait for timeout to transition to half-open
	time.Sleep(150 * time.Millisecond)

	if _, err := cb.Execute(func() (interface{}, error) { return "success", nil }); err != nil {
		t.Errorf("expected success in half-open state, got %v", err)
	}
	if cb.IsOpen() {
		t.Errorf("circuit should not be open after successful half-open request, got %v", cb.State())
	}
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cfg := testConfig()
	cfg.MinRequests = 10 // Need at least 10 requests
	cb := New(cfg)

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(fail(errors.New("test error")))
	}

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected state=Closed (below MinRequests), got %v", cb.State())
	}
}

func TestCircuitBreaker_CancellationIsNotAFailure(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(fail(fmt.Errorf("find: %w", context.Canceled)))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	}

	if cb.IsOpen() {
		t.Error("cancelled requests must not trip the circuit")
	}
}

func TestCircuitBreaker_DeadlineIsAFailure(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(fail(fmt.Errorf("find: %w", context.DeadlineExceeded)))
	}

	if !cb.IsOpen() {
		t.Errorf("expected expired deadlines to open the circuit, got %v", cb.State())
	}
}

func TestStorageConfig(t *testing.T) {
	cfg := StorageConfig()

	if cfg.Name != "storage" {
		t.Errorf("expected Name='storage', got %q", cfg.Name)
	}
	if cfg.MinRequests != 5 {
		t.Errorf("expected MinRequests=5, got %d", cfg.MinRequests)
	}
	if cfg.FailureThreshold != 1.0 {
		t.Errorf("expected FailureThreshold=1.0, got %f", cfg.FailureThreshold)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("test")

	if cfg.Name != "test" {
		t.Errorf("expected Name='test', got %q", cfg.Name)
	}
	if cfg.MaxRequests != 3 {
		t.Errorf("expected MaxRequests=3, got %d", cfg.MaxRequests)
	}
	if cfg.FailureThreshold != 0.6 {
		t.Errorf("expected FailureThreshold=0.6, got %f", cfg.FailureThreshold)
	}
}
