package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Enabled:          true,
		MinRequests:      2,
		FailureRatio:     0.5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxCalls: 1,
	}
}

func TestExecuteRunsCallback(t *testing.T) {
	b := NewBreaker(testConfig())
	calls := 0
	err := b.Execute(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

func TestExecuteNeverRetries(t *testing.T) {
	b := NewBreaker(testConfig())
	calls := 0
	boom := errors.New("backend down")
	err := b.Execute(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("a failing call must not be retried, got %d calls", calls)
	}
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	b := NewBreaker(testConfig())
	boom := errors.New("backend down")

	for i := 0; i < 2; i++ {
		_ = b.Execute(context.Background(), "op", func(ctx context.Context) error {
			return boom
		})
	}

	calls := 0
	err := b.Execute(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	})
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("open circuit must not reach the backend")
	}
}

func TestBreakersAreScopedPerOperation(t *testing.T) {
	b := NewBreaker(testConfig())
	boom := errors.New("backend down")

	for i := 0; i < 2; i++ {
		_ = b.Execute(context.Background(), "bad", func(ctx context.Context) error {
			return boom
		})
	}

	err := b.Execute(context.Background(), "good", func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unrelated operation must stay closed: %v", err)
	}
}

func TestDisabledBreakerPassesThrough(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	b := NewBreaker(cfg)
	boom := errors.New("backend down")

	for i := 0; i < 10; i++ {
		_ = b.Execute(context.Background(), "op", func(ctx context.Context) error {
			return boom
		})
	}

	err := b.Execute(context.Background(), "op", func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("disabled breaker must never open: %v", err)
	}
}

func TestExecuteRejectsNilCallback(t *testing.T) {
	b := NewBreaker(testConfig())
	if err := b.Execute(context.Background(), "op", nil); err == nil {
		t.Fatalf("expected error for nil callback")
	}
}
