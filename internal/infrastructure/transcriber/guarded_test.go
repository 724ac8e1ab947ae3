package transcriber

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shelfworks/bookintake/internal/infrastructure/resilience"
)

type backendFake struct {
	text  string
	err   error
	calls int
}

func (b *backendFake) Transcribe(ctx context.Context, localPath string) (string, error) {
	b.calls++
	return b.text, b.err
}

func newBreaker(t *testing.T) *resilience.Breaker {
	t.Helper()
	return resilience.NewBreaker(resilience.Config{
		Enabled:          true,
		MinRequests:      2,
		FailureRatio:     0.5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxCalls: 1,
	})
}

func TestGuardedPassesTranscriptThrough(t *testing.T) {
	fake := &backendFake{text: "chapter one"}
	g := NewGuarded(fake, newBreaker(t))

	got, err := g.Transcribe(context.Background(), "/tmp/a.mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "chapter one" {
		t.Fatalf("unexpected transcript: %q", got)
	}
	if fake.calls != 1 {
		t.Fatalf("expected one backend call, got %d", fake.calls)
	}
}

func TestGuardedShedsCallsWhenCircuitOpen(t *testing.T) {
	fake := &backendFake{err: errors.New("stt down")}
	g := NewGuarded(fake, newBreaker(t))

	for i := 0; i < 2; i++ {
		if _, err := g.Transcribe(context.Background(), "/tmp/a.mp3"); err == nil {
			t.Fatalf("expected backend failure")
		}
	}

	before := fake.calls
	_, err := g.Transcribe(context.Background(), "/tmp/a.mp3")
	if !resilience.IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if fake.calls != before {
		t.Fatalf("open circuit must not reach the backend")
	}
}
