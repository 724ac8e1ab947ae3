package transcriber

import (
	"context"

	"github.com/shelfworks/bookintake/internal/core/ports"
	"github.com/shelfworks/bookintake/internal/infrastructure/resilience"
)

// Guarded wraps a transcriber with a circuit breaker so a flapping
// speech-to-text backend is shed quickly. Callers already treat any
// transcription failure as "no transcript", so a tripped circuit just means
// audio excerpts fall back to tag descriptions for a while.
type Guarded struct {
	backend ports.Transcriber
	breaker *resilience.Breaker
}

func NewGuarded(backend ports.Transcriber, breaker *resilience.Breaker) *Guarded {
	return &Guarded{backend: backend, breaker: breaker}
}

func (g *Guarded) Transcribe(ctx context.Context, localPath string) (string, error) {
	var transcript string
	err := g.breaker.Execute(ctx, "transcriber", func(ctx context.Context) error {
		result, err := g.backend.Transcribe(ctx, localPath)
		if err != nil {
			return err
		}
		transcript = result
		return nil
	})
	if err != nil {
		return "", err
	}
	return transcript, nil
}
