package classifier

import (
	"context"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/core/ports"
	"github.com/shelfworks/bookintake/internal/infrastructure/resilience"
	"github.com/shelfworks/bookintake/internal/observability/metrics"
)

// Guarded wraps a classifier backend with a circuit breaker so a tripped
// circuit fails fast instead of calling out, and records per-backend attempt
// metrics.
type Guarded struct {
	backend ports.Classifier
	breaker *resilience.Breaker
	metrics *metrics.Metrics
}

func NewGuarded(backend ports.Classifier, breaker *resilience.Breaker, m *metrics.Metrics) *Guarded {
	return &Guarded{backend: backend, breaker: breaker, metrics: m}
}

func (g *Guarded) Name() string { return g.backend.Name() }

func (g *Guarded) Classify(ctx context.Context, excerpt string) (domain.Metadata, error) {
	var meta domain.Metadata
	err := g.breaker.Execute(ctx, "classifier_"+g.backend.Name(), func(ctx context.Context) error {
		result, err := g.backend.Classify(ctx, excerpt)
		if err != nil {
			return err
		}
		meta = result
		return nil
	})

	switch {
	case err == nil:
		g.metrics.ObserveClassifierAttempt(g.backend.Name(), "ok")
	case resilience.IsCircuitOpen(err):
		g.metrics.ObserveClassifierAttempt(g.backend.Name(), "circuit_open")
	default:
		g.metrics.ObserveClassifierAttempt(g.backend.Name(), "error")
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}
