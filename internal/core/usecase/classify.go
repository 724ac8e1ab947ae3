package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/core/ports"
)

// ClassifierChain tries configured backends in order until one returns a
// usable record. Backend failures are logged and the next backend is tried;
// the chain itself fails only when every backend does. Callers absorb that
// failure into a degraded metadata record, never into a request error.
type ClassifierChain struct {
	backends []ports.Classifier
}

func NewClassifierChain(backends ...ports.Classifier) *ClassifierChain {
	return &ClassifierChain{backends: backends}
}

func (c *ClassifierChain) Classify(ctx context.Context, excerpt string) (domain.Metadata, error) {
	if len(c.backends) == 0 {
		return nil, domain.WrapError(domain.ErrClassification, "classify", errors.New("no backends configured"))
	}

	var lastErr error
	for _, backend := range c.backends {
		meta, err := backend.Classify(ctx, excerpt)
		if err != nil {
			slog.Warn("classifier_backend_failed", "backend", backend.Name(), "error", err)
			lastErr = err
			continue
		}
		if len(meta) == 0 {
			lastErr = errors.New(backend.Name() + " returned empty metadata")
			continue
		}
		return meta, nil
	}
	return nil, domain.WrapError(domain.ErrClassification, "classify", lastErr)
}
