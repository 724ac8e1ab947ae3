package ports

import (
	"context"

	"github.com/shelfworks/bookintake/internal/core/domain"
)

// Analyzer runs the full intake pipeline for one storage key.
type Analyzer interface {
	Analyze(ctx context.Context, key string) (*domain.Outcome, error)
}
