package usecase

import (
	"context"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/core/ports"
)

const (
	coverFilename    = "cover.jpg"
	metadataFilename = "metadata.json"
)

// IdempotencyGuard detects folders whose outputs were already published, so
// the pipeline can short-circuit before any download or classifier call.
// The check is advisory: two concurrent requests for the same key may both
// pass it, and the last writer wins.
type IdempotencyGuard struct {
	store ports.ObjectStore
}

func NewIdempotencyGuard(store ports.ObjectStore) *IdempotencyGuard {
	return &IdempotencyGuard{store: store}
}

// AlreadyProcessed returns true iff the folder itself contains both a cover
// image and a metadata record. Only direct children count: published outputs
// nest under category subfolders, and outputs of an earlier book must not
// mark a sibling upload in the parent folder as done.
func (g *IdempotencyGuard) AlreadyProcessed(ctx context.Context, folder string) (bool, error) {
	if folder == "" {
		return false, nil
	}

	keys, err := g.store.List(ctx, folder+"/")
	if err != nil {
		return false, domain.WrapError(domain.ErrStorage, "list output folder", err)
	}

	var hasCover, hasMetadata bool
	for _, key := range keys {
		switch key {
		case folder + "/" + coverFilename:
			hasCover = true
		case folder + "/" + metadataFilename:
			hasMetadata = true
		}
	}
	return hasCover && hasMetadata, nil
}
