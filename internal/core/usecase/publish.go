package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/core/naming"
	"github.com/shelfworks/bookintake/internal/core/ports"
)

// ComputeTarget derives the destination keys for one metadata record. The
// computation is deterministic: the same record and fallback always produce
// the same keys. When the classifier supplied no usable title the original
// filename stem is used instead.
func ComputeTarget(meta domain.Metadata, fallbackStem string, format domain.Format, ext string) domain.PublishTarget {
	slug, err := naming.Slugify(meta.StringField("clean_title"))
	if err != nil {
		slug, err = naming.Slugify(fallbackStem)
		if err != nil {
			slug = "untitled"
		}
	}

	category := naming.Category(meta.StringField("category"))
	folder := category + "/" + format.MediaType() + "/" + slug

	return domain.PublishTarget{
		FinalFolder: folder,
		FileKey:     folder + "/" + slug + ext,
		CoverKey:    folder + "/" + coverFilename,
		MetadataKey: folder + "/" + metadataFilename,
	}
}

// Publisher performs the ordered side-effect sequence for one analyzed
// object: relocate the original, upload the cover, upload the metadata
// record. Failures name the step that failed. Relocation is copy-then-delete;
// a crash in between leaves a duplicate, never a silent loss.
type Publisher struct {
	store ports.ObjectStore
}

func NewPublisher(store ports.ObjectStore) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Publish(
	ctx context.Context,
	sourceKey string,
	target domain.PublishTarget,
	res domain.ExtractionResult,
	meta domain.Metadata,
) error {
	if err := p.store.Copy(ctx, sourceKey, target.FileKey); err != nil {
		return domain.WrapError(domain.ErrStorage, "copy original", err)
	}
	if err := p.store.Delete(ctx, sourceKey); err != nil {
		return domain.WrapError(domain.ErrStorage, "delete original", err)
	}

	if res.HasCover() {
		if err := p.uploadCover(ctx, target.CoverKey, res.CoverPath); err != nil {
			return err
		}
	}

	body, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "encode metadata", err)
	}
	if err := p.store.Upload(ctx, target.MetadataKey, bytes.NewReader(body), "application/json"); err != nil {
		return domain.WrapError(domain.ErrStorage, "upload metadata", err)
	}
	return nil
}

func (p *Publisher) uploadCover(ctx context.Context, key, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "open cover file", err)
	}
	defer f.Close()

	if err := p.store.Upload(ctx, key, f, "image/jpeg"); err != nil {
		return domain.WrapError(domain.ErrStorage, "upload cover", fmt.Errorf("key %s: %w", key, err))
	}
	return nil
}
