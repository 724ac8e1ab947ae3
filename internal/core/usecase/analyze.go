package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/core/naming"
	"github.com/shelfworks/bookintake/internal/core/ports"
)

// AnalyzeUseCase is the pipeline orchestrator: guard, download, extract,
// classify, publish, in that order, with a single attempt per external call.
// Classifier failures degrade to fallback metadata; every other failure
// aborts the run.
type AnalyzeUseCase struct {
	store      ports.ObjectStore
	guard      *IdempotencyGuard
	extractors map[string]ports.ContentExtractor
	classifier *ClassifierChain
	publisher  *Publisher
}

func NewAnalyzeUseCase(
	store ports.ObjectStore,
	guard *IdempotencyGuard,
	extractors map[string]ports.ContentExtractor,
	classifier *ClassifierChain,
	publisher *Publisher,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		store:      store,
		guard:      guard,
		extractors: extractors,
		classifier: classifier,
		publisher:  publisher,
	}
}

func (uc *AnalyzeUseCase) Analyze(ctx context.Context, key string) (*domain.Outcome, error) {
	start := time.Now()

	exists, err := uc.store.Exists(ctx, key)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "probe source object", err)
	}
	if !exists {
		return nil, domain.UserError(domain.ErrNotFound, fmt.Sprintf("File not found in R2: %s", key))
	}

	folder, filename := naming.SplitKey(key)
	ext := naming.Ext(filename)
	extractor, ok := uc.extractors[ext]
	if !ok {
		return nil, domain.UserError(domain.ErrUnsupportedFormat, fmt.Sprintf("Unsupported file type: %s", ext))
	}

	done, err := uc.guard.AlreadyProcessed(ctx, folder)
	if err != nil {
		return nil, err
	}
	if done {
		slog.Info("already_processed", "key", key, "folder", folder)
		return &domain.Outcome{
			Status:      domain.StatusAlreadyProcessed,
			SourceKey:   key,
			CoverKey:    folder + "/" + coverFilename,
			MetadataKey: folder + "/" + metadataFilename,
		}, nil
	}

	scratch := filepath.Join(os.TempDir(), "bookintake-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o700); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "create scratch dir", err)
	}
	defer os.RemoveAll(scratch)

	localPath := filepath.Join(scratch, "source"+path.Ext(filename))
	if err := uc.download(ctx, key, localPath); err != nil {
		return nil, err
	}

	res, err := extractor.Extract(ctx, localPath, filename, scratch)
	if err != nil {
		return nil, err
	}

	stem := naming.Stem(filename)
	meta, err := uc.classifier.Classify(ctx, res.Excerpt)
	if err != nil {
		// Classification is best effort: publish a degraded record instead.
		slog.Warn("classification_degraded", "key", key, "error", err)
		meta = domain.FallbackMetadata(stem)
	}

	target := ComputeTarget(meta, stem, extractor.Format(), path.Ext(filename))
	if err := uc.publisher.Publish(ctx, key, target, res, meta); err != nil {
		return nil, err
	}

	outcome := &domain.Outcome{
		Status:      domain.StatusProcessed,
		SourceKey:   key,
		FinalKey:    target.FileKey,
		MetadataKey: target.MetadataKey,
		Metadata:    meta,
	}
	if res.HasCover() {
		outcome.CoverKey = target.CoverKey
	}

	slog.Info("analysis_completed",
		"key", key,
		"final_key", target.FileKey,
		"degraded_metadata", meta.Degraded(),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	return outcome, nil
}

func (uc *AnalyzeUseCase) download(ctx context.Context, key, localPath string) error {
	rc, err := uc.store.Download(ctx, key)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "download source", err)
	}
	defer rc.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "create local file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, rc); err != nil {
		return domain.WrapError(domain.ErrStorage, "write local file", err)
	}
	return nil
}
