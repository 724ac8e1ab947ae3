package ports

import (
	"context"
	"io"

	"github.com/shelfworks/bookintake/internal/core/domain"
)

// ObjectStore is the object-storage boundary (R2 through the S3 API).
// Exists distinguishes "object missing" (false, nil) from transport failure
// (false, err); callers never infer absence from a generic error.
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, key string) error
}

// ContentExtractor converts a downloaded file into an excerpt and an
// optional local cover image.
type ContentExtractor interface {
	Format() domain.Format
	Extract(ctx context.Context, localPath, originalName, scratchDir string) (domain.ExtractionResult, error)
}

// Classifier turns an excerpt into a structured metadata record.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, excerpt string) (domain.Metadata, error)
}

// Transcriber produces text from an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, localPath string) (string, error)
}
