package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	fitz "github.com/gen2brain/go-fitz"

	"github.com/disintegration/imaging"
	"github.com/shelfworks/bookintake/internal/core/domain"
)

const (
	maxTextPages = 5
	coverDPI     = 150
)

// Extractor pulls an excerpt from the opening pages of a PDF and renders the
// first page as a cover image. A failed cover render degrades to no cover;
// unreadable text is fatal because classification has nothing to work with.
type Extractor struct {
	maxChars int
}

func New(maxChars int) *Extractor {
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &Extractor{maxChars: maxChars}
}

func (e *Extractor) Format() domain.Format { return domain.FormatPDF }

func (e *Extractor) Extract(ctx context.Context, localPath, originalName, scratchDir string) (domain.ExtractionResult, error) {
	doc, err := fitz.New(localPath)
	if err != nil {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrExtraction, "open pdf", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrExtraction, "open pdf", fmt.Errorf("document has no pages"))
	}

	// Page 0 is the cover; the excerpt comes from the pages after it. A
	// single-page document falls back to the cover page's text.
	first, last := 1, maxTextPages
	if doc.NumPage() == 1 {
		first = 0
	}
	if last > doc.NumPage()-1 {
		last = doc.NumPage() - 1
	}

	var sb strings.Builder
	for i := first; i <= last; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return domain.ExtractionResult{}, domain.WrapError(domain.ErrExtraction, fmt.Sprintf("extract text page %d", i), err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := domain.ExtractionResult{
		Excerpt: clampExcerpt(strings.TrimSpace(sb.String()), e.maxChars),
	}

	coverPath, err := e.renderCover(doc, scratchDir)
	if err != nil {
		slog.Warn("cover_render_failed", "file", originalName, "error", err)
	} else {
		result.CoverPath = coverPath
	}
	return result, nil
}

func (e *Extractor) renderCover(doc *fitz.Document, scratchDir string) (string, error) {
	img, err := doc.ImageDPI(0, coverDPI)
	if err != nil {
		return "", fmt.Errorf("render first page: %w", err)
	}
	coverPath := filepath.Join(scratchDir, "cover.jpg")
	if err := imaging.Save(img, coverPath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save cover: %w", err)
	}
	return coverPath, nil
}

// clampExcerpt truncates on a rune boundary so multi-byte characters are
// never split mid-sequence.
func clampExcerpt(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
