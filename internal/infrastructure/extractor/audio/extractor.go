package audio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/core/naming"
	"github.com/shelfworks/bookintake/internal/core/ports"
)

const (
	coverWidth  = 600
	coverHeight = 800
)

// Extractor builds an excerpt for audio sources. When a transcriber is wired
// it uses a transcript; otherwise it describes the file from its tags. The
// cover comes from embedded artwork when present, falling back to a rendered
// placeholder so audio publishes with a cover like everything else.
type Extractor struct {
	format      domain.Format
	transcriber ports.Transcriber
	maxChars    int
}

func New(transcriber ports.Transcriber, maxChars int) *Extractor {
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &Extractor{format: domain.FormatAudio, transcriber: transcriber, maxChars: maxChars}
}

func (e *Extractor) Format() domain.Format { return e.format }

func (e *Extractor) Extract(ctx context.Context, localPath, originalName, scratchDir string) (domain.ExtractionResult, error) {
	title, artist, artwork := readTags(localPath)

	excerpt := ""
	if e.transcriber != nil {
		transcript, err := e.transcriber.Transcribe(ctx, localPath)
		if err != nil {
			slog.Warn("transcription_failed", "file", originalName, "error", err)
		} else {
			excerpt = transcript
		}
	}
	if strings.TrimSpace(excerpt) == "" {
		excerpt = describeFromTags(title, artist, originalName)
	}

	result := domain.ExtractionResult{
		Excerpt: clampExcerpt(excerpt, e.maxChars),
	}

	coverPath, err := e.writeCover(scratchDir, title, originalName, artwork)
	if err != nil {
		slog.Warn("cover_render_failed", "file", originalName, "error", err)
	} else {
		result.CoverPath = coverPath
	}
	return result, nil
}

func readTags(localPath string) (title, artist string, artwork []byte) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", "", nil
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", nil
	}
	if pic := meta.Picture(); pic != nil {
		artwork = pic.Data
	}
	return meta.Title(), meta.Artist(), artwork
}

func (e *Extractor) writeCover(scratchDir, title, originalName string, artwork []byte) (string, error) {
	coverPath := filepath.Join(scratchDir, "cover.jpg")

	if len(artwork) > 0 {
		img, err := imaging.Decode(bytes.NewReader(artwork))
		if err == nil {
			if err := imaging.Save(img, coverPath, imaging.JPEGQuality(85)); err != nil {
				return "", fmt.Errorf("save artwork: %w", err)
			}
			return coverPath, nil
		}
		slog.Warn("embedded_artwork_unreadable", "file", originalName, "error", err)
	}

	display := title
	if strings.TrimSpace(display) == "" {
		display = naming.Stem(originalName)
	}
	img := placeholderCover(display)
	if err := imaging.Save(img, coverPath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save placeholder: %w", err)
	}
	return coverPath, nil
}

func placeholderCover(title string) *image.NRGBA {
	img := imaging.New(coverWidth, coverHeight, color.NRGBA{R: 38, G: 42, B: 66, A: 255})
	face := basicfont.Face7x13
	lines := wrapTitle(title, 40)
	for i, line := range lines {
		width := len(line) * 7
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.NRGBA{R: 232, G: 233, B: 240, A: 255}),
			Face: face,
			Dot:  fixed.P((coverWidth-width)/2, 380+i*18),
		}
		drawer.DrawString(line)
	}
	return img
}

// wrapTitle breaks a title into display lines of at most width characters,
// splitting on spaces and hard-cutting any single word longer than a line.
func wrapTitle(title string, width int) []string {
	words := strings.Fields(title)
	if len(words) == 0 {
		return []string{"Audio"}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func describeFromTags(title, artist, originalName string) string {
	if strings.TrimSpace(title) == "" {
		title = naming.Stem(originalName)
	}
	if strings.TrimSpace(artist) != "" {
		return fmt.Sprintf("Audio recording titled %q by %s. No transcript is available; classify from the title and author.", title, artist)
	}
	return fmt.Sprintf("Audio recording titled %q. No transcript is available; classify from the title.", title)
}

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
