package pdf

import (
	"strings"
	"testing"
)

func TestClampExcerptKeepsShortText(t *testing.T) {
	if got := clampExcerpt("hello", 10); got != "hello" {
		t.Fatalf("expected text untouched, got %q", got)
	}
}

func TestClampExcerptTruncatesLongText(t *testing.T) {
	got := clampExcerpt(strings.Repeat("a", 50), 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 chars, got %d", len(got))
	}
}

func TestClampExcerptCountsRunesNotBytes(t *testing.T) {
	got := clampExcerpt("привет мир", 6)
	if got != "привет" {
		t.Fatalf("expected rune-boundary truncation, got %q", got)
	}
}

func TestClampExcerptZeroMeansUnlimited(t *testing.T) {
	text := strings.Repeat("x", 100)
	if got := clampExcerpt(text, 0); got != text {
		t.Fatalf("expected unlimited excerpt, got %d chars", len(got))
	}
}

func TestNewDefaultsExcerptCap(t *testing.T) {
	e := New(0)
	if e.maxChars != 4000 {
		t.Fatalf("expected default cap 4000, got %d", e.maxChars)
	}
}
