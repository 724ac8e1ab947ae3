package naming

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName signals that a candidate name has no usable characters.
// Callers substitute a deterministic fallback (usually the filename stem).
var ErrInvalidName = errors.New("invalid name")

const uncategorized = "Uncategorized"

// SplitKey splits a storage key "folder/filename.ext" into its folder prefix
// and filename. Keys without a folder yield an empty folder.
func SplitKey(key string) (folder, filename string) {
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return "", key
	}
	return key[:idx], key[idx+1:]
}

// Stem returns the filename without its extension.
func Stem(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

// Ext returns the lowercased extension of a key without the leading dot.
func Ext(key string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns arbitrary text into a path-safe slug: lowercase, diacritics
// stripped, every run of non-alphanumeric characters collapsed to a single
// underscore, leading and trailing underscores trimmed. Slugifying a slug
// returns it unchanged.
func Slugify(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("slugify: %w", ErrInvalidName)
	}

	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}

	slug := b.String()
	if slug == "" {
		return "", fmt.Errorf("slugify: %w", ErrInvalidName)
	}
	return slug, nil
}

// Category normalizes a classifier-provided category into a path prefix.
// Slash-separated segments are preserved (they form nested folders); spaces
// inside a segment become underscores. Empty input maps to "Uncategorized".
func Category(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return uncategorized
	}

	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(s, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segments = append(segments, strings.ReplaceAll(seg, " ", "_"))
	}
	if len(segments) == 0 {
		return uncategorized
	}
	return strings.Join(segments, "/")
}
