package classifier

import (
	"encoding/json"
	"strings"

	"github.com/shelfworks/bookintake/internal/core/domain"
)

// ParseMetadata interprets a backend response as a JSON object. Backends
// sometimes wrap the object in code fences or surround it with commentary,
// so the parser strips fences and takes the substring between the first '{'
// and the last '}'. Unparseable responses degrade to the parse_failed record
// instead of an error: metadata is best effort and never blocks publishing.
func ParseMetadata(raw string) domain.Metadata {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return domain.ParseFailedMetadata(raw)
	}

	var meta domain.Metadata
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &meta); err != nil {
		return domain.ParseFailedMetadata(raw)
	}
	return meta
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
