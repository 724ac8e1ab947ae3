package domain

// Format identifies how the pipeline handles a source object.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatAudio Format = "audio"
)

// MediaType is the layout segment used for the published folder,
// e.g. Business/Marketing/PDF/lead_gen_101.
func (f Format) MediaType() string {
	if f == FormatAudio {
		return "AUDIO"
	}
	return "PDF"
}

// ExtractionResult is the ephemeral per-request output of a content
// extractor. CoverPath points at a local temporary file and is empty when no
// cover could be produced; a missing cover only disables the cover upload.
type ExtractionResult struct {
	Excerpt   string
	CoverPath string
}

func (r ExtractionResult) HasCover() bool { return r.CoverPath != "" }

// Metadata is a field contract rather than a fixed schema: classifier
// backends may omit fields, and degraded records carry an "error" field
// instead. It is persisted verbatim as metadata.json.
type Metadata map[string]any

// StringField returns the named field when it is a non-empty string.
func (m Metadata) StringField(key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// Degraded reports whether the record is a fallback shape produced after a
// classifier or parse failure.
func (m Metadata) Degraded() bool {
	return m.StringField("error") != ""
}

// FallbackMetadata is the record written when every classifier backend
// failed. The original filename stem is preserved so the publish layout stays
// deterministic.
func FallbackMetadata(stem string) Metadata {
	return Metadata{
		"error":          "metadata generation failed",
		"fallback_title": stem,
	}
}

// ParseFailedMetadata is the record written when a backend answered but the
// answer was not valid JSON. The raw response is kept for later inspection.
func ParseFailedMetadata(raw string) Metadata {
	return Metadata{
		"error":    "parse_failed",
		"raw_text": raw,
	}
}

// PublishTarget is the set of destination keys derived from one Metadata
// record. Computing it twice from the same record yields identical keys.
type PublishTarget struct {
	FinalFolder string
	FileKey     string
	CoverKey    string
	MetadataKey string
}

type OutcomeStatus string

const (
	StatusProcessed        OutcomeStatus = "processed"
	StatusAlreadyProcessed OutcomeStatus = "already_processed"
)

// Outcome is the terminal result of one pipeline run.
type Outcome struct {
	Status      OutcomeStatus
	SourceKey   string
	FinalKey    string
	CoverKey    string
	MetadataKey string
	Metadata    Metadata
}
