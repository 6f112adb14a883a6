package model

import "time"

// Report wraps an analysis result with the metadata of where the text came from
type Report struct {
	ID         string    `json:"id"`          // Unique report identifier
	Subject    string    `json:"subject"`     // Human-readable subject (file name, page title)
	Source     Source    `json:"source"`      // Where the text came from
	AnalyzedAt time.Time `json:"analyzed_at"` // When the analysis ran

	ContentLength int    `json:"content_length"`    // Bytes handed to the engine
	WordCount     int    `json:"word_count"`        // Letter-word count of the input
	Excerpt       string `json:"excerpt,omitempty"` // First characters of the input

	Result AnalysisResult `json:"result"`
	Cached bool           `json:"cached,omitempty"` // Served from the result cache

	Notice string `json:"notice"` // Interpretation caveat shown with every report
}

// Source describes the origin of analyzed text
type Source struct {
	Kind      SourceKind `json:"kind"`
	Location  string     `json:"location,omitempty"` // Path or URL
	FetchMeta *FetchMeta `json:"fetch_meta,omitempty"`
}

// SourceKind classifies the input origin
type SourceKind string

const (
	SourceText  SourceKind = "text"
	SourceStdin SourceKind = "stdin"
	SourceFile  SourceKind = "file"
	SourceURL   SourceKind = "url"
)

// FetchMeta contains HTTP metadata from fetching a URL source
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	FinalURL     string            `json:"final_url,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// DefaultNotice is attached to every report
const DefaultNotice = "Scores are probabilistic estimates from text statistics or a language model. " +
	"They are not proof of authorship and should not be the sole basis for any decision."
