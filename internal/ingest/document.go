package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/ppiankov/authorscope/internal/model"
)

// StdinPath selects standard input wherever a file path is accepted
const StdinPath = "-"

// Document is text ready for analysis together with where it came from
type Document struct {
	Subject string
	Text    string
	Source  model.Source
}

// FromText wraps literal text passed on the command line or over the API
func FromText(text string) *Document {
	return &Document{
		Subject: "inline text",
		Text:    text,
		Source:  model.Source{Kind: model.SourceText},
	}
}

// IsURL reports whether input names an http(s) resource
func IsURL(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ReadFrom reads a whole stream as plain text
func ReadFrom(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("stdin is not valid UTF-8 text")
	}
	return &Document{
		Subject: "stdin",
		Text:    string(raw),
		Source:  model.Source{Kind: model.SourceStdin},
	}, nil
}

// LoadFile reads a text, Markdown, HTML or PDF file. "-" reads stdin.
func LoadFile(path string) (*Document, error) {
	if path == StdinPath {
		return ReadFrom(os.Stdin)
	}

	ext := strings.ToLower(filepath.Ext(path))
	subject := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var text string
	switch ext {
	case ".pdf":
		var err error
		text, err = parsePDF(path)
		if err != nil {
			return nil, err
		}
	case ".html", ".htm", ".xhtml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		doc, err := ExtractHTML(string(raw))
		if err != nil {
			return nil, err
		}
		if doc.Title != "" {
			subject = doc.Title
		}
		text = doc.Text
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("unsupported file type %q: not UTF-8 text", ext)
		}
		text = string(raw)
	}

	return &Document{
		Subject: subject,
		Text:    text,
		Source:  model.Source{Kind: model.SourceFile, Location: path},
	}, nil
}

// FromFetch converts a fetched page into a document
func FromFetch(res *FetchResult) (*Document, error) {
	subject := res.Subject
	text := res.Body

	if res.IsHTML() {
		doc, err := ExtractHTML(res.Body)
		if err != nil {
			return nil, err
		}
		if doc.Title != "" {
			subject = doc.Title
		}
		text = doc.Text
	}

	meta := res.Meta
	return &Document{
		Subject: subject,
		Text:    text,
		Source: model.Source{
			Kind:      model.SourceURL,
			Location:  res.FinalURL,
			FetchMeta: &meta,
		},
	}, nil
}

// parsePDF concatenates the plain text of every readable page
func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return strings.Join(pages, "\n\n"), nil
}
