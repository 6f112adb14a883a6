package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/authorscope/internal/model"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  On   Writing </title>
  <style>p { color: red; }</style>
  <script>var tracking = "Furthermore, moreover";</script>
</head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <h1>On Writing</h1>
  <p>The first paragraph has <b>bold</b> words
     spread across lines.</p>
  <p>The second paragraph follows.</p>
  <ul><li>One item</li><li>Another item</li></ul>
  <noscript>Enable JavaScript</noscript>
</body>
</html>`

func TestExtractHTML(t *testing.T) {
	doc, err := ExtractHTML(samplePage)
	if err != nil {
		t.Fatalf("ExtractHTML failed: %v", err)
	}

	if doc.Title != "On Writing" {
		t.Errorf("Expected title 'On Writing', got %q", doc.Title)
	}

	expected := []string{
		"On Writing",
		"The first paragraph has bold words spread across lines.",
		"The second paragraph follows.",
		"One item",
		"Another item",
	}
	got := strings.Split(doc.Text, "\n\n")
	if len(got) != len(expected) {
		t.Fatalf("Expected %d paragraphs, got %d: %q", len(expected), len(got), doc.Text)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Paragraph %d: expected %q, got %q", i, expected[i], got[i])
		}
	}

	for _, hidden := range []string{"tracking", "color", "Home", "JavaScript"} {
		if strings.Contains(doc.Text, hidden) {
			t.Errorf("Expected %q to be skipped", hidden)
		}
	}
}

func TestExtractHTML_Empty(t *testing.T) {
	doc, err := ExtractHTML("")
	if err != nil {
		t.Fatalf("ExtractHTML failed: %v", err)
	}
	if doc.Text != "" || doc.Title != "" {
		t.Errorf("Expected empty document, got %+v", doc)
	}
}

func TestLoadFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay-draft.md")
	if err := os.WriteFile(path, []byte("# Title\n\nBody text."), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if doc.Text != "# Title\n\nBody text." {
		t.Errorf("Expected raw markdown, got %q", doc.Text)
	}
	if doc.Subject != "essay-draft" {
		t.Errorf("Expected subject essay-draft, got %q", doc.Subject)
	}
	if doc.Source.Kind != model.SourceFile || doc.Source.Location != path {
		t.Errorf("Unexpected source: %+v", doc.Source)
	}
}

func TestLoadFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(samplePage), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if doc.Subject != "On Writing" {
		t.Errorf("Expected title as subject, got %q", doc.Subject)
	}
	if strings.Contains(doc.Text, "<p>") {
		t.Error("Expected markup to be stripped")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}

	binary := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0x81}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(binary); err == nil {
		t.Error("Expected error for non-UTF-8 file")
	}

	notPDF := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(notPDF, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(notPDF); err == nil {
		t.Error("Expected error for invalid pdf")
	}
}

func TestReadFrom(t *testing.T) {
	doc, err := ReadFrom(strings.NewReader("piped text"))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if doc.Text != "piped text" || doc.Source.Kind != model.SourceStdin {
		t.Errorf("Unexpected document: %+v", doc)
	}
}

func TestFromFetch(t *testing.T) {
	res := &FetchResult{
		Body:     samplePage,
		Meta:     model.FetchMeta{StatusCode: 200, ContentType: "text/html; charset=utf-8"},
		Subject:  "writing",
		FinalURL: "https://example.com/writing",
	}
	doc, err := FromFetch(res)
	if err != nil {
		t.Fatalf("FromFetch failed: %v", err)
	}
	if doc.Subject != "On Writing" {
		t.Errorf("Expected page title, got %q", doc.Subject)
	}
	if doc.Source.Kind != model.SourceURL || doc.Source.FetchMeta == nil {
		t.Errorf("Unexpected source: %+v", doc.Source)
	}

	plain := &FetchResult{Body: "just text", Meta: model.FetchMeta{ContentType: "text/plain"}, Subject: "notes"}
	doc, err = FromFetch(plain)
	if err != nil {
		t.Fatalf("FromFetch failed: %v", err)
	}
	if doc.Text != "just text" || doc.Subject != "notes" {
		t.Errorf("Expected plain body passthrough, got %+v", doc)
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.com") || !IsURL(" HTTP://x") {
		t.Error("Expected http(s) inputs to be URLs")
	}
	if IsURL("notes.txt") || IsURL("ftp://example.com") {
		t.Error("Expected non-http inputs not to be URLs")
	}
}
