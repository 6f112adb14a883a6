package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/ppiankov/authorscope/internal/detect"
	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/util"
)

const essay = `We drove up the coast on Saturday because my sister wanted to see the lighthouse before it closed for the season.

The road was slow. Somebody's trailer had lost a wheel near the bridge, and we sat in traffic for almost an hour eating stale crackers.

By the time we got there the keeper was locking the gate, but he let us climb anyway. I still can't believe he did that.`

type stubClassifier struct {
	calls atomic.Int32
	err   error
}

func (s *stubClassifier) Name() string { return model.EngineHeuristic }

func (s *stubClassifier) Analyze(ctx context.Context, content string) (*model.AnalysisResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &model.AnalysisResult{
		AIProbability:  0.4,
		Classification: model.LabelPossiblyAI,
		Engine:         model.EngineHeuristic,
		Details:        map[string]interface{}{"content_length": len(content)},
	}, nil
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Output.Color = false
	cfg.RateLimiting.RequestsPerSecond = 0
	return cfg
}

func TestPipeline_AnalyzeText(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	report, err := p.AnalyzeText(context.Background(), essay, "")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if _, err := uuid.Parse(report.ID); err != nil {
		t.Errorf("Expected UUID report ID, got %q", report.ID)
	}
	if report.Result.Engine != model.EngineHeuristic {
		t.Errorf("Expected heuristic engine, got %q", report.Result.Engine)
	}
	if report.Result.AIProbability < 0 || report.Result.AIProbability > 1 {
		t.Errorf("Expected probability in [0,1], got %f", report.Result.AIProbability)
	}
	if report.ContentLength != len(essay) {
		t.Errorf("Expected content length %d, got %d", len(essay), report.ContentLength)
	}
	if report.WordCount == 0 {
		t.Error("Expected non-zero word count")
	}
	if !strings.HasPrefix(report.Excerpt, "We drove up the coast") {
		t.Errorf("Unexpected excerpt: %q", report.Excerpt)
	}
	if report.Source.Kind != model.SourceText {
		t.Errorf("Expected text source, got %q", report.Source.Kind)
	}
	if report.Notice != model.DefaultNotice {
		t.Error("Expected default notice")
	}
}

func TestPipeline_TooShort(t *testing.T) {
	stub := &stubClassifier{}
	p := NewPipelineWithClassifier(testConfig(), stub)

	_, err := p.AnalyzeText(context.Background(), "Too short to judge.", "")
	if !errors.Is(err, detect.ErrContentTooShort) {
		t.Fatalf("Expected ErrContentTooShort, got %v", err)
	}
	if !IsInputError(err) {
		t.Error("Expected too-short content to be an input error")
	}
	if stub.calls.Load() != 0 {
		t.Error("Expected engine not to be called for short content")
	}
}

func TestPipeline_EngineErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipelineWithClassifier(testConfig(), &stubClassifier{err: boom})

	report, err := p.AnalyzeText(context.Background(), essay, "")
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped engine error, got %v", err)
	}
	if report != nil {
		t.Error("Expected no report on failure")
	}
	if IsInputError(err) {
		t.Error("Engine failures are not input errors")
	}
}

func TestPipeline_Classifier(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	a, err := p.Classifier("")
	if err != nil {
		t.Fatalf("Classifier failed: %v", err)
	}
	b, err := p.Classifier("HEURISTIC")
	if err != nil {
		t.Fatalf("Classifier failed: %v", err)
	}
	if a != b {
		t.Error("Expected the default and named heuristic engine to share an instance")
	}

	if _, err := p.Classifier("bogus"); err == nil {
		t.Error("Expected error for unknown engine")
	}
}

func TestNewPipeline_RemoteWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := testConfig()
	cfg.Engine = model.EngineRemote

	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("Expected error when the remote engine has no API key")
	}
}

func TestPipeline_Cache(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	stub := &stubClassifier{}
	p := NewPipelineWithClassifier(cfg, stub)
	ctx := context.Background()

	first, err := p.AnalyzeText(ctx, essay, "")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	second, err := p.AnalyzeText(ctx, essay, "")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if first.Cached || !second.Cached {
		t.Errorf("Expected miss then hit, got %v then %v", first.Cached, second.Cached)
	}
	if stub.calls.Load() != 1 {
		t.Errorf("Expected one engine call, got %d", stub.calls.Load())
	}
	if first.ID == second.ID {
		t.Error("Expected a fresh report ID for cached results")
	}

	stats, ok := p.CacheStats()
	if !ok || stats.Hits != 1 {
		t.Errorf("Expected one cache hit, got %+v (ok=%v)", stats, ok)
	}

	if err := p.ClearCache(); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	if _, err := p.AnalyzeText(ctx, essay, ""); err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	if stub.calls.Load() != 2 {
		t.Errorf("Expected engine call after clearing, got %d calls", stub.calls.Load())
	}
}

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	page := "<html><head><title>Lighthouse Trip</title></head><body>" +
		strings.ReplaceAll("<p>"+essay+"</p>", "\n\n", "</p><p>") +
		"</body></html>"

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = fmt.Fprint(w, page)
		}
	}))
}

func TestPipeline_AnalyzeURL(t *testing.T) {
	server := newSiteServer(t)
	defer server.Close()

	p := NewPipelineWithClassifier(testConfig(), &stubClassifier{})

	report, err := p.AnalyzeURL(context.Background(), server.URL+"/trips/lighthouse", "")
	if err != nil {
		t.Fatalf("AnalyzeURL failed: %v", err)
	}
	if report.Subject != "Lighthouse Trip" {
		t.Errorf("Expected page title as subject, got %q", report.Subject)
	}
	if report.Source.Kind != model.SourceURL || report.Source.FetchMeta == nil {
		t.Fatalf("Expected URL source with fetch meta, got %+v", report.Source)
	}
	if report.Source.FetchMeta.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", report.Source.FetchMeta.StatusCode)
	}
	if strings.Contains(report.Excerpt, "<p>") {
		t.Errorf("Expected markup stripped from excerpt, got %q", report.Excerpt)
	}
}

func TestPipeline_AnalyzeURL_RobotsDisallowed(t *testing.T) {
	server := newSiteServer(t)
	defer server.Close()

	stub := &stubClassifier{}
	p := NewPipelineWithClassifier(testConfig(), stub)

	_, err := p.AnalyzeURL(context.Background(), server.URL+"/private/diary", "")
	if !errors.Is(err, util.ErrDisallowed) {
		t.Fatalf("Expected ErrDisallowed, got %v", err)
	}
	if stub.calls.Load() != 0 {
		t.Error("Expected engine not to be called")
	}

	cfg := testConfig()
	cfg.HTTP.RespectRobots = false
	p = NewPipelineWithClassifier(cfg, stub)
	if _, err := p.AnalyzeURL(context.Background(), server.URL+"/private/diary", ""); err != nil {
		t.Errorf("Expected robots.txt to be ignored, got %v", err)
	}
}

func TestPipeline_AnalyzeURL_Invalid(t *testing.T) {
	p := NewPipelineWithClassifier(testConfig(), &stubClassifier{})
	if _, err := p.AnalyzeURL(context.Background(), "not a url", ""); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestPipeline_AnalyzeInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.txt")
	if err := os.WriteFile(path, []byte(essay), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPipelineWithClassifier(testConfig(), &stubClassifier{})
	report, err := p.AnalyzeInput(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeInput failed: %v", err)
	}
	if report.Subject != "trip" || report.Source.Location != path {
		t.Errorf("Unexpected report source: %q %+v", report.Subject, report.Source)
	}

	if _, err := p.AnalyzeInput(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestExcerpt(t *testing.T) {
	if got := excerpt("  a\n\nb  c ", 10); got != "a b c" {
		t.Errorf("Expected collapsed whitespace, got %q", got)
	}
	if got := excerpt("héllo wörld", 5); got != "héllo…" {
		t.Errorf("Expected rune-safe truncation, got %q", got)
	}
}
