package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ppiankov/authorscope/internal/cache"
	"github.com/ppiankov/authorscope/internal/detect"
	"github.com/ppiankov/authorscope/internal/ingest"
	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/score"
	"github.com/ppiankov/authorscope/internal/util"
	"github.com/ppiankov/authorscope/internal/worker"
)

const excerptRunes = 280

// Pipeline turns inputs (text, files, URLs) into reports.
// It is safe for concurrent use by the batch pool and the API server.
type Pipeline struct {
	config   *model.Config
	fetcher  *ingest.Fetcher
	robots   *util.RobotsChecker // nil when robots.txt is ignored
	hosts    *worker.Limiter     // per-host fetch throttle
	store    cache.Cache         // nil when the result cache is disabled
	renderer *Renderer

	mu          sync.Mutex
	classifiers map[string]detect.TextClassifier
}

// NewPipeline creates a pipeline and eagerly builds the configured engine so
// configuration errors surface before any input is read
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	p := newPipeline(cfg)
	if _, err := p.Classifier(cfg.Engine); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPipelineWithClassifier creates a pipeline whose default engine is c
func NewPipelineWithClassifier(cfg *model.Config, c detect.TextClassifier) *Pipeline {
	p := newPipeline(cfg)
	p.classifiers[engineKey(cfg, "")] = p.wrap(c, cfg.Engine)
	return p
}

func newPipeline(cfg *model.Config) *Pipeline {
	p := &Pipeline{
		config:      cfg,
		fetcher:     ingest.NewFetcher(cfg.HTTP),
		hosts:       worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		renderer:    NewRenderer(cfg.Output),
		classifiers: make(map[string]detect.TextClassifier),
	}

	if cfg.HTTP.RespectRobots {
		proxy := util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
		p.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout, proxy)
	}

	if cfg.Cache.Enabled {
		p.store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return p
}

// engineKey maps aliases and the empty name onto one classifier slot
func engineKey(cfg *model.Config, engine string) string {
	engine = strings.ToLower(strings.TrimSpace(engine))
	if engine == "" {
		engine = strings.ToLower(cfg.Engine)
	}
	switch engine {
	case "", model.EngineHeuristic:
		return model.EngineHeuristic
	case "llm":
		return model.EngineRemote
	default:
		return engine
	}
}

// Classifier returns the engine by name, building it on first use.
// An empty name selects the configured default.
func (p *Pipeline) Classifier(engine string) (detect.TextClassifier, error) {
	key := engineKey(p.config, engine)

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.classifiers[key]; ok {
		return c, nil
	}

	c, err := detect.NewFor(p.config, key)
	if err != nil {
		return nil, err
	}
	c = p.wrap(c, key)
	p.classifiers[key] = c
	return c, nil
}

func (p *Pipeline) wrap(c detect.TextClassifier, engine string) detect.TextClassifier {
	if p.store == nil {
		return c
	}
	return detect.WithCache(c, p.store, detect.Fingerprint(p.config, engine), 0, p.config.Output.Verbose)
}

// CacheStats reports result cache usage; ok is false when caching is off
func (p *Pipeline) CacheStats() (cache.Stats, bool) {
	layered, ok := p.store.(*cache.LayeredCache)
	if !ok {
		return cache.Stats{}, false
	}
	return layered.Stats(), true
}

// ClearCache empties the result cache
func (p *Pipeline) ClearCache() error {
	if p.store == nil {
		return nil
	}
	return p.store.Clear()
}

// Renderer returns the report renderer configured for this pipeline
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// AnalyzeText analyzes literal text with the named engine
func (p *Pipeline) AnalyzeText(ctx context.Context, text, engine string) (*model.Report, error) {
	return p.AnalyzeDocument(ctx, ingest.FromText(text), engine)
}

// AnalyzeFile analyzes a local file or stdin ("-")
func (p *Pipeline) AnalyzeFile(ctx context.Context, path, engine string) (*model.Report, error) {
	doc, err := ingest.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p.AnalyzeDocument(ctx, doc, engine)
}

// AnalyzeURL fetches a page, honoring robots.txt and per-host throttling,
// and analyzes its text
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL, engine string) (*model.Report, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}

	var crawlDelay time.Duration
	if p.robots != nil {
		crawlDelay, err = p.robots.Check(ctx, rawURL)
		if err != nil {
			return nil, err
		}
	}

	if err := p.hosts.WaitWithDelay(ctx, parsed.Host, crawlDelay); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Fetching %s\n", rawURL)
	}
	res, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	doc, err := ingest.FromFetch(res)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	return p.AnalyzeDocument(ctx, doc, engine)
}

// AnalyzeInput dispatches a batch line: URLs are scanned, anything else is a
// file path. The configured default engine is used.
func (p *Pipeline) AnalyzeInput(ctx context.Context, input string) (*model.Report, error) {
	if ingest.IsURL(input) {
		return p.AnalyzeURL(ctx, strings.TrimSpace(input), "")
	}
	return p.AnalyzeFile(ctx, input, "")
}

// AnalyzeDocument validates the text length and runs the engine
func (p *Pipeline) AnalyzeDocument(ctx context.Context, doc *ingest.Document, engine string) (*model.Report, error) {
	if err := detect.ValidateContent(doc.Text, p.config.MinLength); err != nil {
		return nil, err
	}

	classifier, err := p.Classifier(engine)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		result *model.AnalysisResult
		cached bool
	)
	if cc, ok := classifier.(*detect.CachedClassifier); ok {
		result, cached, err = cc.AnalyzeCached(ctx, doc.Text)
	} else {
		result, err = classifier.Analyze(ctx, doc.Text)
	}
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzed %s with %s in %s (%s)\n",
			doc.Subject, classifier.Name(), time.Since(start).Round(time.Millisecond), result.Percent())
	}

	return &model.Report{
		ID:            uuid.NewString(),
		Subject:       doc.Subject,
		Source:        doc.Source,
		AnalyzedAt:    time.Now().UTC(),
		ContentLength: len(doc.Text),
		WordCount:     score.CountWords(doc.Text),
		Excerpt:       excerpt(doc.Text, excerptRunes),
		Result:        *result,
		Cached:        cached,
		Notice:        model.DefaultNotice,
	}, nil
}

// IsInputError reports whether err was caused by the input rather than the engine
func IsInputError(err error) bool {
	return errors.Is(err, detect.ErrContentTooShort) || errors.Is(err, util.ErrDisallowed)
}

// excerpt returns the first n runes with whitespace collapsed
func excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
