package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/authorscope/internal/cache"
	"github.com/ppiankov/authorscope/internal/model"
)

// CachedClassifier memoizes results of an inner classifier.
// Errors are never cached.
type CachedClassifier struct {
	inner       TextClassifier
	store       cache.Cache
	fingerprint string
	ttl         time.Duration
	verbose     bool
}

// WithCache wraps inner. A zero ttl uses the store default.
func WithCache(inner TextClassifier, store cache.Cache, fingerprint string, ttl time.Duration, verbose bool) *CachedClassifier {
	return &CachedClassifier{
		inner:       inner,
		store:       store,
		fingerprint: fingerprint,
		ttl:         ttl,
		verbose:     verbose,
	}
}

// Name returns the inner engine's name
func (c *CachedClassifier) Name() string {
	return c.inner.Name()
}

// Analyze implements TextClassifier
func (c *CachedClassifier) Analyze(ctx context.Context, content string) (*model.AnalysisResult, error) {
	res, _, err := c.AnalyzeCached(ctx, content)
	return res, err
}

// AnalyzeCached also reports whether the result came from the cache
func (c *CachedClassifier) AnalyzeCached(ctx context.Context, content string) (*model.AnalysisResult, bool, error) {
	key := cache.ResultKey(c.inner.Name(), c.fingerprint, content)

	if data, found := c.store.Get(key); found {
		var res model.AnalysisResult
		if err := json.Unmarshal(data, &res); err == nil {
			if c.verbose {
				fmt.Fprintf(os.Stderr, "Cache hit: %s\n", key)
			}
			return &res, true, nil
		}
		_ = c.store.Delete(key)
	}

	res, err := c.inner.Analyze(ctx, content)
	if err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(res)
	if err == nil {
		if err := c.store.Set(key, data, c.ttl); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache result: %v\n", err)
		}
	}
	return res, false, nil
}
