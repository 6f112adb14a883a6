package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/score"
)

// categoryProbability maps the 1-5 rubric onto bucket midpoints
var categoryProbability = map[int]float64{
	1: 0.1,
	2: 0.3,
	3: 0.5,
	4: 0.7,
	5: 0.9,
}

// CategoryProbability returns the midpoint for a rubric category, 0.5 if unknown
func CategoryProbability(category int) float64 {
	if p, ok := categoryProbability[category]; ok {
		return p
	}
	return 0.5
}

// RemoteModelClassifier asks a hosted model for a verdict.
// It makes exactly one call per Analyze and never retries; callers own retry policy.
type RemoteModelClassifier struct {
	provider Provider
	config   Config
	scale    model.Scale
}

// NewRemoteModelClassifier wraps a provider
func NewRemoteModelClassifier(provider Provider, config Config) *RemoteModelClassifier {
	return &RemoteModelClassifier{
		provider: provider,
		config:   config,
		scale:    model.RemoteScale(),
	}
}

// Name returns the engine identifier
func (c *RemoteModelClassifier) Name() string {
	return model.EngineRemote
}

// Analyze sends content to the provider and maps the reply onto the five-bucket scale.
// Transport and API failures wrap ErrRemoteCall and return no result.
func (c *RemoteModelClassifier) Analyze(ctx context.Context, content string) (*model.AnalysisResult, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.config.Timeout)*time.Second)
		defer cancel()
	}

	req := CompletionRequest{
		System:      SystemPrompt,
		Prompt:      BuildClassificationPrompt(content),
		Model:       c.config.Model,
		MaxTokens:   c.config.maxTokens(),
		Temperature: c.config.Temperature,
	}
	if c.config.StructuredOutput {
		req.Prompt = BuildStructuredPrompt(content)
		req.Schema = VerdictSchema()
		req.SchemaName = verdictSchemaName
	}

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRemoteCall, c.provider.Name(), err)
	}

	verdict := ParseVerdict(resp.Text)
	probability := CategoryProbability(verdict.Category)

	modelName := resp.Model
	if modelName == "" {
		modelName = req.Model
	}

	return &model.AnalysisResult{
		AIProbability:  probability,
		Classification: c.scale.Classify(probability),
		Engine:         model.EngineRemote,
		Details: map[string]interface{}{
			"openai_response":        resp.Text,
			"confidence_score":       verdict.Confidence,
			"category":               verdict.Category,
			"content_length":         len(content),
			"word_count":             score.CountWords(content),
			"detailed_justification": verdict.Justification,
			"top_indicators":         verdict.Indicators,
			"provider":               c.provider.Name(),
			"model":                  modelName,
			"tokens_used":            resp.TokensUsed,
			"structured":             verdict.Structured,
		},
	}, nil
}
