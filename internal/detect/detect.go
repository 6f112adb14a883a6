package detect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/authorscope/internal/llm"
	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/score"
)

// TextClassifier estimates the probability that content was machine-generated.
// Implementations are safe for concurrent use.
type TextClassifier interface {
	Name() string
	Analyze(ctx context.Context, content string) (*model.AnalysisResult, error)
}

var (
	// ErrContentTooShort is returned by ValidateContent
	ErrContentTooShort = errors.New("content too short")
	// ErrUnknownEngine is returned by NewFor for unsupported engine names
	ErrUnknownEngine = errors.New("unknown engine")
)

// ValidateContent enforces the minimum input length in characters, ignoring surrounding whitespace
func ValidateContent(content string, minLength int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n < minLength {
		return fmt.Errorf("%w: %d characters, need at least %d", ErrContentTooShort, n, minLength)
	}
	return nil
}

// New builds the classifier selected by cfg.Engine
func New(cfg *model.Config) (TextClassifier, error) {
	return NewFor(cfg, cfg.Engine)
}

// NewFor builds a classifier for the named engine using cfg for its settings
func NewFor(cfg *model.Config, engine string) (TextClassifier, error) {
	switch strings.ToLower(engine) {
	case model.EngineHeuristic, "":
		return score.NewHeuristicClassifier(score.DefaultHeuristicConfig().WithOverrides(cfg.Heuristic))

	case model.EngineRemote, "llm":
		llmCfg := llm.ConfigFromModel(cfg)
		provider, err := llm.NewProvider(llmCfg)
		if err != nil {
			return nil, fmt.Errorf("remote engine: %w", err)
		}
		return llm.NewRemoteModelClassifier(provider, llmCfg), nil

	default:
		return nil, fmt.Errorf("%w: %s (supported: %s, %s)", ErrUnknownEngine, engine, model.EngineHeuristic, model.EngineRemote)
	}
}

// EngineInfo describes an engine for listings
type EngineInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Default     bool     `json:"default"`
}

// Engines lists the available engines, marking the configured default
func Engines(cfg *model.Config) []EngineInfo {
	return []EngineInfo{
		{
			Name:        model.EngineHeuristic,
			Description: "Local text statistics: lexical, structural, stylistic and contextual signals",
			Labels:      model.HeuristicScale().Labels(),
			Default:     cfg.Engine == model.EngineHeuristic,
		},
		{
			Name:        model.EngineRemote,
			Description: fmt.Sprintf("Hosted model verdict via %s (%s)", cfg.LLM.Provider, cfg.LLM.Model),
			Labels:      model.RemoteScale().Labels(),
			Default:     cfg.Engine == model.EngineRemote,
		},
	}
}

// Fingerprint summarizes the settings that change an engine's verdict
func Fingerprint(cfg *model.Config, engine string) string {
	switch strings.ToLower(engine) {
	case model.EngineRemote, "llm":
		return fmt.Sprintf("%s|%s|%.2f|%d|%t",
			cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens, cfg.LLM.StructuredOutput)
	default:
		h := score.DefaultHeuristicConfig().WithOverrides(cfg.Heuristic)
		return fmt.Sprintf("%.4f|%.4f|%.4f", h.PatternWeight, h.StyleWeight, h.ContextWeight)
	}
}
