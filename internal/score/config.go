package score

import (
	"fmt"

	"github.com/ppiankov/authorscope/internal/model"
)

// MetricSpec describes how one raw metric contributes to the base probability
type MetricSpec struct {
	Name   string  // Detail key, e.g. "sentence_variance"
	Weight float64 // Raw weight; the set is renormalized to sum to 1
	Min    float64 // Raw value mapped to 0
	Max    float64 // Raw value mapped to 1
	Invert bool    // Lower raw value means more AI-like
}

// HeuristicConfig is the complete, immutable tuning of the heuristic engine
type HeuristicConfig struct {
	Metrics       []MetricSpec
	PatternWeight float64
	StyleWeight   float64
	ContextWeight float64
	Scale         model.Scale
}

// DefaultHeuristicConfig returns the hand-tuned weight table
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		Metrics: []MetricSpec{
			{Name: "avg_word_length", Weight: 0.05, Min: 4, Max: 7},
			{Name: "sentence_variance", Weight: 0.35, Min: 5, Max: 100},
			{Name: "repetition_score", Weight: 0.30, Min: 0.3, Max: 0.8, Invert: true},
			{Name: "perplexity", Weight: 0.15, Min: 5, Max: 25},
			{Name: "burstiness", Weight: 0.15, Min: 0.2, Max: 0.8, Invert: true},
			{Name: "transition_words_ratio", Weight: 0.20, Min: 0.01, Max: 0.1},
			{Name: "sentence_starter_variety", Weight: 0.15, Min: 0.3, Max: 0.9, Invert: true},
		},
		PatternWeight: 0.1,
		StyleWeight:   0.1,
		ContextWeight: 0.05,
		Scale:         model.HeuristicScale(),
	}
}

// WithOverrides applies the secondary weights set in user configuration.
// An explicit 0 disables the scorer.
func (c HeuristicConfig) WithOverrides(o model.HeuristicConfig) HeuristicConfig {
	if o.PatternWeight != nil {
		c.PatternWeight = *o.PatternWeight
	}
	if o.StyleWeight != nil {
		c.StyleWeight = *o.StyleWeight
	}
	if o.ContextWeight != nil {
		c.ContextWeight = *o.ContextWeight
	}
	return c
}

// Validate rejects tables that cannot produce a probability
func (c HeuristicConfig) Validate() error {
	if len(c.Metrics) == 0 {
		return fmt.Errorf("no metrics configured")
	}
	total := 0.0
	for _, m := range c.Metrics {
		if m.Weight < 0 {
			return fmt.Errorf("metric %s: negative weight %.3f", m.Name, m.Weight)
		}
		if _, ok := (Metrics{}).Get(m.Name); !ok {
			return fmt.Errorf("unknown metric %q", m.Name)
		}
		total += m.Weight
	}
	if total == 0 {
		return fmt.Errorf("metric weights sum to zero")
	}
	if c.PatternWeight < 0 || c.StyleWeight < 0 || c.ContextWeight < 0 {
		return fmt.Errorf("secondary weights must not be negative")
	}
	if err := c.Scale.Validate(); err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	return nil
}

// normalizedWeights returns metric weights rescaled to sum to 1
func (c HeuristicConfig) normalizedWeights() []float64 {
	total := 0.0
	for _, m := range c.Metrics {
		total += m.Weight
	}
	weights := make([]float64, len(c.Metrics))
	for i, m := range c.Metrics {
		weights[i] = m.Weight / total
	}
	return weights
}
