package score

import (
	"context"
	"fmt"

	"github.com/ppiankov/authorscope/internal/model"
)

// HeuristicClassifier estimates AI authorship from text statistics alone.
// It holds no mutable state and is safe for concurrent use.
type HeuristicClassifier struct {
	cfg     HeuristicConfig
	weights []float64
}

// NewHeuristicClassifier creates a classifier from a validated weight table
func NewHeuristicClassifier(cfg HeuristicConfig) (*HeuristicClassifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid heuristic config: %w", err)
	}
	metrics := make([]MetricSpec, len(cfg.Metrics))
	copy(metrics, cfg.Metrics)
	cfg.Metrics = metrics

	return &HeuristicClassifier{
		cfg:     cfg,
		weights: cfg.normalizedWeights(),
	}, nil
}

// Name returns the engine identifier
func (h *HeuristicClassifier) Name() string {
	return model.EngineHeuristic
}

// Analyze scores content. It never fails on content; the context is only
// checked before work starts.
func (h *HeuristicClassifier) Analyze(ctx context.Context, content string) (*model.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := ExtractMetrics(content)
	details := make(map[string]interface{}, 24)
	var signals []model.Signal

	// 1. Weighted base probability
	base := 0.0
	for i, spec := range h.cfg.Metrics {
		raw, _ := metrics.Get(spec.Name)
		normalized := Normalize(raw, spec.Min, spec.Max)
		formula := fmt.Sprintf("clamp((v - %g) / (%g - %g), 0, 1)", spec.Min, spec.Max, spec.Min)
		if spec.Invert {
			normalized = 1 - normalized
			formula = "1 - " + formula
		}
		contribution := normalized * h.weights[i]
		base += contribution

		details[spec.Name] = raw
		signals = append(signals, model.Signal{
			Type:        model.SignalType(spec.Name),
			Severity:    model.SeverityFor(normalized),
			Description: fmt.Sprintf("%s: %.3f (normalized %.2f)", spec.Name, raw, normalized),
			Data: map[string]interface{}{
				"raw":          raw,
				"normalized":   normalized,
				"weight":       h.weights[i],
				"contribution": contribution,
				"formula":      formula,
			},
		})
	}
	base = clamp01(base)
	details["base_probability"] = base

	// 2. Pattern detector
	pattern, matches := DetectPatterns(content)
	details["common_ai_patterns"] = pattern
	matched := make(map[string]interface{}, len(matches))
	for _, m := range matches {
		matched[m.Rule] = m.Matches
	}
	signals = append(signals, model.Signal{
		Type:        model.SignalCommonAIPatterns,
		Severity:    model.SeverityFor(pattern / patternTotalCap),
		Description: fmt.Sprintf("%d AI phrasing patterns matched", len(matches)),
		Data: map[string]interface{}{
			"score":   pattern,
			"weight":  h.cfg.PatternWeight,
			"matches": matched,
			"formula": "min(sum(min(matches * weight, 0.3)), 0.5)",
		},
	})

	// 3. Writing style
	style := ScoreStyle(content)
	details["writing_style_score"] = style.Score
	details["style.vocabulary_diversity"] = style.VocabularyDiversity
	details["style.conjunction_ratio"] = style.ConjunctionRatio
	details["style.passive_voice_ratio"] = style.PassiveRatio
	details["style.formulaic_ratio"] = style.FormulaicRatio
	details["style.third_person_ratio"] = style.PersonRatio
	signals = append(signals, model.Signal{
		Type:        model.SignalWritingStyle,
		Severity:    model.SeverityFor(style.Score),
		Description: fmt.Sprintf("Writing style score: %.2f", style.Score),
		Data: map[string]interface{}{
			"score":   style.Score,
			"weight":  h.cfg.StyleWeight,
			"formula": "min(0.25*(1-diversity) + 0.15*conjunctions + 0.25*passive + 0.20*formulaic + 0.15*third_person, 1)",
		},
	})

	// 4. Document context
	ctxScore := ScoreContext(content)
	details["context_score"] = ctxScore.Score
	details["context.paragraphs"] = ctxScore.Paragraphs
	details["context.topic_consistency"] = ctxScore.TopicConsistency
	details["context.paragraph_coherence"] = ctxScore.ParagraphCoherence
	details["context.paragraph_structure"] = ctxScore.ParagraphStructure
	signals = append(signals, model.Signal{
		Type:        model.SignalContext,
		Severity:    model.SeverityFor(ctxScore.Score),
		Description: fmt.Sprintf("Context score over %d paragraphs: %.2f", ctxScore.Paragraphs, ctxScore.Score),
		Data: map[string]interface{}{
			"score":   ctxScore.Score,
			"weight":  h.cfg.ContextWeight,
			"formula": "min(0.4*topic + 0.3*coherence + 0.3*structure, 1)",
		},
	})

	probability := clamp01(base +
		h.cfg.PatternWeight*pattern +
		h.cfg.StyleWeight*style.Score +
		h.cfg.ContextWeight*ctxScore.Score)

	details["content_length"] = len(content)
	details["word_count"] = CountWords(content)

	return &model.AnalysisResult{
		AIProbability:  probability,
		Classification: h.cfg.Scale.Classify(probability),
		Engine:         model.EngineHeuristic,
		Details:        details,
		Signals:        signals,
	}, nil
}
