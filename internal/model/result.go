package model

import "fmt"

// Engine names accepted by the classifier factory and recorded on results
const (
	EngineHeuristic = "heuristic"
	EngineRemote    = "remote"
)

// AnalysisResult is the outcome of a single Analyze call.
// Details keys are fixed per engine; renderers branch on Engine to read them.
type AnalysisResult struct {
	AIProbability  float64                `json:"ai_probability"`    // 0..1
	Classification string                 `json:"classification"`    // Label from the engine's scale
	Engine         string                 `json:"engine"`            // heuristic | remote
	Details        map[string]interface{} `json:"details"`           // Per-metric evidence
	Signals        []Signal               `json:"signals,omitempty"` // Heuristic engine only
}

// Float returns a numeric detail value, or 0 if the key is absent or not numeric
func (r *AnalysisResult) Float(key string) float64 {
	switch v := r.Details[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// String returns a textual detail value, or "" if the key is absent
func (r *AnalysisResult) String(key string) string {
	if v, ok := r.Details[key].(string); ok {
		return v
	}
	return ""
}

// Percent renders the probability the way the original result page did
func (r *AnalysisResult) Percent() string {
	return fmt.Sprintf("%.1f%%", r.AIProbability*100)
}

// Signal explains one contribution to the final probability
type Signal struct {
	Type        SignalType             `json:"type"`           // Which metric or scorer
	Severity    SignalSeverity         `json:"severity"`       // info, warning, critical
	Description string                 `json:"description"`    // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"` // Raw value, normalized value, weight, formula
}

// SignalType names the metric a signal describes
type SignalType string

const (
	SignalAvgWordLength          SignalType = "avg_word_length"
	SignalSentenceVariance       SignalType = "sentence_variance"
	SignalRepetition             SignalType = "repetition_score"
	SignalPerplexity             SignalType = "perplexity"
	SignalBurstiness             SignalType = "burstiness"
	SignalTransitionWords        SignalType = "transition_words_ratio"
	SignalSentenceStarterVariety SignalType = "sentence_starter_variety"
	SignalCommonAIPatterns       SignalType = "common_ai_patterns"
	SignalWritingStyle           SignalType = "writing_style_score"
	SignalContext                SignalType = "context_score"
)

// SignalSeverity indicates how strongly a signal points towards AI authorship
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// SeverityFor maps a normalized 0..1 AI-likelihood onto a severity
func SeverityFor(normalized float64) SignalSeverity {
	switch {
	case normalized >= 0.75:
		return SeverityCritical
	case normalized >= 0.4:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
