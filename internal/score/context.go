package score

import (
	"math"
	"strings"
)

// ContextBreakdown holds the document-structure sub-signals
type ContextBreakdown struct {
	Paragraphs         int
	TopicConsistency   float64 // Uncapped
	ParagraphCoherence float64 // Uncapped
	ParagraphStructure float64
	Score              float64
}

// ScoreContext rates how evenly a document is organized across paragraphs.
// Sub-signals are not clamped individually; only the combined score is capped at 1.
func ScoreContext(text string) ContextBreakdown {
	paragraphs := splitParagraphs(text)
	b := ContextBreakdown{Paragraphs: len(paragraphs)}

	if len(paragraphs) > 2 {
		b.TopicConsistency = topicConsistency(paragraphs)
	}
	if len(paragraphs) > 1 {
		b.ParagraphCoherence = paragraphCoherence(paragraphs)
	}
	if len(paragraphs) > 3 {
		b.ParagraphStructure = paragraphStructure(paragraphs)
	}

	score := 0.4*b.TopicConsistency + 0.3*b.ParagraphCoherence + 0.3*b.ParagraphStructure
	if score > 1 {
		score = 1
	}
	b.Score = score
	return b
}

// topicConsistency counts keywords (longer than 3 bytes) present in every paragraph
func topicConsistency(paragraphs []string) float64 {
	sets := make([]map[string]struct{}, len(paragraphs))
	for i, p := range paragraphs {
		set := make(map[string]struct{})
		for _, w := range strings.Split(strings.ToLower(p), " ") {
			if len(w) > 3 {
				set[w] = struct{}{}
			}
		}
		sets[i] = set
	}

	common := 0
	for w := range sets[0] {
		shared := true
		for _, other := range sets[1:] {
			if _, ok := other[w]; !ok {
				shared = false
				break
			}
		}
		if shared {
			common++
		}
	}
	return float64(common) / (float64(len(paragraphs)) * 0.5)
}

// paragraphCoherence averages word carry-over between adjacent paragraphs
func paragraphCoherence(paragraphs []string) float64 {
	sum := 0.0
	pairs := len(paragraphs) - 1
	for i := 0; i < pairs; i++ {
		curr := letterWords(strings.ToLower(paragraphs[i]))
		if len(curr) == 0 {
			continue
		}
		next := make(map[string]struct{})
		for _, w := range letterWords(strings.ToLower(paragraphs[i+1])) {
			next[w] = struct{}{}
		}
		shared := 0
		for _, w := range curr {
			if _, ok := next[w]; ok {
				shared++
			}
		}
		sum += float64(shared) / (float64(len(curr)) * 0.2)
	}
	return sum / float64(pairs)
}

// paragraphStructure is high when paragraph lengths barely deviate from their mean
func paragraphStructure(paragraphs []string) float64 {
	lengths := make([]float64, len(paragraphs))
	for i, p := range paragraphs {
		lengths[i] = float64(len(p))
	}
	avg := meanOf(lengths)
	if avg == 0 {
		return 0
	}

	deviation := 0.0
	for _, l := range lengths {
		deviation += math.Abs(l-avg) / avg
	}
	deviation /= float64(len(lengths))
	return 1 - math.Min(1, deviation*2)
}
