package score

import (
	"math"
	"strings"
)

// transitionWords are formal connectives that language models lean on
var transitionWords = []string{
	"furthermore",
	"moreover",
	"additionally",
	"consequently",
	"therefore",
	"thus",
	"hence",
	"nonetheless",
	"nevertheless",
	"conversely",
	"meanwhile",
	"subsequently",
	"alternatively",
}

// Metrics holds the raw (un-normalized) heuristic measurements of a text
type Metrics struct {
	AvgWordLength          float64
	SentenceVariance       float64
	RepetitionScore        float64
	Perplexity             float64
	Burstiness             float64
	TransitionWordsRatio   float64
	SentenceStarterVariety float64
}

// Get returns the metric stored under the given detail key
func (m Metrics) Get(name string) (float64, bool) {
	switch name {
	case "avg_word_length":
		return m.AvgWordLength, true
	case "sentence_variance":
		return m.SentenceVariance, true
	case "repetition_score":
		return m.RepetitionScore, true
	case "perplexity":
		return m.Perplexity, true
	case "burstiness":
		return m.Burstiness, true
	case "transition_words_ratio":
		return m.TransitionWordsRatio, true
	case "sentence_starter_variety":
		return m.SentenceStarterVariety, true
	}
	return 0, false
}

// ExtractMetrics computes every raw metric for text
func ExtractMetrics(text string) Metrics {
	tokens := cleanTokens(text)
	return Metrics{
		AvgWordLength:          AvgWordLength(tokens),
		SentenceVariance:       SentenceVariance(text),
		RepetitionScore:        RepetitionScore(tokens),
		Perplexity:             Perplexity(text),
		Burstiness:             Burstiness(text),
		TransitionWordsRatio:   TransitionWordsRatio(text),
		SentenceStarterVariety: SentenceStarterVariety(text),
	}
}

// AvgWordLength is the mean byte length of tokens (0 when there are none)
func AvgWordLength(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	total := 0
	for _, t := range tokens {
		total += len(t)
	}
	return float64(total) / float64(len(tokens))
}

// SentenceVariance is the sample variance of sentence byte lengths.
// Uniform sentence length is typical of generated text.
func SentenceVariance(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) <= 1 {
		return 0
	}

	lengths := make([]float64, len(sentences))
	for i, s := range sentences {
		lengths[i] = float64(len(s))
	}

	mean := meanOf(lengths)
	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	return variance / float64(len(lengths)-1)
}

// RepetitionScore is the unique-to-total token ratio; higher means more varied
func RepetitionScore(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return float64(uniqueCount(tokens)) / float64(len(tokens))
}

// Perplexity is a crude stand-in for language-model perplexity: mean words per sentence.
func Perplexity(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0
	}
	return float64(countLetterWords(text)) / float64(len(sentences))
}

// Burstiness is the coefficient of variation of per-sentence word counts
func Burstiness(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) <= 1 {
		return 0
	}

	counts := make([]float64, len(sentences))
	for i, s := range sentences {
		counts[i] = float64(countLetterWords(s))
	}

	mean := meanOf(counts)
	if mean == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range counts {
		sum += (c - mean) * (c - mean)
	}
	stdDev := math.Sqrt(sum / float64(len(counts)))
	return stdDev / mean
}

// TransitionWordsRatio counts transition words per word.
// Matching is by substring, so "thus" also counts inside "enthusiasm".
func TransitionWordsRatio(text string) float64 {
	wordCount := countLetterWords(text)
	if wordCount == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	count := 0
	for _, w := range transitionWords {
		count += strings.Count(lower, w)
	}
	return float64(count) / float64(wordCount)
}

// SentenceStarterVariety is the ratio of distinct sentence openers.
// Texts with three sentences or fewer return a neutral 0.5.
func SentenceStarterVariety(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) <= 3 {
		return 0.5
	}

	var starters []string
	for _, s := range sentences {
		first := strings.SplitN(strings.TrimSpace(s), " ", 2)[0]
		if first != "" {
			starters = append(starters, strings.ToLower(first))
		}
	}
	if len(starters) == 0 {
		return 0
	}
	return float64(uniqueCount(starters)) / float64(len(starters))
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
