package score

import (
	"regexp"
	"strings"
)

var conjunctions = []string{"and", "but", "or", "so", "because", "although", "since", "unless", "while"}

var passiveVoice = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(is|are|was|were|be|been|being) [a-z]+ed\b`),
	regexp.MustCompile(`(?i)\b(has|have|had) been [a-z]+ed\b`),
}

var formulaicPhrases = []string{
	"it is important to note that",
	"it should be noted that",
	"it is worth mentioning that",
	"it is crucial to understand",
	"it is essential to consider",
}

var (
	firstPerson = regexp.MustCompile(`(?i)\b(I|we|my|our|myself|ourselves)\b`)
	thirdPerson = regexp.MustCompile(`(?i)\b(it|they|he|she|them|their|its|his|her)\b`)
)

// StyleBreakdown holds the writing-style sub-signals
type StyleBreakdown struct {
	VocabularyDiversity float64
	ConjunctionRatio    float64
	PassiveRatio        float64
	FormulaicRatio      float64
	PersonRatio         float64
	Score               float64
}

// ScoreStyle rates how formulaic the prose reads.
// The result is capped at 1 but not floored.
func ScoreStyle(text string) StyleBreakdown {
	lower := strings.ToLower(text)
	words := letterWords(lower)
	total := len(words)

	var b StyleBreakdown
	if total > 0 {
		b.VocabularyDiversity = float64(uniqueCount(words)) / float64(total)
	}

	conj := 0
	for _, c := range conjunctions {
		conj += strings.Count(lower, " "+c+" ")
	}
	if total > 0 {
		b.ConjunctionRatio = float64(conj) / float64(total)
	}

	passive := 0
	for _, re := range passiveVoice {
		passive += len(re.FindAllStringIndex(text, -1))
	}
	if sentences := splitSentences(text); len(sentences) > 0 {
		b.PassiveRatio = float64(passive) / float64(len(sentences))
	}

	formulaic := 0
	for _, phrase := range formulaicPhrases {
		formulaic += strings.Count(lower, phrase)
	}
	if total > 0 {
		b.FormulaicRatio = float64(formulaic*10) / float64(total)
	}

	first := len(firstPerson.FindAllStringIndex(text, -1))
	third := len(thirdPerson.FindAllStringIndex(text, -1))
	if first+third > 0 {
		b.PersonRatio = float64(third) / float64(first+third)
	}

	score := 0.25*(1-b.VocabularyDiversity) +
		0.15*b.ConjunctionRatio +
		0.25*b.PassiveRatio +
		0.20*b.FormulaicRatio +
		0.15*b.PersonRatio
	if score > 1 {
		score = 1
	}
	b.Score = score
	return b
}
