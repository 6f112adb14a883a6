package score

import (
	"regexp"
	"strings"
)

// letterWord matches a run of ASCII letters that may be joined by apostrophes or hyphens
// ("don't", "well-known"). Digits and punctuation are not words.
var letterWord = regexp.MustCompile(`[A-Za-z]+(?:['-]+[A-Za-z]+)*'?`)

// whitespaceRun collapses any whitespace sequence
var whitespaceRun = regexp.MustCompile(`\s+`)

// splitSentences splits on a whitespace run that directly follows '.', '!' or '?'.
// Pieces keep their terminal punctuation; blank pieces are dropped.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(text) && isSpaceByte(text[i+1]) {
			end := i + 1
			j := end
			for j < len(text) && isSpaceByte(text[j]) {
				j++
			}
			if strings.TrimSpace(text[start:end]) != "" {
				sentences = append(sentences, text[start:end])
			}
			start = j
			i = j
			continue
		}
		i++
	}
	if strings.TrimSpace(text[start:]) != "" {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// splitParagraphs splits on blank-line boundaries
func splitParagraphs(text string) []string {
	return strings.Split(text, "\n\n")
}

// letterWords returns the letter-word tokens of text
func letterWords(text string) []string {
	return letterWord.FindAllString(text, -1)
}

// countLetterWords counts letter-word tokens
func countLetterWords(text string) int {
	return len(letterWord.FindAllStringIndex(text, -1))
}

// CountWords is the word count reported alongside every result
func CountWords(text string) int {
	return countLetterWords(text)
}

// cleanTokens collapses whitespace, lower-cases and splits on single spaces
func cleanTokens(text string) []string {
	clean := strings.ToLower(strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " ")))
	if clean == "" {
		return nil
	}
	return strings.Split(clean, " ")
}

func uniqueCount(words []string) int {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return len(seen)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
