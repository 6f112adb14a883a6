package score

import (
	"math"
	"strings"
	"testing"
)

const epsilon = 1e-9

func TestNormalize_Bounds(t *testing.T) {
	if got := Normalize(4, 4, 7); got != 0 {
		t.Errorf("Expected 0 at min, got %f", got)
	}
	if got := Normalize(7, 4, 7); got != 1 {
		t.Errorf("Expected 1 at max, got %f", got)
	}
	if got := Normalize(-50, 4, 7); got != 0 {
		t.Errorf("Expected clamp to 0 below min, got %f", got)
	}
	if got := Normalize(50, 4, 7); got != 1 {
		t.Errorf("Expected clamp to 1 above max, got %f", got)
	}
	if got := Normalize(12, 3, 3); got != 0.5 {
		t.Errorf("Expected 0.5 for degenerate range, got %f", got)
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	prev := -1.0
	for v := 0.0; v <= 120; v += 0.5 {
		got := Normalize(v, 5, 100)
		if got < prev {
			t.Fatalf("Normalize decreased at v=%.1f: %f < %f", v, got, prev)
		}
		prev = got
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t ", nil},
		{"no terminator", "just some words", []string{"just some words"}},
		{"three kinds", "One. Two! Three? Four", []string{"One.", "Two!", "Three?", "Four"}},
		{"no space after dot", "Version 1.5 is out. Yes.", []string{"Version 1.5 is out.", "Yes."}},
		{"trailing space", "Done.   ", []string{"Done."}},
		{"newline boundary", "First line.\n\nSecond line.", []string{"First line.", "Second line."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d sentences, got %d: %q", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Sentence %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 0},
		{"Hello, world!", 2},
		{"don't stop the well-known 42 trains", 5},
		{"   ", 0},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.expected {
			t.Errorf("CountWords(%q): expected %d, got %d", tt.text, tt.expected, got)
		}
	}
}

func TestSingleSentence_NoVariance(t *testing.T) {
	texts := []string{
		"This single sentence has no terminal punctuation at all",
		"This is exactly one sentence with a period.",
	}
	for _, text := range texts {
		if got := SentenceVariance(text); got != 0 {
			t.Errorf("Expected sentence_variance 0 for %q, got %f", text, got)
		}
		if got := Burstiness(text); got != 0 {
			t.Errorf("Expected burstiness 0 for %q, got %f", text, got)
		}
	}
}

func TestSentenceVariance_Sample(t *testing.T) {
	// Lengths 2 and 4: mean 3, sample variance ((1)+(1))/1 = 2
	got := SentenceVariance("A. Abc.")
	if math.Abs(got-2) > epsilon {
		t.Errorf("Expected sample variance 2, got %f", got)
	}
}

func TestBurstiness_Population(t *testing.T) {
	// Word counts 1 and 3: mean 2, population std 1, cv 0.5
	got := Burstiness("One. Two more words.")
	if math.Abs(got-0.5) > epsilon {
		t.Errorf("Expected burstiness 0.5, got %f", got)
	}
}

func TestTransitionWordsRatio_ThreeInHundred(t *testing.T) {
	words := make([]string, 0, 100)
	for i := 0; i < 97; i++ {
		words = append(words, "cat")
	}
	words = append(words, "Furthermore", "FURTHERMORE", "furthermore")
	text := strings.Join(words, " ") + "."

	if n := CountWords(text); n != 100 {
		t.Fatalf("Expected 100 words in fixture, got %d", n)
	}
	got := TransitionWordsRatio(text)
	if math.Abs(got-0.03) > epsilon {
		t.Errorf("Expected transition_words_ratio 0.03, got %f", got)
	}
}

func TestTransitionWordsRatio_SubstringMatch(t *testing.T) {
	// "thus" inside "enthusiasm" counts; matching is not word-boundary aware.
	got := TransitionWordsRatio("enthusiasm")
	if got != 1 {
		t.Errorf("Expected substring match to give 1, got %f", got)
	}
}

func TestSentenceStarterVariety_ShortText(t *testing.T) {
	got := SentenceStarterVariety("The cat sat. The dog ran. The bird flew.")
	if got != 0.5 {
		t.Errorf("Expected neutral 0.5 for three sentences, got %f", got)
	}
}

func TestSentenceStarterVariety_Ratio(t *testing.T) {
	got := SentenceStarterVariety("The cat sat. The dog ran. A bird flew. A fish swam.")
	if math.Abs(got-0.5) > epsilon {
		t.Errorf("Expected 2 unique of 4 starters = 0.5, got %f", got)
	}
	got = SentenceStarterVariety("One a. Two b. Three c. Four d.")
	if got != 1 {
		t.Errorf("Expected all-unique starters to give 1, got %f", got)
	}
}

func TestExtractMetrics_EmptyFallbacks(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		m := ExtractMetrics(text)
		zero := map[string]float64{
			"avg_word_length":        m.AvgWordLength,
			"sentence_variance":      m.SentenceVariance,
			"repetition_score":       m.RepetitionScore,
			"perplexity":             m.Perplexity,
			"burstiness":             m.Burstiness,
			"transition_words_ratio": m.TransitionWordsRatio,
		}
		for name, v := range zero {
			if v != 0 {
				t.Errorf("%s: expected 0 for %q, got %f", name, text, v)
			}
		}
		if m.SentenceStarterVariety != 0.5 {
			t.Errorf("Expected starter variety 0.5 for %q, got %f", text, m.SentenceStarterVariety)
		}
	}
}

func TestRepetitionScore(t *testing.T) {
	tokens := cleanTokens("the The  the\tcat")
	if len(tokens) != 4 {
		t.Fatalf("Expected 4 tokens, got %d", len(tokens))
	}
	if got := RepetitionScore(tokens); got != 0.5 {
		t.Errorf("Expected 2 unique of 4 = 0.5, got %f", got)
	}
}

func TestMetrics_GetUnknown(t *testing.T) {
	if _, ok := (Metrics{}).Get("nonexistent"); ok {
		t.Error("Expected unknown metric lookup to fail")
	}
}
