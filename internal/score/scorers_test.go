package score

import (
	"math"
	"strings"
	"testing"
)

func TestDetectPatterns_SingleMatch(t *testing.T) {
	score, matches := DetectPatterns("In conclusion the cat sat on the mat.")
	if math.Abs(score-0.07) > epsilon {
		t.Errorf("Expected 0.07, got %f", score)
	}
	if len(matches) != 1 || matches[0].Rule != "formal_closing" {
		t.Errorf("Expected one formal_closing match, got %+v", matches)
	}
}

func TestDetectPatterns_Caps(t *testing.T) {
	text := strings.Repeat("In conclusion, utilize it on the other hand. ", 10)
	score, matches := DetectPatterns(text)
	if score != patternTotalCap {
		t.Errorf("Expected total capped at %.1f, got %f", patternTotalCap, score)
	}
	for _, m := range matches {
		if m.Contribution > patternRuleCap {
			t.Errorf("Rule %s contributed %f, above per-rule cap", m.Rule, m.Contribution)
		}
	}
}

func TestDetectPatterns_None(t *testing.T) {
	score, matches := DetectPatterns("")
	if score != 0 || len(matches) != 0 {
		t.Errorf("Expected no patterns on empty text, got %f %v", score, matches)
	}
}

func TestPatternRules_Copy(t *testing.T) {
	rules := PatternRules()
	if len(rules) != 9 {
		t.Fatalf("Expected 9 rules, got %d", len(rules))
	}
	rules[0].Weight = 99
	if aiPatterns[0].Weight == 99 {
		t.Error("PatternRules must not expose the package table")
	}
}

func TestScoreStyle_Formulaic(t *testing.T) {
	b := ScoreStyle("It is important to note that it was handled.")
	if b.PassiveRatio != 1 {
		t.Errorf("Expected passive ratio 1, got %f", b.PassiveRatio)
	}
	if b.PersonRatio != 1 {
		t.Errorf("Expected third-person ratio 1, got %f", b.PersonRatio)
	}
	if math.Abs(b.FormulaicRatio-10.0/9.0) > epsilon {
		t.Errorf("Expected formulaic ratio 10/9, got %f", b.FormulaicRatio)
	}
	if math.Abs(b.Score-0.65) > 1e-6 {
		t.Errorf("Expected style score 0.65, got %f", b.Score)
	}
}

func TestScoreStyle_Mixed(t *testing.T) {
	b := ScoreStyle("We walked home and it rained.")
	if math.Abs(b.ConjunctionRatio-1.0/6.0) > epsilon {
		t.Errorf("Expected conjunction ratio 1/6, got %f", b.ConjunctionRatio)
	}
	if b.PersonRatio != 0.5 {
		t.Errorf("Expected person ratio 0.5, got %f", b.PersonRatio)
	}
	if math.Abs(b.Score-0.1) > 1e-6 {
		t.Errorf("Expected style score 0.1, got %f", b.Score)
	}
}

func TestScoreStyle_Empty(t *testing.T) {
	b := ScoreStyle("")
	// Only the inverted diversity term survives
	if b.Score != 0.25 {
		t.Errorf("Expected 0.25 for empty text, got %f", b.Score)
	}
}

func TestScoreContext_SingleParagraph(t *testing.T) {
	b := ScoreContext("Solo paragraph here.")
	if b.Score != 0 || b.Paragraphs != 1 {
		t.Errorf("Expected zero score for one paragraph, got %+v", b)
	}
}

func TestScoreContext_UncappedCoherence(t *testing.T) {
	b := ScoreContext("alpha beta gamma\n\nalpha beta gamma")
	if math.Abs(b.ParagraphCoherence-5) > 1e-6 {
		t.Errorf("Expected uncapped coherence 5, got %f", b.ParagraphCoherence)
	}
	if b.TopicConsistency != 0 {
		t.Errorf("Expected no topic consistency for two paragraphs, got %f", b.TopicConsistency)
	}
	if b.Score != 1 {
		t.Errorf("Expected combined score capped at 1, got %f", b.Score)
	}
}

func TestScoreContext_EmptyParagraphs(t *testing.T) {
	b := ScoreContext("\n\n\n\n\n\n")
	if b.Score != 0 {
		t.Errorf("Expected 0 for blank paragraphs, got %f", b.Score)
	}
}

func TestScoreContext_Structure(t *testing.T) {
	p := "Every paragraph here has identical length text."
	b := ScoreContext(strings.Join([]string{p, p, p, p}, "\n\n"))
	if b.ParagraphStructure != 1 {
		t.Errorf("Expected structure 1 for equal paragraphs, got %f", b.ParagraphStructure)
	}
}
