package score

import "regexp"

// PatternRule is a stylistic tell of generated text and the score each match adds
type PatternRule struct {
	Name   string
	Regex  *regexp.Regexp
	Weight float64
}

const (
	patternRuleCap  = 0.3 // Most any single rule can contribute
	patternTotalCap = 0.5 // Most all rules together can contribute
)

// aiPatterns is evaluated in order against the raw text
var aiPatterns = []PatternRule{
	{
		Name:   "announced_structure",
		Regex:  regexp.MustCompile(`(?i)\b(in this (article|text|essay|response), (we|I) will|this (article|text|essay|response) (aims|intends) to)\b`),
		Weight: 0.08,
	},
	{
		Name:   "formal_closing",
		Regex:  regexp.MustCompile(`(?i)\b(in conclusion|to summarize|as a final note|wrapping up|to conclude)\b`),
		Weight: 0.07,
	},
	{
		Name:   "enumerated_sequence",
		Regex:  regexp.MustCompile(`(?is)\b(first(ly)?|second(ly)?|third(ly)?|fourth(ly)?|finally|lastly).{0,30}(next|then|after that|subsequently)`),
		Weight: 0.06,
	},
	{
		Name:   "uniform_paragraphs",
		Regex:  regexp.MustCompile(`(?s)(\n\n.{100,150}){3,}`),
		Weight: 0.08,
	},
	{
		Name:   "worth_noting",
		Regex:  regexp.MustCompile(`(?i)\b(it is (worth|important|crucial|essential|necessary) to (note|mention|emphasize|highlight|consider))\b`),
		Weight: 0.09,
	},
	{
		Name:   "inflated_vocabulary",
		Regex:  regexp.MustCompile(`(?i)\b(utilize|implementation|methodology|aforementioned|conceptualize|paradigm|subsequently)\b`),
		Weight: 0.06,
	},
	{
		Name:   "stock_transition",
		Regex:  regexp.MustCompile(`(?i)\b(on the one hand|on the other hand|in light of|with regard to|as mentioned earlier)\b`),
		Weight: 0.07,
	},
	{
		Name:   "section_handoff",
		Regex:  regexp.MustCompile(`(?i)\b(now, let's|next, we will|let us now|having discussed|moving on to)\b`),
		Weight: 0.08,
	},
	{
		Name:   "emphatic_it_is",
		Regex:  regexp.MustCompile(`(?i)\b(it is (particularly|especially|notably|significantly|remarkably|exceptionally) (important|interesting|noteworthy|relevant|crucial))\b`),
		Weight: 0.09,
	},
}

// PatternRules returns the static rule table
func PatternRules() []PatternRule {
	out := make([]PatternRule, len(aiPatterns))
	copy(out, aiPatterns)
	return out
}

// PatternMatch records how often one rule fired
type PatternMatch struct {
	Rule         string
	Matches      int
	Contribution float64
}

// DetectPatterns scores the density of common AI phrasing, capped at 0.5
func DetectPatterns(text string) (float64, []PatternMatch) {
	score := 0.0
	var matches []PatternMatch
	for _, rule := range aiPatterns {
		n := len(rule.Regex.FindAllStringIndex(text, -1))
		contribution := float64(n) * rule.Weight
		if contribution > patternRuleCap {
			contribution = patternRuleCap
		}
		score += contribution
		if n > 0 {
			matches = append(matches, PatternMatch{Rule: rule.Name, Matches: n, Contribution: contribution})
		}
	}
	if score > patternTotalCap {
		score = patternTotalCap
	}
	return score, matches
}
