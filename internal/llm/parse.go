package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Defaults applied when a field cannot be recovered from the reply
const (
	DefaultCategory   = 3
	DefaultConfidence = 50
)

var (
	categoryPattern   = regexp.MustCompile(regexp.QuoteMeta(headerCategory) + `\s*(\d+)`)
	confidencePattern = regexp.MustCompile(regexp.QuoteMeta(headerConfidence) + `\s*(\d+)%`)
	codeFence         = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
)

// Verdict is what could be recovered from a model reply
type Verdict struct {
	Category      int
	Confidence    int
	Justification string
	Indicators    string
	Structured    bool // Decoded from JSON rather than matched in free text
}

// ParseVerdict reads a model reply. JSON replies are decoded first; anything else
// goes through the free-text parser. It never fails: missing fields get defaults.
func ParseVerdict(text string) Verdict {
	if v, ok := parseStructured(text); ok {
		return v
	}
	return parseFreeform(text)
}

type structuredVerdict struct {
	Category              *int            `json:"category"`
	ConfidenceScore       *int            `json:"confidence_score"`
	DetailedJustification string          `json:"detailed_justification"`
	TopIndicators         json.RawMessage `json:"top_indicators"`
}

func parseStructured(text string) (Verdict, bool) {
	body := strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(body); m != nil {
		body = m[1]
	}
	if !strings.HasPrefix(body, "{") {
		return Verdict{}, false
	}

	var sv structuredVerdict
	if err := json.Unmarshal([]byte(body), &sv); err != nil || sv.Category == nil {
		return Verdict{}, false
	}

	v := Verdict{
		Category:      *sv.Category,
		Confidence:    DefaultConfidence,
		Justification: strings.TrimSpace(sv.DetailedJustification),
		Indicators:    decodeIndicators(sv.TopIndicators),
		Structured:    true,
	}
	if sv.ConfidenceScore != nil {
		v.Confidence = confidenceOrDefault(*sv.ConfidenceScore)
	}
	return v, true
}

// confidenceOrDefault keeps a percentage within 0-100
func confidenceOrDefault(n int) int {
	if n < 0 || n > 100 {
		return DefaultConfidence
	}
	return n
}

// decodeIndicators accepts a list or a plain string
func decodeIndicators(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		lines := make([]string, 0, len(list))
		for i, item := range list {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(item)))
		}
		return strings.Join(lines, "\n")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}

func parseFreeform(text string) Verdict {
	v := Verdict{
		Category:   DefaultCategory,
		Confidence: DefaultConfidence,
	}

	if m := categoryPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			v.Category = n
		}
	}
	if m := confidencePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			v.Confidence = confidenceOrDefault(n)
		}
	}

	v.Justification = section(text, headerJustification, headerIndicators)
	v.Indicators = section(text, headerIndicators, headerText)
	return v
}

// section returns the trimmed text after header, up to the first stop marker or the end
func section(text, header, stop string) string {
	start := strings.Index(text, header)
	if start < 0 {
		return ""
	}
	rest := text[start+len(header):]
	if end := strings.Index(rest, stop); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
