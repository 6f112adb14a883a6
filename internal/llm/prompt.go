package llm

import (
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// SystemPrompt frames every classification request
const SystemPrompt = "You are an AI text classifier specializing in detecting AI-generated content."

// Output contract headers, also used by the fallback parser
const (
	headerCategory      = "Category Classification:"
	headerConfidence    = "Confidence Score:"
	headerJustification = "Detailed Justification:"
	headerIndicators    = "Top 3 Most Compelling Indicators:"
	headerText          = "TEXT TO ANALYZE:"
)

const classificationTemplate = `You are an advanced AI text classifier with expertise in forensic linguistics and AI-generated text detection. Decide, with evidence, whether the text below was written by a human or generated by an AI.

Base the verdict on both macro and micro patterns in the text.

ANALYSIS CRITERIA (APPLY EVERY STEP)

1. Linguistic Patterns
- Repetitive sentence structures and uniform syntax.
- Overuse of generic transitions ("Moreover," "Furthermore," "In conclusion").
- A mechanically polished tone with little emotional depth or natural variability.

2. Content Specificity & Depth
- Human writing carries personal experience, nuanced opinion, specific examples and implicit bias.
- Generated text tends towards overgeneralized, surface-level summary.

3. Stylistic Variability
- Do sentences vary in length, punctuation, rhythm and complexity?
- Humans introduce idiosyncratic phrasing, informal expressions and occasional typos.
- Look for metaphor, humor, rhetorical questions and cultural references.

4. Coherence & Logical Flow
- Generated text stays perfectly coherent but rarely contains contradiction, digression or shifts of opinion.

5. Technical & Structural Indicators
- Formulaic structure (Introduction, Explanation, Advantages, Conclusion) suggests generation.
- Uneven paragraph lengths and casual digressions suggest a human author.

6. Contextual & Conceptual Depth
- Novel insight, complex reasoning and opinionated argument suggest a human author.
- Neutral, balanced, strictly factual treatment of contested topics suggests generation.

OUTPUT FORMAT (FOLLOW EXACTLY)

Category Classification: (1-5, from the scale below)
Confidence Score: (percentage, 0-100%)
Detailed Justification: (cite specific textual evidence)
Top 3 Most Compelling Indicators: (the three strongest reasons for the category)

CLASSIFICATION SCALE

1. Very Unlikely AI-generated (0-20%)
- Strong human markers: personal anecdotes, unique word choice, emotional shifts, natural inconsistency.

2. Unlikely AI-generated (20-40%)
- Mostly human, with minor AI-like traits such as high coherence or redundant phrasing.

3. Unclear if AI-generated (40-60%)
- A mix of human and AI traits; classification is ambiguous.

4. Possibly AI-generated (60-80%)
- Several AI-like features: rigid formatting, excessive fluency, generic phrasing, no unique perspective.
- Possibly heavily edited generated content.

5. Likely AI-generated (80-100%)
- Highly structured, unnaturally consistent prose.
- Generic phrasing with no original insight.
- No personal engagement or subjective depth.
- Predictable transitions throughout.

FINAL INSTRUCTIONS

- Analyze structure, coherence and conceptual engagement, not surface patterns alone.
- Justify every claim with textual evidence.
- When uncertain, choose category 3 rather than guessing.
`

const structuredInstructions = `
Respond with a single JSON object with these keys:
"category" (integer 1-5), "confidence_score" (integer 0-100),
"detailed_justification" (string), "top_indicators" (array of three strings).
`

// BuildClassificationPrompt embeds content verbatim after the analysis template
func BuildClassificationPrompt(content string) string {
	var b strings.Builder
	b.Grow(len(classificationTemplate) + len(content) + 32)
	b.WriteString(classificationTemplate)
	b.WriteString("\n")
	b.WriteString(headerText)
	b.WriteString("\n")
	b.WriteString(content)
	return b.String()
}

// BuildStructuredPrompt is BuildClassificationPrompt plus a JSON reply contract
func BuildStructuredPrompt(content string) string {
	var b strings.Builder
	b.WriteString(classificationTemplate)
	b.WriteString(structuredInstructions)
	b.WriteString("\n")
	b.WriteString(headerText)
	b.WriteString("\n")
	b.WriteString(content)
	return b.String()
}

// verdictSchemaName identifies the response format in structured requests
const verdictSchemaName = "ai_text_verdict"

// VerdictSchema is the strict JSON schema of a structured verdict
func VerdictSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"category": {
				Type:        jsonschema.Integer,
				Description: "Classification on the 1-5 scale",
			},
			"confidence_score": {
				Type:        jsonschema.Integer,
				Description: "Confidence percentage from 0 to 100",
			},
			"detailed_justification": {
				Type:        jsonschema.String,
				Description: "Specific textual evidence for the category",
			},
			"top_indicators": {
				Type:        jsonschema.Array,
				Description: "The three strongest indicators",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
		},
		Required:             []string{"category", "confidence_score", "detailed_justification", "top_indicators"},
		AdditionalProperties: false,
	}
}
