package model

import "fmt"

// Bucket is one band of a classification scale.
// A probability falls into the first bucket whose upper bound it does not exceed
// (Inclusive) or stays below (exclusive).
type Bucket struct {
	Label     string  `json:"label" yaml:"label" mapstructure:"label"`
	Upper     float64 `json:"upper" yaml:"upper" mapstructure:"upper"`
	Inclusive bool    `json:"inclusive" yaml:"inclusive" mapstructure:"inclusive"`
}

// Scale is an ordered set of buckets over the probability axis.
// The last bucket catches everything above the previous bounds.
type Scale []Bucket

// Heuristic scale labels
const (
	LabelLikelyHuman = "Likely Human"
	LabelPossiblyAI  = "Possibly AI"
	LabelLikelyAI    = "Likely AI"
)

// Remote scale labels
const (
	LabelVeryUnlikelyAI = "Very unlikely AI-generated"
	LabelUnlikelyAI     = "Unlikely AI-generated"
	LabelUnclearAI      = "Unclear if AI-generated"
	LabelPossiblyAIGen  = "Possibly AI-generated"
	LabelLikelyAIGen    = "Likely AI-generated"
)

// HeuristicScale is the three-bucket scale used by the heuristic engine
func HeuristicScale() Scale {
	return Scale{
		{Label: LabelLikelyHuman, Upper: 0.25},
		{Label: LabelPossiblyAI, Upper: 0.65},
		{Label: LabelLikelyAI, Upper: 1},
	}
}

// RemoteScale is the five-bucket scale used by the remote model engine.
// Its bounds do not line up with HeuristicScale and are kept separate on purpose.
func RemoteScale() Scale {
	return Scale{
		{Label: LabelVeryUnlikelyAI, Upper: 0.2, Inclusive: true},
		{Label: LabelUnlikelyAI, Upper: 0.4, Inclusive: true},
		{Label: LabelUnclearAI, Upper: 0.6, Inclusive: true},
		{Label: LabelPossiblyAIGen, Upper: 0.8, Inclusive: true},
		{Label: LabelLikelyAIGen, Upper: 1, Inclusive: true},
	}
}

// Classify returns the label of the bucket containing p
func (s Scale) Classify(p float64) string {
	if len(s) == 0 {
		return ""
	}
	for _, b := range s[:len(s)-1] {
		if b.Inclusive && p <= b.Upper {
			return b.Label
		}
		if !b.Inclusive && p < b.Upper {
			return b.Label
		}
	}
	return s[len(s)-1].Label
}

// Validate checks that bucket bounds are ascending and labelled
func (s Scale) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("scale has no buckets")
	}
	prev := -1.0
	for i, b := range s {
		if b.Label == "" {
			return fmt.Errorf("bucket %d has no label", i)
		}
		if b.Upper <= prev {
			return fmt.Errorf("bucket %q upper bound %.2f is not above %.2f", b.Label, b.Upper, prev)
		}
		prev = b.Upper
	}
	return nil
}

// Labels lists the labels in ascending order
func (s Scale) Labels() []string {
	labels := make([]string, len(s))
	for i, b := range s {
		labels[i] = b.Label
	}
	return labels
}
