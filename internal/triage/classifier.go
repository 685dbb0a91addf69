// Package triage holds the rule-based text scorers that run over every
// incoming message. Scorers are pure functions of the text and are safe for
// concurrent use.
package triage

import "github.com/PabloGalante/farum-support/internal/domain"

// TextClassifier maps raw text to a normalized score plus matched evidence.
type TextClassifier interface {
	Name() string
	Classify(text string) domain.SignalScore
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}

func flatten(order []string, hits map[string][]string) []string {
	var out []string
	for _, k := range order {
		out = append(out, hits[k]...)
	}
	return out
}
