package triage

import (
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
)

// SentimentScorer is a keyword polarity counter.
type SentimentScorer struct{}

func (SentimentScorer) Name() string { return "sentiment" }

func (SentimentScorer) Analyze(text string) domain.SentimentResult {
	lower := lexicon.Normalize(text)
	pos := len(lexicon.Match(lower, lexicon.PositiveWords))
	neg := len(lexicon.Match(lower, lexicon.NegativeWords))

	switch {
	case pos > neg:
		return domain.SentimentResult{Label: lexicon.SentimentPositive, Score: lexicon.PositiveScore}
	case neg > pos:
		return domain.SentimentResult{Label: lexicon.SentimentNegative, Score: lexicon.NegativeScore}
	default:
		return NeutralSentiment()
	}
}

func (s SentimentScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Analyze(text))
}

func (s SentimentScorer) Signal(r domain.SentimentResult) domain.SignalScore {
	return domain.SignalScore{
		Category: s.Name() + ":" + r.Label,
		Score:    r.Score,
		Evidence: []string{},
	}
}

func NeutralSentiment() domain.SentimentResult {
	return domain.SentimentResult{Label: lexicon.SentimentNeutral, Score: lexicon.NeutralScore}
}

// Counts returns how many positive and negative words text contains.
func (SentimentScorer) Counts(text string) (positive, negative int) {
	lower := lexicon.Normalize(text)
	return len(lexicon.Match(lower, lexicon.PositiveWords)), len(lexicon.Match(lower, lexicon.NegativeWords))
}
