package triage

import (
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
)

// DistortionScorer flags cognitive distortion patterns. The score is the
// share of distortion categories present.
type DistortionScorer struct{}

func (DistortionScorer) Name() string { return "distortion" }

func (DistortionScorer) Detect(text string) domain.DistortionResult {
	names, hits := lexicon.MatchGroups(lexicon.Normalize(text), lexicon.Distortions)
	return domain.DistortionResult{
		Distortions: hits,
		Score:       float64(len(names)) / float64(len(lexicon.Distortions)),
	}
}

// Names lists detected distortions in lexicon order.
func (DistortionScorer) Names(r domain.DistortionResult) []string {
	out := []string{}
	for _, g := range lexicon.Distortions {
		if _, ok := r.Distortions[g.Name]; ok {
			out = append(out, g.Name)
		}
	}
	return out
}

func (s DistortionScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Detect(text))
}

func (s DistortionScorer) Signal(r domain.DistortionResult) domain.SignalScore {
	return domain.SignalScore{
		Category: s.Name(),
		Score:    r.Score,
		Evidence: s.Names(r),
	}
}
