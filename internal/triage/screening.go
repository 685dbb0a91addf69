package triage

import (
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
)

// PrimaryConcernNone is reported when no cluster matched.
const PrimaryConcernNone = "none"

// ScreeningScorer counts symptom cluster hits for depression, anxiety, PTSD
// and stress.
type ScreeningScorer struct {
	clusters []lexicon.Group
}

func NewScreeningScorer() *ScreeningScorer {
	return &ScreeningScorer{clusters: lexicon.ScreeningClusters}
}

func (s *ScreeningScorer) Name() string { return "screening" }

func (s *ScreeningScorer) Screen(text string) domain.ScreeningResult {
	lower := lexicon.Normalize(text)

	out := domain.ScreeningResult{
		Conditions:     make([]domain.ConditionScreening, 0, len(s.clusters)),
		PrimaryConcern: PrimaryConcernNone,
	}

	best, atLeastThree := 0, 0
	for _, c := range s.clusters {
		m := lexicon.Match(lower, c.Phrases)
		if m == nil {
			m = []string{}
		}
		n := len(m)
		out.Conditions = append(out.Conditions, domain.ConditionScreening{
			Condition: c.Name,
			Count:     n,
			Severity:  SeverityFor(n),
			Matches:   m,
		})
		// strict > keeps the earlier cluster on ties
		if n > best {
			best = n
			out.PrimaryConcern = c.Name
		}
		if n >= 3 {
			atLeastThree++
		}
	}
	out.ComorbidityPresent = atLeastThree >= 2
	return out
}

// SeverityFor labels a raw cluster match count.
func SeverityFor(count int) string {
	switch {
	case count >= 7:
		return "severe"
	case count >= 4:
		return "moderate"
	case count >= 2:
		return "mild"
	default:
		return "minimal"
	}
}

func (s *ScreeningScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Screen(text))
}

func (s *ScreeningScorer) Signal(r domain.ScreeningResult) domain.SignalScore {
	sig := domain.SignalScore{Category: s.Name(), Evidence: []string{}}
	for i, c := range r.Conditions {
		if c.Condition != r.PrimaryConcern {
			continue
		}
		sig.Score = clamp01(float64(c.Count) / float64(len(s.clusters[i].Phrases)))
		sig.Evidence = c.Matches
	}
	return sig
}

func NeutralScreening() domain.ScreeningResult {
	out := domain.ScreeningResult{PrimaryConcern: PrimaryConcernNone}
	for _, c := range lexicon.ScreeningClusters {
		out.Conditions = append(out.Conditions, domain.ConditionScreening{
			Condition: c.Name,
			Severity:  SeverityFor(0),
			Matches:   []string{},
		})
	}
	return out
}
