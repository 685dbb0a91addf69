package triage

import (
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
)

const maxRiskLevel = 10

// CrisisScorer estimates self-harm and suicide risk from a single message.
type CrisisScorer struct {
	tiers      []lexicon.CrisisTier
	protective []string
}

// NewCrisisScorer uses the built-in crisis lexicon.
func NewCrisisScorer() *CrisisScorer {
	return NewCrisisScorerWith(lexicon.CrisisTiers, lexicon.ProtectiveFactors)
}

func NewCrisisScorerWith(tiers []lexicon.CrisisTier, protective []string) *CrisisScorer {
	return &CrisisScorer{tiers: tiers, protective: protective}
}

func (s *CrisisScorer) Name() string { return "crisis" }

// Assess never fails; empty text yields risk level 0.
func (s *CrisisScorer) Assess(text string) domain.CrisisAssessment {
	lower := lexicon.Normalize(text)

	out := domain.CrisisAssessment{
		Indicators:        map[string][]string{},
		ProtectiveFactors: []string{},
	}

	total := 0
	for _, tier := range s.tiers {
		m := lexicon.Match(lower, tier.Phrases)
		if len(m) == 0 {
			continue
		}
		out.Indicators[tier.Name] = m
		total += len(m) * tier.Weight
	}

	for _, p := range lexicon.Match(lower, s.protective) {
		out.ProtectiveFactors = append(out.ProtectiveFactors, p)
		total = max(0, total-lexicon.ProtectiveFactorWeight)
	}

	out.RiskLevel = min(maxRiskLevel, total)
	out.Urgency = UrgencyFor(out.RiskLevel)
	out.ImmediateIntervention = out.RiskLevel >= 7
	out.SafetyPlanRequired = out.RiskLevel >= 5
	out.EmergencyServicesFlag = out.RiskLevel >= 9
	return out
}

// UrgencyFor maps a 0-10 risk level onto its urgency band.
func UrgencyFor(risk int) domain.Urgency {
	switch {
	case risk >= 9:
		return domain.UrgencyCritical
	case risk >= 7:
		return domain.UrgencyHigh
	case risk >= 5:
		return domain.UrgencyModerate
	case risk >= 3:
		return domain.UrgencyLowModerate
	default:
		return domain.UrgencyLow
	}
}

func (s *CrisisScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Assess(text))
}

func (s *CrisisScorer) Signal(a domain.CrisisAssessment) domain.SignalScore {
	order := make([]string, 0, len(s.tiers))
	for _, t := range s.tiers {
		order = append(order, t.Name)
	}
	return domain.SignalScore{
		Category: s.Name(),
		Score:    float64(a.RiskLevel),
		Evidence: flatten(order, a.Indicators),
	}
}

// NeutralCrisis is the assessment used when the scorer could not run.
func NeutralCrisis() domain.CrisisAssessment {
	return domain.CrisisAssessment{
		Urgency:           domain.UrgencyLow,
		Indicators:        map[string][]string{},
		ProtectiveFactors: []string{},
	}
}
