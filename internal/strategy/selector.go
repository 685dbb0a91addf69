// Package strategy picks the therapeutic response strategy for a message.
//
// The rules form a priority cascade, evaluated top to bottom; the first
// rule that matches wins even when later rules would also match:
//
//  1. crisis risk level >= 8            -> crisis_intervention
//  2. depression indicators > 0.7       -> depression_focused
//  3. anxiety indicators > 0.7          -> anxiety_management
//  4. stress indicators > 0.6           -> stress_reduction
//  5. dominant emotion loneliness or isolation -> social_connection
//  6. motivation level < 0.3            -> motivation_building
//  7. otherwise                         -> general_support
package strategy

import "github.com/PabloGalante/farum-support/internal/domain"

// CrisisThreshold is the risk level at which the crisis path takes over.
const CrisisThreshold = 8

// Input carries the signals the cascade reads.
type Input struct {
	CrisisLevel          int
	DepressionIndicators float64
	AnxietyIndicators    float64
	StressIndicators     float64
	DominantEmotion      string
	MotivationLevel      float64
}

// FromSnapshot builds an Input from a crisis level and a snapshot.
func FromSnapshot(crisisLevel int, dominantEmotion string, s domain.MentalStateSnapshot) Input {
	return Input{
		CrisisLevel:          crisisLevel,
		DepressionIndicators: s.DepressionIndicators,
		AnxietyIndicators:    s.AnxietyIndicators,
		StressIndicators:     s.StressIndicators,
		DominantEmotion:      dominantEmotion,
		MotivationLevel:      s.MotivationLevel,
	}
}

type rule struct {
	match    func(Input) bool
	strategy domain.Strategy
}

var cascade = []rule{
	{func(in Input) bool { return in.CrisisLevel >= CrisisThreshold }, domain.StrategyCrisisIntervention},
	{func(in Input) bool { return in.DepressionIndicators > 0.7 }, domain.StrategyDepressionFocused},
	{func(in Input) bool { return in.AnxietyIndicators > 0.7 }, domain.StrategyAnxietyManagement},
	{func(in Input) bool { return in.StressIndicators > 0.6 }, domain.StrategyStressReduction},
	{func(in Input) bool {
		return in.DominantEmotion == "loneliness" || in.DominantEmotion == "isolation"
	}, domain.StrategySocialConnection},
	{func(in Input) bool { return in.MotivationLevel < 0.3 }, domain.StrategyMotivationBuilding},
}

// Select returns the strategy for in.
func Select(in Input) domain.Strategy {
	s, _ := Explain(in)
	return s
}

// Explain returns the strategy and the 1-based number of the rule that
// produced it. The fallback rule is number 7.
func Explain(in Input) (domain.Strategy, int) {
	for i, r := range cascade {
		if r.match(in) {
			return r.strategy, i + 1
		}
	}
	return domain.StrategyGeneralSupport, len(cascade) + 1
}

// IsCrisis reports whether level routes to the crisis path.
func IsCrisis(level int) bool { return level >= CrisisThreshold }
