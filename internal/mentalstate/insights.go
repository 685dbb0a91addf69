package mentalstate

import (
	"time"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// Struggle labels produced by CurrentStruggles.
const (
	StruggleDepression      = "depression"
	StruggleAnxiety         = "anxiety"
	StruggleStress          = "stress"
	StruggleLowEnergy       = "low_energy"
	StruggleMotivation      = "motivation_issues"
	StruggleSocialIsolation = "social_isolation"
	StruggleGeneral         = "general_support_needed"
)

// CurrentStruggles lists the areas a snapshot flags, in a fixed order.
func CurrentStruggles(s domain.MentalStateSnapshot) []string {
	var out []string
	if s.DepressionIndicators > 0.6 {
		out = append(out, StruggleDepression)
	}
	if s.AnxietyIndicators > 0.6 {
		out = append(out, StruggleAnxiety)
	}
	if s.StressIndicators > 0.6 {
		out = append(out, StruggleStress)
	}
	if s.EnergyLevel < 0.3 {
		out = append(out, StruggleLowEnergy)
	}
	if s.MotivationLevel < 0.3 {
		out = append(out, StruggleMotivation)
	}
	if s.SocialConnection < 0.4 {
		out = append(out, StruggleSocialIsolation)
	}
	if len(out) == 0 {
		out = append(out, StruggleGeneral)
	}
	return out
}

// Insights summarises a user's last 30 days.
type Insights struct {
	DataPoints         int          `json:"data_points"`
	Trend              domain.Trend `json:"trend"`
	Stability          float64      `json:"stability"`
	AverageScore       float64      `json:"average_score"`
	CurrentStruggles   []string     `json:"current_struggles"`
	Patterns           []string     `json:"patterns"`
	Recommendations    []string     `json:"recommendations"`
	ProgressIndicators []string     `json:"progress_indicators"`
}

// BuildInsights reports on the history (oldest first) falling in the
// 30 days before now.
func BuildInsights(history []domain.MentalStateSnapshot, now time.Time) Insights {
	states := within(history, now, HistoryWindow)
	if len(states) == 0 {
		return Insights{
			Trend:              domain.TrendStable,
			Stability:          0.5,
			CurrentStruggles:   []string{},
			Patterns:           []string{},
			Recommendations:    []string{},
			ProgressIndicators: []string{},
		}
	}

	trend, stability := Trajectory(states)
	latest := states[len(states)-1]

	ins := Insights{
		DataPoints:         len(states),
		Trend:              trend,
		Stability:          stability,
		AverageScore:       mean(overallScores(states)),
		CurrentStruggles:   CurrentStruggles(latest),
		Patterns:           []string{},
		Recommendations:    recommendations(latest),
		ProgressIndicators: progress(states),
	}
	if len(states) >= 7 {
		ins.Patterns = append(ins.Patterns, "Weekly pattern analysis available")
	}
	return ins
}

func recommendations(s domain.MentalStateSnapshot) []string {
	out := []string{}
	if s.DepressionIndicators > 0.6 {
		out = append(out, "Consider CBT-based interventions for depression")
	}
	if s.AnxietyIndicators > 0.6 {
		out = append(out, "Practice daily mindfulness and breathing exercises")
	}
	if s.EnergyLevel < 0.3 {
		out = append(out, "Incorporate gentle physical activity and proper sleep hygiene")
	}
	return out
}

// progress compares the latest state with the one before it.
func progress(states []domain.MentalStateSnapshot) []string {
	out := []string{}
	if len(states) < 2 {
		return out
	}
	cur, prev := states[len(states)-1], states[len(states)-2]
	if cur.OverallScore > prev.OverallScore {
		out = append(out, "Overall mental health score improving")
	}
	if cur.CopingEffectiveness > prev.CopingEffectiveness {
		out = append(out, "Coping strategies becoming more effective")
	}
	if len(cur.PositiveIndicators) > len(prev.PositiveIndicators) {
		out = append(out, "Increased positive emotional expressions")
	}
	return out
}
