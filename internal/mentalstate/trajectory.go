package mentalstate

import "github.com/PabloGalante/farum-support/internal/domain"

const trendMargin = 0.1

// Trajectory classifies the direction of the overall score across states
// (oldest first) and how steady it has been. The mean of the first two
// scores is compared with the mean of the last two, so the pairs overlap
// below four states and two states are always stable. Fewer than two
// states are reported as stable with a neutral 0.5 stability.
func Trajectory(states []domain.MentalStateSnapshot) (domain.Trend, float64) {
	scores := overallScores(states)
	if len(scores) < 2 {
		return domain.TrendStable, 0.5
	}

	start := mean(scores[:2])
	end := mean(scores[len(scores)-2:])

	trend := domain.TrendStable
	switch {
	case end > start+trendMargin:
		trend = domain.TrendImproving
	case end < start-trendMargin:
		trend = domain.TrendDeclining
	}
	return trend, clamp01(1 - 4*variance(scores))
}

// Stagnation scores how stuck the user looks over the states given,
// usually the last 30 days. Fewer than five states score 0.
func Stagnation(states []domain.MentalStateSnapshot) float64 {
	scores := overallScores(states)
	if len(scores) < 5 {
		return 0
	}
	v, m := variance(scores), mean(scores)
	switch {
	case v < 0.01 && m < 0.4:
		return 0.8
	case v < 0.05 && m < 0.5:
		return 0.6
	default:
		return max(0, 0.4-10*v)
	}
}

func copingEffectiveness(states []domain.MentalStateSnapshot) float64 {
	n := len(states)
	if n < 3 {
		return 0.5
	}
	delta := states[n-1].OverallScore - states[0].OverallScore
	return clamp01(0.5 + delta/float64(n))
}

func overallScores(states []domain.MentalStateSnapshot) []float64 {
	out := make([]float64, len(states))
	for i, s := range states {
		out[i] = s.OverallScore
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the population variance.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return sum / float64(len(xs))
}
