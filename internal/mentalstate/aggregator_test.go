package mentalstate_test

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
)

var now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func neutral() domain.EmotionalAnalysis {
	return domain.EmotionalAnalysis{
		Sentiment:       lexicon.SentimentNeutral,
		SentimentScore:  lexicon.NeutralScore,
		DominantEmotion: "neutral",
		EmotionScore:    0.5,
		Emotions:        []string{},
	}
}

// history builds one snapshot per score, a day apart, ending a day before now.
func history(scores ...float64) []domain.MentalStateSnapshot {
	out := make([]domain.MentalStateSnapshot, len(scores))
	for i, s := range scores {
		out[i] = domain.MentalStateSnapshot{
			UserID:       "u1",
			Timestamp:    now.Add(-time.Duration(len(scores)-i) * 24 * time.Hour),
			OverallScore: s,
		}
	}
	return out
}

func TestAssess_ContentBlend(t *testing.T) {
	agg := mentalstate.NewAggregator()

	snap := agg.Assess(mentalstate.Input{
		UserID:    "u1",
		Message:   "I feel hopeless and exhausted",
		At:        now,
		Emotional: neutral(),
	})

	assert.InDelta(t, 0.6*2.0/7+0.4*0.5, snap.DepressionIndicators, 1e-9)
	assert.InDelta(t, 0.3*0.3, snap.AnxietyIndicators, 1e-9)
	assert.InDelta(t, 0.5*0.5, snap.StressIndicators, 1e-9)

	mean := (snap.DepressionIndicators + snap.AnxietyIndicators + snap.StressIndicators) / 3
	assert.InDelta(t, 1-mean, snap.OverallScore, 1e-9)
	assert.Equal(t, domain.PriorityMaintenance, snap.InterventionPriority)
	assert.Equal(t, domain.TrendStable, snap.Trend)
	assert.Equal(t, 0.5, snap.Stability)
	assert.Equal(t, 0.5, snap.CopingEffectiveness)
	assert.Zero(t, snap.StagnationIndicators)
	assert.Empty(t, snap.ID)
}

func TestAssess_WarningSignsRaiseEveryRisk(t *testing.T) {
	agg := mentalstate.NewAggregator()
	base := agg.Assess(mentalstate.Input{UserID: "u1", Message: "today was a day", At: now, Emotional: neutral()})
	warn := agg.Assess(mentalstate.Input{UserID: "u1", Message: "I want to kill myself, I am all alone", At: now, Emotional: neutral()})

	assert.Equal(t, []string{"suicidal_ideation", "social_isolation"}, warn.WarningSigns)
	assert.InDelta(t, base.AnxietyIndicators+0.4, warn.AnxietyIndicators, 1e-9)
	assert.Greater(t, warn.DepressionIndicators, base.DepressionIndicators)
	assert.Less(t, warn.OverallScore, base.OverallScore)
}

func TestAssess_PositiveIndicatorsLowerRisk(t *testing.T) {
	agg := mentalstate.NewAggregator()
	snap := agg.Assess(mentalstate.Input{
		UserID:  "u1",
		Message: "so grateful for my friends",
		At:      now,
		Emotional: domain.EmotionalAnalysis{
			Sentiment:       lexicon.SentimentPositive,
			SentimentScore:  lexicon.PositiveScore,
			DominantEmotion: "gratitude",
			EmotionScore:    0.6,
			Emotions:        []string{"gratitude"},
		},
	})

	assert.Equal(t, []string{"gratitude", "connection"}, snap.PositiveIndicators)
	assert.InDelta(t, 0.8, snap.MoodIndicators, 1e-9)
	assert.InDelta(t, 0.7, snap.SocialConnection, 1e-9)
	// 0.4*(1-0.8) - 0.2
	assert.Zero(t, snap.DepressionIndicators)
	assert.Empty(t, snap.WarningSigns)
}

func TestAssess_Idempotent(t *testing.T) {
	agg := mentalstate.NewAggregator()
	in := mentalstate.Input{
		UserID:    "u1",
		Message:   "I'm so stressed and overwhelmed, can't sleep and worried about everything",
		At:        now,
		Emotional: domain.EmotionalAnalysis{Sentiment: lexicon.SentimentNegative, SentimentScore: 0.3, DominantEmotion: "anxiety", EmotionScore: 0.3, Emotions: []string{"anxiety", "fear"}},
		History:   history(0.4, 0.5, 0.45, 0.6, 0.55),
	}

	first := agg.Assess(in)
	second := agg.Assess(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("snapshot changed between identical calls (-first +second):\n%s", diff)
	}
}

func TestAssess_ComponentsStayInRange(t *testing.T) {
	var phrases []string
	for _, groups := range [][]lexicon.Group{
		lexicon.DepressionIndicators, lexicon.AnxietyIndicators, lexicon.StressIndicators,
		lexicon.WarningSigns, lexicon.PositiveIndicators,
	} {
		for _, g := range groups {
			phrases = append(phrases, g.Phrases...)
		}
	}
	labels := []string{lexicon.SentimentPositive, lexicon.SentimentNegative, lexicon.SentimentNeutral}

	rng := rand.New(rand.NewSource(11))
	agg := mentalstate.NewAggregator()
	for i := 0; i < 300; i++ {
		n := rng.Intn(12)
		words := make([]string, n)
		for j := range words {
			words[j] = phrases[rng.Intn(len(phrases))]
		}
		snap := agg.Assess(mentalstate.Input{
			UserID:  "u1",
			Message: strings.Join(words, " "),
			At:      now,
			Emotional: domain.EmotionalAnalysis{
				Sentiment:      labels[rng.Intn(len(labels))],
				SentimentScore: rng.Float64(),
				EmotionScore:   rng.Float64(),
			},
		})
		for name, v := range map[string]float64{
			"overall": snap.OverallScore, "depression": snap.DepressionIndicators,
			"anxiety": snap.AnxietyIndicators, "stress": snap.StressIndicators,
			"energy": snap.EnergyLevel, "motivation": snap.MotivationLevel,
			"mood": snap.MoodIndicators, "social": snap.SocialConnection,
		} {
			require.GreaterOrEqual(t, v, 0.0, "%s for %q", name, words)
			require.LessOrEqual(t, v, 1.0, "%s for %q", name, words)
		}
	}
}

func TestAssess_IgnoresHistoryOutsideWindow(t *testing.T) {
	agg := mentalstate.NewAggregator()
	old := history(0.3, 0.3, 0.3, 0.3, 0.3)
	for i := range old {
		old[i].Timestamp = old[i].Timestamp.Add(-40 * 24 * time.Hour)
	}

	snap := agg.Assess(mentalstate.Input{UserID: "u1", Message: "ok", At: now, Emotional: neutral(), History: old})
	assert.Zero(t, snap.StagnationIndicators)
	assert.Equal(t, domain.TrendStable, snap.Trend)

	recent := agg.Assess(mentalstate.Input{UserID: "u1", Message: "ok", At: now, Emotional: neutral(), History: history(0.3, 0.3, 0.3, 0.3, 0.3)})
	assert.Equal(t, 0.8, recent.StagnationIndicators)
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		risk float64
		want domain.InterventionPriority
	}{
		{0.95, domain.PriorityHigh},
		{0.8, domain.PriorityHigh},
		{0.6, domain.PriorityModerate},
		{0.4, domain.PriorityLow},
		{0.39, domain.PriorityMaintenance},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mentalstate.PriorityFor(tt.risk), "risk %v", tt.risk)
	}
}
