package triage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-support/internal/lexicon"
	"github.com/PabloGalante/farum-support/internal/triage"
)

func TestEmotionPositiveDay(t *testing.T) {
	r := triage.NewEmotionScorer().Identify("I had a great day, feeling grateful")

	assert.Equal(t, "joy", r.DominantEmotion)
	assert.Contains(t, r.Emotions, "gratitude")
	assert.InDelta(t, 0.6, r.EmotionScore, 1e-9)
}

func TestEmotionDominantByCount(t *testing.T) {
	r := triage.NewEmotionScorer().Identify("I feel so lonely, all alone again")

	assert.Equal(t, "loneliness", r.DominantEmotion)
	assert.InDelta(t, 0.3, r.EmotionScore, 1e-9)
}

func TestEmotionTieUsesCategoryOrder(t *testing.T) {
	r := triage.NewEmotionScorer().Identify("I'm sad and angry")
	assert.Equal(t, "sadness", r.DominantEmotion)
}

func TestEmotionNeutral(t *testing.T) {
	r := triage.NewEmotionScorer().Identify("")
	assert.Equal(t, triage.EmotionNeutral, r.DominantEmotion)
	assert.Equal(t, 0.5, r.EmotionScore)
	assert.Empty(t, r.Emotions)
}

func TestIntensityLevels(t *testing.T) {
	var s triage.IntensityScorer

	assert.Equal(t, "low", s.Measure("calm day").Level)
	assert.Equal(t, "moderate", s.Measure("I am extremely tired").Level)

	shout := s.Measure("I'm SO ANGRY!!!")
	assert.Equal(t, "extreme", shout.Level)
	assert.InDelta(t, 2+3+5*8.0/9.0, shout.Score, 1e-9)

	assert.Equal(t, "low", s.Measure("").Level)
}

func TestComplexityLevels(t *testing.T) {
	var s triage.ComplexityScorer

	assert.Equal(t, "low", s.Measure("").Level)
	assert.Equal(t, "low", s.Measure("happy").Level)
	assert.Equal(t, "moderate", s.Measure("happy and sad").Level)
	assert.Equal(t, "high", s.Measure("happy but sad and worried").Level)
}

func TestRegulationLevels(t *testing.T) {
	var s triage.RegulationScorer

	r := s.Measure("I notice I'm anxious, so I take a deep breath and reach out to my therapist")
	assert.Equal(t, "good", r.Level)
	assert.InDelta(t, 0.4, r.StabilityScore, 1e-9)
	assert.Equal(t, []string{"i notice"}, r.Matches["self_awareness"])

	assert.Equal(t, "needs_support", s.Measure("").Level)
}

func TestContextTopics(t *testing.T) {
	r := triage.ContextScorer{}.Topics("My boss yells at work and money is tight")
	assert.Equal(t, []string{"work_stress", "finances"}, r.Topics)
}

func TestDistortionScore(t *testing.T) {
	var s triage.DistortionScorer
	r := s.Detect("I always mess up, it's my fault")

	assert.Equal(t, []string{"all_or_nothing", "personalization"}, s.Names(r))
	assert.InDelta(t, 2.0/float64(len(lexicon.Distortions)), r.Score, 1e-9)
}

func TestSentimentLabels(t *testing.T) {
	var s triage.SentimentScorer

	pos := s.Analyze("I had a great day")
	assert.Equal(t, lexicon.SentimentPositive, pos.Label)
	assert.Equal(t, lexicon.PositiveScore, pos.Score)

	neg := s.Analyze("a sad and bad week")
	assert.Equal(t, lexicon.SentimentNegative, neg.Label)
	assert.Equal(t, lexicon.NegativeScore, neg.Score)

	assert.Equal(t, lexicon.SentimentNeutral, s.Analyze("").Label)
}
