package mentalstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
)

func TestCurrentStruggles(t *testing.T) {
	steady := domain.MentalStateSnapshot{EnergyLevel: 0.5, MotivationLevel: 0.5, SocialConnection: 0.5}
	assert.Equal(t, []string{mentalstate.StruggleGeneral}, mentalstate.CurrentStruggles(steady))

	rough := domain.MentalStateSnapshot{
		DepressionIndicators: 0.7,
		StressIndicators:     0.65,
		EnergyLevel:          0.2,
		MotivationLevel:      0.5,
		SocialConnection:     0.3,
	}
	assert.Equal(t, []string{
		mentalstate.StruggleDepression,
		mentalstate.StruggleStress,
		mentalstate.StruggleLowEnergy,
		mentalstate.StruggleSocialIsolation,
	}, mentalstate.CurrentStruggles(rough))
}

func TestBuildInsights_NoHistory(t *testing.T) {
	ins := mentalstate.BuildInsights(nil, now)
	assert.Zero(t, ins.DataPoints)
	assert.Equal(t, domain.TrendStable, ins.Trend)
	assert.NotNil(t, ins.Recommendations)
	assert.NotNil(t, ins.CurrentStruggles)
}

func TestBuildInsights(t *testing.T) {
	states := history(0.3, 0.35, 0.3, 0.4, 0.5, 0.6, 0.7)
	last := &states[len(states)-1]
	last.DepressionIndicators = 0.65
	last.EnergyLevel = 0.2
	last.MotivationLevel = 0.5
	last.SocialConnection = 0.5
	last.CopingEffectiveness = 0.7
	last.PositiveIndicators = []string{"hope"}

	ins := mentalstate.BuildInsights(states, now)

	assert.Equal(t, 7, ins.DataPoints)
	assert.Equal(t, domain.TrendImproving, ins.Trend)
	assert.InDelta(t, 3.15/7, ins.AverageScore, 1e-9)
	assert.Equal(t, []string{"Weekly pattern analysis available"}, ins.Patterns)
	assert.Equal(t, []string{
		"Consider CBT-based interventions for depression",
		"Incorporate gentle physical activity and proper sleep hygiene",
	}, ins.Recommendations)
	assert.Equal(t, []string{
		"Overall mental health score improving",
		"Coping strategies becoming more effective",
		"Increased positive emotional expressions",
	}, ins.ProgressIndicators)
	assert.Equal(t, []string{mentalstate.StruggleDepression, mentalstate.StruggleLowEnergy}, ins.CurrentStruggles)
}
