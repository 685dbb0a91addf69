package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/strategy"
)

func calm() strategy.Input {
	return strategy.Input{DominantEmotion: "joy", MotivationLevel: 0.6}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*strategy.Input)
		want   domain.Strategy
		rule   int
	}{
		{"calm", func(*strategy.Input) {}, domain.StrategyGeneralSupport, 7},
		{"crisis beats everything", func(in *strategy.Input) {
			in.CrisisLevel = 8
			in.DepressionIndicators = 0.9
			in.MotivationLevel = 0.1
		}, domain.StrategyCrisisIntervention, 1},
		{"crisis just below threshold", func(in *strategy.Input) { in.CrisisLevel = 7 }, domain.StrategyGeneralSupport, 7},
		{"depression before anxiety", func(in *strategy.Input) {
			in.DepressionIndicators = 0.75
			in.AnxietyIndicators = 0.75
		}, domain.StrategyDepressionFocused, 2},
		{"depression threshold is strict", func(in *strategy.Input) { in.DepressionIndicators = 0.7 }, domain.StrategyGeneralSupport, 7},
		{"anxiety", func(in *strategy.Input) { in.AnxietyIndicators = 0.71 }, domain.StrategyAnxietyManagement, 3},
		{"stress", func(in *strategy.Input) { in.StressIndicators = 0.61 }, domain.StrategyStressReduction, 4},
		{"loneliness", func(in *strategy.Input) { in.DominantEmotion = "loneliness" }, domain.StrategySocialConnection, 5},
		{"isolation before motivation", func(in *strategy.Input) {
			in.DominantEmotion = "isolation"
			in.MotivationLevel = 0.1
		}, domain.StrategySocialConnection, 5},
		{"low motivation", func(in *strategy.Input) { in.MotivationLevel = 0.29 }, domain.StrategyMotivationBuilding, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := calm()
			tt.mutate(&in)

			got, rule := strategy.Explain(in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, tt.want, strategy.Select(in))
		})
	}
}

func TestFromSnapshot(t *testing.T) {
	in := strategy.FromSnapshot(3, "sadness", domain.MentalStateSnapshot{
		DepressionIndicators: 0.8,
		MotivationLevel:      0.2,
	})
	assert.Equal(t, domain.StrategyDepressionFocused, strategy.Select(in))
	assert.False(t, strategy.IsCrisis(in.CrisisLevel))
}
