package mentalstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
)

func TestTrajectory(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   domain.Trend
	}{
		{"empty", nil, domain.TrendStable},
		{"single state", []float64{0.9}, domain.TrendStable},
		{"improving", []float64{0.3, 0.3, 0.3, 0.6, 0.6}, domain.TrendImproving},
		{"declining", []float64{0.8, 0.7, 0.5, 0.4}, domain.TrendDeclining},
		{"inside margin", []float64{0.5, 0.5, 0.55, 0.58}, domain.TrendStable},
		{"two states share both pairs", []float64{0.2, 0.5}, domain.TrendStable},
		{"three states overlap pairs", []float64{0.3, 0.5, 0.45}, domain.TrendStable},
		{"three states rising", []float64{0.2, 0.5, 0.7}, domain.TrendImproving},
		{"three states falling", []float64{0.8, 0.5, 0.3}, domain.TrendDeclining},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stability := mentalstate.Trajectory(history(tt.scores...))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, stability, 0.0)
			assert.LessOrEqual(t, stability, 1.0)
		})
	}
}

func TestTrajectory_Stability(t *testing.T) {
	_, flat := mentalstate.Trajectory(history(0.5, 0.5, 0.5))
	assert.Equal(t, 1.0, flat)

	// population variance 0.0625 -> 1 - 0.25
	_, swing := mentalstate.Trajectory(history(0.25, 0.75))
	assert.InDelta(t, 0.75, swing, 1e-9)

	_, none := mentalstate.Trajectory(nil)
	assert.Equal(t, 0.5, none)
}

func TestStagnation(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"too few states", []float64{0.1, 0.1, 0.1, 0.1}, 0},
		{"flat and low", []float64{0.3, 0.3, 0.3, 0.3, 0.3}, 0.8},
		{"steady below half", []float64{0.4, 0.45, 0.5, 0.45, 0.4}, 0.6},
		{"moving", []float64{0.1, 0.9, 0.1, 0.9, 0.1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, mentalstate.Stagnation(history(tt.scores...)), 1e-9)
		})
	}
}
