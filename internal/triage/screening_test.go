package triage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/triage"
)

func TestScreeningPrimaryConcern(t *testing.T) {
	r := triage.NewScreeningScorer().Screen("I feel sad, hopeless and worthless, and I can't sleep")

	require.Len(t, r.Conditions, 4)
	assert.Equal(t, "depression", r.PrimaryConcern)
	assert.Equal(t, 4, r.Conditions[0].Count)
	assert.Equal(t, "moderate", r.Conditions[0].Severity)
	assert.False(t, r.ComorbidityPresent)
}

func TestScreeningTieGoesToEarlierCondition(t *testing.T) {
	r := triage.NewScreeningScorer().Screen("I'm anxious and sad")
	assert.Equal(t, "depression", r.PrimaryConcern)
}

func TestScreeningComorbidity(t *testing.T) {
	r := triage.NewScreeningScorer().Screen("sad, depressed, hopeless; anxious, worried, nervous")
	assert.True(t, r.ComorbidityPresent)
}

func TestScreeningEmptyMessage(t *testing.T) {
	r := triage.NewScreeningScorer().Screen("")
	assert.Equal(t, triage.PrimaryConcernNone, r.PrimaryConcern)
	for _, c := range r.Conditions {
		assert.Zero(t, c.Count)
		assert.Equal(t, "minimal", c.Severity)
	}
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, "minimal", triage.SeverityFor(1))
	assert.Equal(t, "mild", triage.SeverityFor(2))
	assert.Equal(t, "moderate", triage.SeverityFor(4))
	assert.Equal(t, "severe", triage.SeverityFor(7))
}
