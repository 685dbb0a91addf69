package persona_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/persona"
)

func TestDefault_MapsEveryStrategy(t *testing.T) {
	reg, err := persona.Default()
	require.NoError(t, err)

	for _, s := range domain.Strategies() {
		p, err := reg.ForStrategy(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, p.Role, s)
		assert.Contains(t, p.PromptTemplate, "{message}", s)
	}

	dep, _ := reg.ForStrategy(domain.StrategyDepressionFocused)
	assert.Equal(t, persona.CBTTherapist, dep.Name)

	_, err = reg.Get(persona.ProgressTracker)
	assert.NoError(t, err)
}

func TestRegistry_UnknownPersona(t *testing.T) {
	reg, err := persona.Default()
	require.NoError(t, err)

	_, err = reg.Get("astrologer")
	assert.True(t, errors.Is(err, domain.ErrUnknownPersona))
}

func TestParse_RejectsIncompleteTables(t *testing.T) {
	tests := map[string]string{
		"unmapped strategy": `
strategies:
  general_support: listener
personas:
  - name: listener
    prompt_template: "{message}"
`,
		"mapping to missing persona": `
strategies:
  crisis_intervention: a
  depression_focused: a
  anxiety_management: a
  stress_reduction: a
  social_connection: a
  motivation_building: a
  general_support: ghost
personas:
  - name: a
    prompt_template: "{message}"
`,
		"duplicate persona": `
personas:
  - name: a
    prompt_template: x
  - name: a
    prompt_template: y
`,
		"not yaml": "strategies: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := persona.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_EmptyPathUsesDefault(t *testing.T) {
	reg, err := persona.LoadFile("")
	require.NoError(t, err)
	assert.Contains(t, reg.Names(), "emotional_support")
}
