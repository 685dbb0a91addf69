package lexicon_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-support/internal/lexicon"
)

func TestMatchKeepsListOrder(t *testing.T) {
	got := lexicon.Match("i feel numb and depressed", []string{"depressed", "lonely", "numb"})
	assert.Equal(t, []string{"depressed", "numb"}, got)
}

func TestMatchEmptyText(t *testing.T) {
	assert.Empty(t, lexicon.Match("", []string{"a"}))
}

func TestMatchGroups(t *testing.T) {
	names, hits := lexicon.MatchGroups("i'm so tired and can't sleep", lexicon.DepressionIndicators)
	assert.Equal(t, []string{"fatigue", "sleep_disturbance"}, names)
	assert.Equal(t, []string{"tired"}, hits["fatigue"])
}

func TestNormalizeFoldsApostrophes(t *testing.T) {
	assert.Equal(t, "i can't go on", lexicon.Normalize("I CAN’T go on"))
}

func TestTablesAreLowerCase(t *testing.T) {
	check := func(name string, phrases []string) {
		for _, p := range phrases {
			assert.Equal(t, strings.ToLower(p), p, "%s: %q", name, p)
			assert.NotEmpty(t, p, name)
		}
	}
	for _, tier := range lexicon.CrisisTiers {
		check(tier.Name, tier.Phrases)
	}
	check("protective", lexicon.ProtectiveFactors)
	for _, e := range lexicon.Emotions {
		check(e.Name, e.Keywords)
	}
	groups := [][]lexicon.Group{
		lexicon.ScreeningClusters, lexicon.RegulationGroups, lexicon.DepressionIndicators,
		lexicon.AnxietyIndicators, lexicon.StressIndicators, lexicon.WarningSigns,
		lexicon.PositiveIndicators, lexicon.Distortions, lexicon.Topics,
	}
	for _, gs := range groups {
		for _, g := range gs {
			check(g.Name, g.Phrases)
		}
	}
}

func TestProtectiveFactorsDoNotMatchInsideRiskPhrases(t *testing.T) {
	for _, tier := range lexicon.CrisisTiers {
		for _, p := range tier.Phrases {
			assert.Empty(t, lexicon.Match(p, lexicon.ProtectiveFactors), "tier %s phrase %q", tier.Name, p)
		}
	}
}
