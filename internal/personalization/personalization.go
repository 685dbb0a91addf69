// Package personalization adapts tone and goals to the selected strategy
// and reads communication cues out of the user's message.
package personalization

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
)

// Style is how a persona should sound.
type Style struct {
	Formality     string `json:"formality_level"`
	Empathy       string `json:"empathy_preference"`
	Directness    string `json:"directness"`
	Length        string `json:"length_preference"`
	Encouragement string `json:"encouragement_style"`
}

// DefaultStyle is the starting point before any strategy adjustment.
func DefaultStyle() Style {
	return Style{
		Formality:     "moderate",
		Empathy:       "high",
		Directness:    "balanced",
		Length:        "moderate",
		Encouragement: "supportive",
	}
}

// String renders the style as a prompt fragment.
func (s Style) String() string {
	return fmt.Sprintf("formality=%s, empathy=%s, directness=%s, length=%s, encouragement=%s",
		s.Formality, s.Empathy, s.Directness, s.Length, s.Encouragement)
}

// AdaptStyle returns base with the adjustments a strategy calls for.
func AdaptStyle(base Style, strategy domain.Strategy) Style {
	switch strategy {
	case domain.StrategyCrisisIntervention:
		base.Directness = "direct"
		base.Empathy = "high"
		base.Length = "brief"
	case domain.StrategyDepressionFocused:
		base.Empathy = "high"
		base.Encouragement = "gentle"
		base.Directness = "gentle"
	case domain.StrategyAnxietyManagement:
		base.Directness = "balanced"
		base.Length = "detailed"
		base.Encouragement = "supportive"
	case domain.StrategyMotivationBuilding:
		base.Encouragement = "motivational"
		base.Directness = "direct"
	}
	return base
}

var goals = map[domain.Strategy][]string{
	domain.StrategyDepressionFocused: {
		"Improve mood regulation",
		"Increase daily activity engagement",
		"Challenge negative thought patterns",
		"Build self-compassion",
	},
	domain.StrategyAnxietyManagement: {
		"Develop coping strategies for anxiety",
		"Practice relaxation techniques",
		"Build confidence in handling triggers",
		"Improve stress management",
	},
	domain.StrategyStressReduction: {
		"Identify stress triggers",
		"Develop healthy boundaries",
		"Improve time management",
		"Practice self-care",
	},
	domain.StrategySocialConnection: {
		"Build social skills",
		"Increase social interactions",
		"Develop meaningful relationships",
		"Overcome social anxiety",
	},
	domain.StrategyMotivationBuilding: {
		"Set achievable goals",
		"Build momentum through small wins",
		"Develop intrinsic motivation",
		"Create accountability systems",
	},
}

// TherapeuticGoals lists the goals worked on under strategy.
func TherapeuticGoals(strategy domain.Strategy) []string {
	if g, ok := goals[strategy]; ok {
		return append([]string(nil), g...)
	}
	return []string{"Improve overall well-being"}
}

// Communication summarises how the user writes.
type Communication struct {
	Length           string `json:"message_length"`
	Formality        string `json:"formality"`
	Openness         string `json:"openness_level"`
	QuestionStyle    string `json:"information_seeking_style"`
	WantsPractical   bool   `json:"likely_wants_practical_advice"`
	WantsSupport     bool   `json:"likely_wants_emotional_support"`
	WantsInformation bool   `json:"likely_wants_information"`
}

// AnalyzeCommunication reads style cues from message.
func AnalyzeCommunication(message string) Communication {
	lower := lexicon.Normalize(message)

	c := Communication{
		Length:           "long",
		Formality:        "neutral",
		Openness:         "low",
		QuestionStyle:    "sharing",
		WantsPractical:   lexicon.ContainsAny(lower, lexicon.PracticalCues),
		WantsSupport:     lexicon.ContainsAny(lower, lexicon.SupportCues),
		WantsInformation: lexicon.ContainsAny(lower, lexicon.InformationCues),
	}

	switch n := len([]rune(message)); {
	case n < 50:
		c.Length = "short"
	case n < 200:
		c.Length = "medium"
	}

	formal := len(lexicon.Match(lower, lexicon.FormalCues))
	casual := len(lexicon.Match(lower, lexicon.CasualCues))
	switch {
	case formal > casual:
		c.Formality = "formal"
	case casual > 0:
		c.Formality = "casual"
	}

	switch open := len(lexicon.Match(lower, lexicon.OpennessCues)); {
	case open > 2:
		c.Openness = "high"
	case open > 0:
		c.Openness = "moderate"
	}

	switch {
	case lexicon.ContainsAny(lower, lexicon.SpecificHelpCues):
		c.QuestionStyle = "direct"
	case strings.Contains(message, "?"):
		c.QuestionStyle = "exploratory"
	}
	return c
}

// Profile is the personalization handed to a persona for one message.
type Profile struct {
	Style         Style         `json:"communication_style"`
	Goals         []string      `json:"therapeutic_goals"`
	Communication Communication `json:"communication"`
}

// ForMessage builds the profile for a message answered under strategy.
// A user who writes formally or casually gets that formality back.
func ForMessage(message string, strategy domain.Strategy) Profile {
	comm := AnalyzeCommunication(message)
	style := AdaptStyle(DefaultStyle(), strategy)
	if comm.Formality != "neutral" {
		style.Formality = comm.Formality
	}
	return Profile{
		Style:         style,
		Goals:         TherapeuticGoals(strategy),
		Communication: comm,
	}
}
