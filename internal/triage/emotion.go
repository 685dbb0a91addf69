package triage

import (
	"strings"
	"unicode"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
)

// EmotionNeutral is the dominant emotion when no category matched.
const EmotionNeutral = "neutral"

// EmotionScorer identifies which emotion categories a message expresses.
type EmotionScorer struct {
	categories []lexicon.EmotionCategory
}

func NewEmotionScorer() *EmotionScorer {
	return &EmotionScorer{categories: lexicon.Emotions}
}

func (s *EmotionScorer) Name() string { return "emotion" }

// Identify returns the matched categories and the dominant one. The emotion
// score moves away from 0.5 by 0.1 per keyword in the direction of the
// dominant emotion's valence.
func (s *EmotionScorer) Identify(text string) domain.EmotionResult {
	lower := lexicon.Normalize(text)
	out := domain.EmotionResult{
		Emotions:        map[string][]string{},
		DominantEmotion: EmotionNeutral,
		EmotionScore:    0.5,
	}

	best := 0
	var valence lexicon.Valence
	for _, c := range s.categories {
		m := lexicon.Match(lower, c.Keywords)
		if len(m) == 0 {
			continue
		}
		out.Emotions[c.Name] = m
		if len(m) > best {
			best = len(m)
			out.DominantEmotion = c.Name
			valence = c.Valence
		}
	}

	out.EmotionScore = clamp01(0.5 + 0.1*float64(best)*float64(valence))
	return out
}

// Present lists matched categories in lexicon order.
func (s *EmotionScorer) Present(r domain.EmotionResult) []string {
	out := []string{}
	for _, c := range s.categories {
		if _, ok := r.Emotions[c.Name]; ok {
			out = append(out, c.Name)
		}
	}
	return out
}

func (s *EmotionScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Identify(text))
}

func (s *EmotionScorer) Signal(r domain.EmotionResult) domain.SignalScore {
	order := s.Present(r)
	return domain.SignalScore{
		Category: s.Name() + ":" + r.DominantEmotion,
		Score:    r.EmotionScore,
		Evidence: flatten(order, r.Emotions),
	}
}

func NeutralEmotion() domain.EmotionResult {
	return domain.EmotionResult{
		Emotions:        map[string][]string{},
		DominantEmotion: EmotionNeutral,
		EmotionScore:    0.5,
	}
}

// IntensityScorer weighs intensifiers, exclamation marks and shouting.
type IntensityScorer struct{}

func (IntensityScorer) Name() string { return "intensity" }

func (IntensityScorer) Measure(text string) domain.IntensityResult {
	strong := toSet(lexicon.StrongIntensifiers)
	moderate := toSet(lexicon.ModerateIntensifiers)

	score := 0.0
	for _, w := range words(text) {
		switch {
		case strong[w]:
			score += 3
		case moderate[w]:
			score += 2
		}
	}
	score += float64(strings.Count(text, "!"))

	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters > 0 {
		score += 5 * float64(upper) / float64(letters)
	}

	return domain.IntensityResult{Score: score, Level: intensityLevel(score)}
}

func intensityLevel(score float64) string {
	switch {
	case score >= 8:
		return "extreme"
	case score >= 5:
		return "high"
	case score >= 2:
		return "moderate"
	default:
		return "low"
	}
}

func (s IntensityScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Measure(text))
}

func (s IntensityScorer) Signal(r domain.IntensityResult) domain.SignalScore {
	return domain.SignalScore{
		Category: s.Name() + ":" + r.Level,
		Score:    clamp01(r.Score / 10),
		Evidence: []string{},
	}
}

// ComplexityScorer counts how many distinct emotion keywords appear.
type ComplexityScorer struct{}

func (ComplexityScorer) Name() string { return "complexity" }

func (ComplexityScorer) Measure(text string) domain.ComplexityResult {
	lower := lexicon.Normalize(text)
	seen := map[string]bool{}
	for _, c := range lexicon.Emotions {
		for _, k := range lexicon.Match(lower, c.Keywords) {
			seen[k] = true
		}
	}
	n := len(seen)
	level := "low"
	switch {
	case n >= 3:
		level = "high"
	case n == 2:
		level = "moderate"
	}
	return domain.ComplexityResult{DistinctKeywords: n, Level: level}
}

func (s ComplexityScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Measure(text))
}

func (s ComplexityScorer) Signal(r domain.ComplexityResult) domain.SignalScore {
	return domain.SignalScore{
		Category: s.Name() + ":" + r.Level,
		Score:    clamp01(float64(r.DistinctKeywords) / 3),
		Evidence: []string{},
	}
}

// RegulationScorer looks for self-awareness, coping, reflection and
// help-seeking language.
type RegulationScorer struct{}

func (RegulationScorer) Name() string { return "regulation" }

func (RegulationScorer) Measure(text string) domain.RegulationResult {
	lower := lexicon.Normalize(text)
	_, hits := lexicon.MatchGroups(lower, lexicon.RegulationGroups)
	n := 0
	for _, m := range hits {
		n += len(m)
	}
	level := "needs_support"
	switch {
	case n >= 4:
		level = "good"
	case n >= 2:
		level = "moderate"
	}
	return domain.RegulationResult{
		Matches:        hits,
		StabilityScore: min(1, float64(n)/10),
		Level:          level,
	}
}

func (s RegulationScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Measure(text))
}

func (s RegulationScorer) Signal(r domain.RegulationResult) domain.SignalScore {
	names := make([]string, 0, len(lexicon.RegulationGroups))
	for _, g := range lexicon.RegulationGroups {
		names = append(names, g.Name)
	}
	return domain.SignalScore{
		Category: s.Name() + ":" + r.Level,
		Score:    r.StabilityScore,
		Evidence: flatten(names, r.Matches),
	}
}

// ContextScorer extracts conversation topics.
type ContextScorer struct{}

func (ContextScorer) Name() string { return "context" }

func (ContextScorer) Topics(text string) domain.ContextResult {
	names, _ := lexicon.MatchGroups(lexicon.Normalize(text), lexicon.Topics)
	if names == nil {
		names = []string{}
	}
	return domain.ContextResult{Topics: names}
}

func (s ContextScorer) Classify(text string) domain.SignalScore {
	return s.Signal(s.Topics(text))
}

func (s ContextScorer) Signal(r domain.ContextResult) domain.SignalScore {
	return domain.SignalScore{
		Category: s.Name(),
		Score:    clamp01(float64(len(r.Topics)) / float64(len(lexicon.Topics))),
		Evidence: r.Topics,
	}
}

func words(text string) []string {
	return strings.FieldsFunc(lexicon.Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func toSet(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, v := range list {
		m[v] = true
	}
	return m
}
