// Package mentalstate turns one message plus the user's recent history
// into a MentalStateSnapshot and derives trend reports from that history.
package mentalstate

import (
	"time"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/lexicon"
)

// Trailing windows, measured back from the message time.
const (
	TrendWindow      = 7 * 24 * time.Hour
	CopingWindow     = 14 * 24 * time.Hour
	StagnationWindow = 30 * 24 * time.Hour

	// HistoryWindow is the widest window Assess looks at. Callers read at
	// least this much history before calling it.
	HistoryWindow = StagnationWindow
)

const (
	warningSignWeight    = 0.2
	positiveFactorWeight = -0.1
)

// Input is everything the aggregator needs for one message.
type Input struct {
	UserID    domain.UserID
	Message   string
	At        time.Time
	Emotional domain.EmotionalAnalysis
	// History holds prior snapshots, oldest first. Entries outside
	// HistoryWindow are ignored.
	History []domain.MentalStateSnapshot
}

// Aggregator has no state; Assess is a pure function of its Input.
type Aggregator struct{}

func NewAggregator() *Aggregator { return &Aggregator{} }

// Assess builds the snapshot for in. The returned snapshot has no ID;
// the history store assigns one on append.
func (a *Aggregator) Assess(in Input) domain.MentalStateSnapshot {
	lower := lexicon.Normalize(in.Message)
	em := emotionalComponents(lower, in.Emotional)

	warnings, _ := lexicon.MatchGroups(lower, lexicon.WarningSigns)
	positives, _ := lexicon.MatchGroups(lower, lexicon.PositiveIndicators)
	adjust := warningSignWeight*float64(len(warnings)) + positiveFactorWeight*float64(len(positives))

	dep := clamp01(0.6*contentScore(lower, lexicon.DepressionIndicators) + 0.4*(1-em.mood) + adjust)
	anx := clamp01(0.7*contentScore(lower, lexicon.AnxietyIndicators) + 0.3*em.anxiety + adjust)
	stress := clamp01(0.5*contentScore(lower, lexicon.StressIndicators) + 0.5*(1-em.energy) + adjust)

	overall := clamp01(1 - (dep+anx+stress)/3)

	trend, stability := Trajectory(within(in.History, in.At, TrendWindow))

	snap := domain.MentalStateSnapshot{
		UserID:    in.UserID,
		Timestamp: in.At,

		OverallScore:         overall,
		DepressionIndicators: dep,
		AnxietyIndicators:    anx,
		StressIndicators:     stress,
		EnergyLevel:          em.energy,
		MotivationLevel:      em.motivation,
		MoodIndicators:       em.mood,
		SocialConnection:     em.social,
		CopingEffectiveness:  copingEffectiveness(within(in.History, in.At, CopingWindow)),
		StagnationIndicators: Stagnation(within(in.History, in.At, StagnationWindow)),

		Trend:     trend,
		Stability: stability,

		WarningSigns:       nonNil(warnings),
		PositiveIndicators: nonNil(positives),
	}
	snap.InterventionPriority = PriorityFor(snap.MaxRisk())
	return snap
}

type components struct {
	mood       float64
	energy     float64
	motivation float64
	social     float64
	anxiety    float64
}

func emotionalComponents(lower string, ea domain.EmotionalAnalysis) components {
	sentiment := ea.SentimentScore
	if ea.Sentiment == "" {
		sentiment = lexicon.NeutralScore
	}

	c := components{
		mood:       sentiment,
		energy:     clamp01((sentiment + ea.EmotionScore) / 2),
		motivation: sentiment,
		social:     0.5,
		anxiety:    0.3,
	}

	switch ea.Sentiment {
	case lexicon.SentimentPositive:
		c.mood += 0.1
	case lexicon.SentimentNegative:
		c.mood -= 0.1
	}
	c.mood = clamp01(c.mood)

	switch ea.DominantEmotion {
	case "joy", "hope":
		c.motivation += 0.2
	case "sadness", "fear", "anger":
		c.motivation -= 0.2
	}
	c.motivation = clamp01(c.motivation)

	present := make(map[string]bool, len(ea.Emotions))
	for _, e := range ea.Emotions {
		present[e] = true
	}
	if present["loneliness"] || present["isolation"] {
		c.social -= 0.2
	}
	for _, g := range lexicon.PositiveIndicators {
		if g.Name == "connection" && lexicon.ContainsAny(lower, g.Phrases) {
			c.social += 0.2
		}
	}
	c.social = clamp01(c.social)

	if present["fear"] || present["anxiety"] {
		c.anxiety = 0.8
	}
	return c
}

// contentScore is the share of indicator categories hit by the message.
func contentScore(lower string, groups []lexicon.Group) float64 {
	if len(groups) == 0 {
		return 0
	}
	names, _ := lexicon.MatchGroups(lower, groups)
	return float64(len(names)) / float64(len(groups))
}

// PriorityFor maps the largest risk component to an intervention priority.
func PriorityFor(maxRisk float64) domain.InterventionPriority {
	switch {
	case maxRisk >= 0.8:
		return domain.PriorityHigh
	case maxRisk >= 0.6:
		return domain.PriorityModerate
	case maxRisk >= 0.4:
		return domain.PriorityLow
	default:
		return domain.PriorityMaintenance
	}
}

// within keeps the snapshots taken in [at-window, at].
func within(history []domain.MentalStateSnapshot, at time.Time, window time.Duration) []domain.MentalStateSnapshot {
	from := at.Add(-window)
	var out []domain.MentalStateSnapshot
	for _, s := range history {
		if s.Timestamp.Before(from) || s.Timestamp.After(at) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
