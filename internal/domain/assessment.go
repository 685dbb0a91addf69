package domain

import "time"

// SignalScore is the generic output of one text classifier.
type SignalScore struct {
	Category string   `json:"category"`
	Score    float64  `json:"score"`
	Evidence []string `json:"matched_evidence"`
}

// CrisisAssessment is derived from the current message only.
type CrisisAssessment struct {
	RiskLevel             int                 `json:"risk_level"`
	Urgency               Urgency             `json:"urgency"`
	Indicators            map[string][]string `json:"indicators"`
	ProtectiveFactors     []string            `json:"protective_factors"`
	ImmediateIntervention bool                `json:"immediate_intervention"`
	SafetyPlanRequired    bool                `json:"safety_plan_required"`
	EmergencyServicesFlag bool                `json:"emergency_services_flag"`
}

type ConditionScreening struct {
	Condition string   `json:"condition"`
	Count     int      `json:"count"`
	Severity  string   `json:"severity"`
	Matches   []string `json:"matches"`
}

// ScreeningResult holds per-condition symptom cluster matches.
type ScreeningResult struct {
	Conditions         []ConditionScreening `json:"conditions"`
	PrimaryConcern     string               `json:"primary_concern"`
	ComorbidityPresent bool                 `json:"comorbidity_present"`
}

type EmotionResult struct {
	Emotions        map[string][]string `json:"emotions"`
	DominantEmotion string              `json:"dominant_emotion"`
	EmotionScore    float64             `json:"emotion_score"`
}

type IntensityResult struct {
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

type ComplexityResult struct {
	DistinctKeywords int    `json:"distinct_keywords"`
	Level            string `json:"level"`
}

type RegulationResult struct {
	Matches        map[string][]string `json:"matches"`
	StabilityScore float64             `json:"stability_score"`
	Level          string              `json:"level"`
}

type ContextResult struct {
	Topics []string `json:"topics"`
}

type DistortionResult struct {
	Distortions map[string][]string `json:"distortions"`
	Score       float64             `json:"score"`
}

type SentimentResult struct {
	Label string  `json:"label"` // POSITIVE, NEGATIVE or NEUTRAL
	Score float64 `json:"score"`
}

// EmotionalAnalysis is the reduced view the mental state aggregator consumes.
type EmotionalAnalysis struct {
	Sentiment       string   `json:"sentiment"`
	SentimentScore  float64  `json:"sentiment_score"`
	DominantEmotion string   `json:"emotion"`
	EmotionScore    float64  `json:"emotion_score"`
	Emotions        []string `json:"emotions"`
}

// MentalStateSnapshot is one point-in-time wellbeing assessment.
// It is never mutated after creation.
type MentalStateSnapshot struct {
	ID        SnapshotID `json:"id,omitempty"`
	UserID    UserID     `json:"user_id"`
	Timestamp time.Time  `json:"timestamp"`

	OverallScore         float64 `json:"overall_score"`
	DepressionIndicators float64 `json:"depression_indicators"`
	AnxietyIndicators    float64 `json:"anxiety_indicators"`
	StressIndicators     float64 `json:"stress_indicators"`
	EnergyLevel          float64 `json:"energy_level"`
	MotivationLevel      float64 `json:"motivation_level"`
	MoodIndicators       float64 `json:"mood_indicators"`
	SocialConnection     float64 `json:"social_connection"`
	CopingEffectiveness  float64 `json:"coping_effectiveness"`
	StagnationIndicators float64 `json:"stagnation_indicators"`

	Trend     Trend   `json:"emotional_trend"`
	Stability float64 `json:"emotional_stability"`

	InterventionPriority InterventionPriority `json:"intervention_priority"`
	WarningSigns         []string             `json:"warning_signs"`
	PositiveIndicators   []string             `json:"positive_indicators"`
}

// MaxRisk is the largest of the three risk components.
func (s MentalStateSnapshot) MaxRisk() float64 {
	return max(s.DepressionIndicators, s.AnxietyIndicators, s.StressIndicators)
}
