package support

import (
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
	"github.com/PabloGalante/farum-support/internal/recommend"
	"github.com/PabloGalante/farum-support/internal/triage"
)

// Response types.
const (
	ResponseSupport = "support"
	ResponseCrisis  = "crisis"
)

// ProcessInput is one user message entering the pipeline.
type ProcessInput struct {
	Message        string
	UserID         domain.UserID
	SessionContext map[string]any
}

// ProcessOutput is the composed reply for one message.
type ProcessOutput struct {
	Response           string     `json:"response"`
	ResponseType       string     `json:"response_type"`
	CrisisLevel        int        `json:"crisis_level"`
	Urgency            string     `json:"urgency,omitempty"`
	ImmediateResources []Resource `json:"immediate_resources,omitempty"`

	MentalStateScore     float64                    `json:"mental_state_score"`
	MentalState          domain.MentalStateSnapshot `json:"mental_state"`
	WellnessSuggestions  []recommend.Activity       `json:"wellness_suggestions"`
	CommunitySuggestions recommend.Suggestions      `json:"community_suggestions"`
	SafetyStatus         SafetyStatus               `json:"safety_status"`

	Strategy        domain.Strategy      `json:"strategy"`
	Persona         string               `json:"persona,omitempty"`
	Fallback        bool                 `json:"fallback"`
	EmotionalState  EmotionalState       `json:"emotional_state"`
	SessionInsights mentalstate.Insights `json:"session_insights"`
	SessionID       domain.SessionID     `json:"session_id"`

	// Warnings lists non-fatal problems, such as a failed history write.
	Warnings []string `json:"warnings,omitempty"`
}

// SafetyStatus reflects the crisis assessment of the current message. It is
// filled in whether or not generation succeeded.
type SafetyStatus struct {
	RiskLevel             int                 `json:"risk_level"`
	Urgency               domain.Urgency      `json:"urgency"`
	CrisisDetected        bool                `json:"crisis_detected"`
	ImmediateIntervention bool                `json:"immediate_intervention"`
	SafetyPlanRequired    bool                `json:"safety_plan_required"`
	EmergencyServicesFlag bool                `json:"emergency_services_flag"`
	Indicators            map[string][]string `json:"indicators"`
	ProtectiveFactors     []string            `json:"protective_factors"`
}

// EmotionalState is the client-facing view of the emotional analysis.
type EmotionalState struct {
	Sentiment       string   `json:"sentiment"`
	SentimentScore  float64  `json:"sentiment_score"`
	DominantEmotion string   `json:"dominant_emotion"`
	EmotionScore    float64  `json:"emotion_score"`
	Emotions        []string `json:"emotions"`
	Intensity       string   `json:"intensity"`
	Complexity      string   `json:"complexity"`
	Regulation      string   `json:"regulation"`
	PrimaryConcern  string   `json:"primary_concern"`
	Distortions     []string `json:"cognitive_distortions"`
	Topics          []string `json:"topics"`
}

// Resource is an emergency contact.
type Resource struct {
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Available string `json:"available"`
}

// CrisisResources are listed in every crisis reply.
func CrisisResources() []Resource {
	return []Resource{
		{Name: "988 Suicide & Crisis Lifeline", Contact: "Call or text 988", Available: "24/7"},
		{Name: "Crisis Text Line", Contact: "Text HOME to 741741", Available: "24/7"},
		{Name: "Emergency Services", Contact: "Call 911", Available: "24/7"},
	}
}

// CrisisResponse is returned instead of a generated reply when a message
// crosses the crisis threshold.
const CrisisResponse = `I'm really concerned about what you've shared, and I'm glad you told me. Your safety matters most right now.

Please reach out for immediate support:
- Call or text 988 (Suicide & Crisis Lifeline), available 24/7
- Text HOME to 741741 (Crisis Text Line)
- Call 911 or go to the nearest emergency room if you are in immediate danger

If you can, stay with someone you trust while you reach out. You don't have to go through this alone.`

func safetyStatus(c domain.CrisisAssessment, crisis bool) SafetyStatus {
	return SafetyStatus{
		RiskLevel:             c.RiskLevel,
		Urgency:               c.Urgency,
		CrisisDetected:        crisis,
		ImmediateIntervention: c.ImmediateIntervention,
		SafetyPlanRequired:    c.SafetyPlanRequired,
		EmergencyServicesFlag: c.EmergencyServicesFlag,
		Indicators:            c.Indicators,
		ProtectiveFactors:     c.ProtectiveFactors,
	}
}

func emotionalState(a triage.Analysis) EmotionalState {
	em := a.Emotional()
	return EmotionalState{
		Sentiment:       em.Sentiment,
		SentimentScore:  em.SentimentScore,
		DominantEmotion: em.DominantEmotion,
		EmotionScore:    em.EmotionScore,
		Emotions:        em.Emotions,
		Intensity:       a.Intensity.Level,
		Complexity:      a.Complexity.Level,
		Regulation:      a.Regulation.Level,
		PrimaryConcern:  a.Screening.PrimaryConcern,
		Distortions:     triage.DistortionScorer{}.Names(a.Distortions),
		Topics:          a.Context.Topics,
	}
}
