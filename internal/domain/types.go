package domain

import "time"

type SessionID string
type UserID string
type MessageID string
type SnapshotID string
type MoodEntryID string

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Strategy is the therapeutic response category selected for a message.
type Strategy string

const (
	StrategyCrisisIntervention Strategy = "crisis_intervention"
	StrategyDepressionFocused  Strategy = "depression_focused"
	StrategyAnxietyManagement  Strategy = "anxiety_management"
	StrategyStressReduction    Strategy = "stress_reduction"
	StrategySocialConnection   Strategy = "social_connection"
	StrategyMotivationBuilding Strategy = "motivation_building"
	StrategyGeneralSupport     Strategy = "general_support"
)

// Strategies lists every strategy in selection precedence order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyCrisisIntervention,
		StrategyDepressionFocused,
		StrategyAnxietyManagement,
		StrategyStressReduction,
		StrategySocialConnection,
		StrategyMotivationBuilding,
		StrategyGeneralSupport,
	}
}

type Urgency string

const (
	UrgencyLow         Urgency = "LOW"
	UrgencyLowModerate Urgency = "LOW_MODERATE"
	UrgencyModerate    Urgency = "MODERATE"
	UrgencyHigh        Urgency = "HIGH"
	UrgencyCritical    Urgency = "CRITICAL"
)

type InterventionPriority string

const (
	PriorityMaintenance InterventionPriority = "maintenance"
	PriorityLow         InterventionPriority = "low"
	PriorityModerate    InterventionPriority = "moderate"
	PriorityHigh        InterventionPriority = "high"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

type Timestamp = time.Time
