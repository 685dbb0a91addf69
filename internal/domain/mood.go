package domain

import "time"

// MoodEntry is a self-reported mood check-in.
type MoodEntry struct {
	ID        MoodEntryID `json:"id"`
	UserID    UserID      `json:"user_id"`
	Mood      string      `json:"mood"`
	Intensity int         `json:"intensity"` // 1-10
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
