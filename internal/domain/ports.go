package domain

import (
	"context"
	"time"
)

// GenerationRequest is a rendered prompt plus sampling configuration.
// History holds earlier turns of the session, oldest first.
type GenerationRequest struct {
	System      string
	Prompt      string
	History     []*Message
	Temperature float32
	MaxTokens   int32
	TopP        float32
}

// TextGenerator is the hosted LLM. Retryable failures wrap ErrTransientGeneration.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// HistoryStore persists the append-only mental state history of each user.
type HistoryStore interface {
	// AppendSnapshot stores snap and returns the id assigned to it.
	AppendSnapshot(ctx context.Context, userID UserID, snap *MentalStateSnapshot) (SnapshotID, error)
	// ReadRecent returns the snapshots taken at or after since, oldest first.
	ReadRecent(ctx context.Context, userID UserID, since time.Time) ([]MentalStateSnapshot, error)
}

// SessionStore defines session persistence
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	UpdateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id SessionID) (*Session, error)
	// ListSessionsByUser returns the most recently updated sessions first.
	ListSessionsByUser(ctx context.Context, userID UserID, limit int) ([]*Session, error)
	DeleteSession(ctx context.Context, id SessionID) error
}

// MessageStore defines message persistence
type MessageStore interface {
	AppendMessage(ctx context.Context, msg *Message) error
	GetMessagesBySession(ctx context.Context, sessionID SessionID, limit int) ([]*Message, error)
	DeleteMessagesBySession(ctx context.Context, sessionID SessionID) error
}

// MoodStore persists self-reported mood entries.
type MoodStore interface {
	AppendMood(ctx context.Context, entry *MoodEntry) error
	// ListMoodsByUser returns entries created at or after since, oldest first.
	ListMoodsByUser(ctx context.Context, userID UserID, since time.Time) ([]*MoodEntry, error)
}
