package domain

// Message is one entry in a session timeline (user or agent).
type Message struct {
	ID        MessageID
	SessionID SessionID
	UserID    UserID
	Author    Role
	Text      string
	CreatedAt Timestamp

	// Set on agent messages only
	Strategy Strategy
	Persona  string
	Fallback bool
}

// Session groups the messages a user exchanges until it goes idle.
type Session struct {
	ID        SessionID
	UserID    UserID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	LastStrategy Strategy
	MessageCount int
}
