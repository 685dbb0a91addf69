package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/farum-support/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (FARUM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) messagesCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionDoc(sessionID).Collection("messages")
}

func (s *Store) userDoc(userID domain.UserID) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(string(userID))
}

func (s *Store) historyCol(userID domain.UserID) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("mental_state")
}

func (s *Store) moodsCol(userID domain.UserID) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("moods")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type sessionDoc struct {
	UserID       string    `firestore:"user_id"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
	LastStrategy string    `firestore:"last_strategy"`
	MessageCount int       `firestore:"message_count"`
}

type messageDoc struct {
	SessionID string    `firestore:"session_id"`
	UserID    string    `firestore:"user_id"`
	Author    string    `firestore:"author"`
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
	Strategy  string    `firestore:"strategy"`
	Persona   string    `firestore:"persona"`
	Fallback  bool      `firestore:"fallback"`
}

type snapshotDoc struct {
	Timestamp            time.Time `firestore:"timestamp"`
	OverallScore         float64   `firestore:"overall_score"`
	DepressionIndicators float64   `firestore:"depression_indicators"`
	AnxietyIndicators    float64   `firestore:"anxiety_indicators"`
	StressIndicators     float64   `firestore:"stress_indicators"`
	EnergyLevel          float64   `firestore:"energy_level"`
	MotivationLevel      float64   `firestore:"motivation_level"`
	MoodIndicators       float64   `firestore:"mood_indicators"`
	SocialConnection     float64   `firestore:"social_connection"`
	CopingEffectiveness  float64   `firestore:"coping_effectiveness"`
	StagnationIndicators float64   `firestore:"stagnation_indicators"`
	Trend                string    `firestore:"emotional_trend"`
	Stability            float64   `firestore:"emotional_stability"`
	InterventionPriority string    `firestore:"intervention_priority"`
	WarningSigns         []string  `firestore:"warning_signs"`
	PositiveIndicators   []string  `firestore:"positive_indicators"`
}

type moodDoc struct {
	Mood      string    `firestore:"mood"`
	Intensity int       `firestore:"intensity"`
	Notes     string    `firestore:"notes"`
	CreatedAt time.Time `firestore:"created_at"`
}

func toSession(id domain.SessionID, doc sessionDoc) *domain.Session {
	return &domain.Session{
		ID:           id,
		UserID:       domain.UserID(doc.UserID),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
		LastStrategy: domain.Strategy(doc.LastStrategy),
		MessageCount: doc.MessageCount,
	}
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	doc := sessionDoc{
		UserID:       string(session.UserID),
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
		LastStrategy: string(session.LastStrategy),
		MessageCount: session.MessageCount,
	}

	_, err := s.sessionDoc(session.ID).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.ErrSessionExists
		}
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.sessionDoc(session.ID).Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: session.UpdatedAt},
		{Path: "last_strategy", Value: string(session.LastStrategy)},
		{Path: "message_count", Value: session.MessageCount},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrSessionNotFound
		}
		return fmt.Errorf("firestore UpdateSession: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	snap, err := s.sessionDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}

	return toSession(id, doc), nil
}

func (s *Store) ListSessionsByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Session, error) {
	q := s.sessionsCol().Where("user_id", "==", string(userID)).OrderBy("updated_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Session
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore ListSessionsByUser: %w", err)
		}

		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode sessionDoc: %w", err)
		}

		out = append(out, toSession(domain.SessionID(snap.Ref.ID), doc))
	}
	return out, nil
}

func (s *Store) DeleteSession(ctx context.Context, id domain.SessionID) error {
	if _, err := s.sessionDoc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore DeleteSession: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	doc := messageDoc{
		SessionID: string(msg.SessionID),
		UserID:    string(msg.UserID),
		Author:    string(msg.Author),
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
		Strategy:  string(msg.Strategy),
		Persona:   msg.Persona,
		Fallback:  msg.Fallback,
	}

	ref := s.messagesCol(msg.SessionID).NewDoc()
	if msg.ID != "" {
		ref = s.messagesCol(msg.SessionID).Doc(string(msg.ID))
	}

	if _, err := ref.Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	msg.ID = domain.MessageID(ref.ID)
	return nil
}

// GetMessagesBySession returns the last limit messages, oldest first.
func (s *Store) GetMessagesBySession(ctx context.Context, sessionID domain.SessionID, limit int) ([]*domain.Message, error) {
	q := s.messagesCol(sessionID).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Message
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore GetMessagesBySession: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.Message{
			ID:        domain.MessageID(snap.Ref.ID),
			SessionID: sessionID,
			UserID:    domain.UserID(doc.UserID),
			Author:    domain.Role(doc.Author),
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt,
			Strategy:  domain.Strategy(doc.Strategy),
			Persona:   doc.Persona,
			Fallback:  doc.Fallback,
		})
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *Store) DeleteMessagesBySession(ctx context.Context, sessionID domain.SessionID) error {
	refs := s.messagesCol(sessionID).DocumentRefs(ctx)
	for {
		ref, err := refs.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				return nil
			}
			return fmt.Errorf("firestore DeleteMessagesBySession: %w", err)
		}
		if _, err := ref.Delete(ctx); err != nil {
			return fmt.Errorf("firestore DeleteMessagesBySession: %w", err)
		}
	}
}

// ─────────────────────────────────────────
// HistoryStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendSnapshot(ctx context.Context, userID domain.UserID, snap *domain.MentalStateSnapshot) (domain.SnapshotID, error) {
	doc := snapshotDoc{
		Timestamp:            snap.Timestamp,
		OverallScore:         snap.OverallScore,
		DepressionIndicators: snap.DepressionIndicators,
		AnxietyIndicators:    snap.AnxietyIndicators,
		StressIndicators:     snap.StressIndicators,
		EnergyLevel:          snap.EnergyLevel,
		MotivationLevel:      snap.MotivationLevel,
		MoodIndicators:       snap.MoodIndicators,
		SocialConnection:     snap.SocialConnection,
		CopingEffectiveness:  snap.CopingEffectiveness,
		StagnationIndicators: snap.StagnationIndicators,
		Trend:                string(snap.Trend),
		Stability:            snap.Stability,
		InterventionPriority: string(snap.InterventionPriority),
		WarningSigns:         snap.WarningSigns,
		PositiveIndicators:   snap.PositiveIndicators,
	}

	ref, _, err := s.historyCol(userID).Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("firestore AppendSnapshot: %w", err)
	}
	return domain.SnapshotID(ref.ID), nil
}

func (s *Store) ReadRecent(ctx context.Context, userID domain.UserID, since time.Time) ([]domain.MentalStateSnapshot, error) {
	iter := s.historyCol(userID).
		Where("timestamp", ">=", since).
		OrderBy("timestamp", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var out []domain.MentalStateSnapshot
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore ReadRecent: %w", err)
		}

		var doc snapshotDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode snapshotDoc: %w", err)
		}

		out = append(out, domain.MentalStateSnapshot{
			ID:                   domain.SnapshotID(snap.Ref.ID),
			UserID:               userID,
			Timestamp:            doc.Timestamp,
			OverallScore:         doc.OverallScore,
			DepressionIndicators: doc.DepressionIndicators,
			AnxietyIndicators:    doc.AnxietyIndicators,
			StressIndicators:     doc.StressIndicators,
			EnergyLevel:          doc.EnergyLevel,
			MotivationLevel:      doc.MotivationLevel,
			MoodIndicators:       doc.MoodIndicators,
			SocialConnection:     doc.SocialConnection,
			CopingEffectiveness:  doc.CopingEffectiveness,
			StagnationIndicators: doc.StagnationIndicators,
			Trend:                domain.Trend(doc.Trend),
			Stability:            doc.Stability,
			InterventionPriority: domain.InterventionPriority(doc.InterventionPriority),
			WarningSigns:         doc.WarningSigns,
			PositiveIndicators:   doc.PositiveIndicators,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// MoodStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMood(ctx context.Context, entry *domain.MoodEntry) error {
	ref := s.moodsCol(entry.UserID).NewDoc()
	if entry.ID != "" {
		ref = s.moodsCol(entry.UserID).Doc(string(entry.ID))
	}

	_, err := ref.Set(ctx, moodDoc{
		Mood:      entry.Mood,
		Intensity: entry.Intensity,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("firestore AppendMood: %w", err)
	}
	entry.ID = domain.MoodEntryID(ref.ID)
	return nil
}

func (s *Store) ListMoodsByUser(ctx context.Context, userID domain.UserID, since time.Time) ([]*domain.MoodEntry, error) {
	iter := s.moodsCol(userID).
		Where("created_at", ">=", since).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	out := []*domain.MoodEntry{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore ListMoodsByUser: %w", err)
		}

		var doc moodDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode moodDoc: %w", err)
		}

		out = append(out, &domain.MoodEntry{
			ID:        domain.MoodEntryID(snap.Ref.ID),
			UserID:    userID,
			Mood:      doc.Mood,
			Intensity: doc.Intensity,
			Notes:     doc.Notes,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}
