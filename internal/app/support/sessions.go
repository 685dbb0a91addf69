package support

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
	"github.com/PabloGalante/farum-support/internal/observability"
	"github.com/PabloGalante/farum-support/internal/recommend"
)

// Session context keys understood by Process.
const (
	sessionIDKey    = "session_id"
	wellnessKey     = "wellness_preferences"
	demographicsKey = "demographics"
	groupPrefsKey   = "group_preferences"
	recoveryKey     = "recovery_stage"
)

const (
	DefaultHistoryLimit = 50
	historySessions     = 10
)

// resolveSession picks the session a message belongs to: the one named in
// the session context, else the user's latest session if it is still
// active, else a new one. fresh reports whether the session must be created.
func (s *Service) resolveSession(
	ctx context.Context,
	userID domain.UserID,
	sessionContext map[string]any,
	now time.Time,
) (session *domain.Session, fresh bool, err error) {
	newSession := func(id domain.SessionID) *domain.Session {
		if id == "" {
			id = domain.SessionID(uuid.NewString())
		}
		return &domain.Session{ID: id, UserID: userID, CreatedAt: now, UpdatedAt: now}
	}

	if id, ok := sessionContext[sessionIDKey].(string); ok && id != "" {
		sess, err := s.sessions.GetSession(ctx, domain.SessionID(id))
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			return newSession(domain.SessionID(id)), true, nil
		case err != nil:
			return newSession(""), true, err
		case sess.UserID == userID && s.active(sess, now):
			return sess, false, nil
		default:
			return newSession(""), true, nil
		}
	}

	recent, err := s.sessions.ListSessionsByUser(ctx, userID, 1)
	if err != nil {
		return newSession(""), true, err
	}
	if len(recent) > 0 && s.active(recent[0], now) {
		return recent[0], false, nil
	}
	return newSession(""), true, nil
}

func (s *Service) active(sess *domain.Session, now time.Time) bool {
	return now.Sub(sess.UpdatedAt) < s.sessionTimeout
}

// History returns the user's latest conversation messages, oldest first.
func (s *Service) History(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	log := observability.LoggerFromContext(ctx).With("user_id", userID, "limit", limit)

	sessions, err := s.sessions.ListSessionsByUser(ctx, userID, historySessions)
	if err != nil {
		log.Error("failed to list sessions", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	out := []*domain.Message{}
	for _, sess := range sessions {
		msgs, err := s.messages.GetMessagesBySession(ctx, sess.ID, limit)
		if err != nil {
			log.Error("failed to get messages", "session_id", sess.ID, "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		out = append(out, msgs...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[len(out)-limit:]
	}

	log.Info("fetched chat history", "message_count", len(out))
	return out, nil
}

// SessionTimeline returns a session and its last limit messages.
func (s *Service) SessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"limit", limit,
	)

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return nil, nil, err
	}

	msgs, err := s.messages.GetMessagesBySession(ctx, sessionID, limit)
	if err != nil {
		log.Error("failed to get messages", "error", err)
		return nil, nil, err
	}

	log.Info("fetched session timeline", "message_count", len(msgs))

	return session, msgs, nil
}

// decodeContext converts sessionContext[key] into dst through JSON. A
// missing or malformed value leaves dst untouched.
func decodeContext(sessionContext map[string]any, key string, dst any) {
	v, ok := sessionContext[key]
	if !ok {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

func wellnessPreferences(sessionContext map[string]any) recommend.Preferences {
	var prefs recommend.Preferences
	decodeContext(sessionContext, wellnessKey, &prefs)
	return prefs
}

func communityRequest(sessionContext map[string]any, snap domain.MentalStateSnapshot, dominantEmotion string) recommend.Request {
	req := recommend.Request{
		Struggles: mentalstate.CurrentStruggles(snap),
		Mood:      recommend.MoodFromEmotion(dominantEmotion),
	}
	decodeContext(sessionContext, demographicsKey, &req.Demographics)
	decodeContext(sessionContext, groupPrefsKey, &req.Preferences)
	if stage, ok := sessionContext[recoveryKey].(string); ok {
		req.RecoveryStage = stage
	}
	return req
}
