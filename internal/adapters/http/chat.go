package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/PabloGalante/farum-support/internal/app/support"
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/persona"
	"github.com/PabloGalante/farum-support/internal/recommend"
)

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type sendMessageRequest struct {
	Message        string         `json:"message"`
	UserID         string         `json:"user_id"`
	SessionContext map[string]any `json:"session_context,omitempty"`
}

// chatResponse is the body of POST /api/chat/message.
type chatResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`

	*support.ProcessOutput
}

// abandonedResponse still carries the safety assessment of a request whose
// reply never arrived.
type abandonedResponse struct {
	Error            string `json:"error"`
	FallbackResponse string `json:"fallback_response"`

	chatResponse
}

type sessionResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastStrategy string    `json:"last_strategy,omitempty"`
	MessageCount int       `json:"message_count"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Strategy  string    `json:"strategy,omitempty"`
	Persona   string    `json:"persona,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ─────────────────────────────────────────────
// Chat handlers
// ─────────────────────────────────────────────

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		badRequest(w, "Message cannot be empty")
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = string(support.AnonymousUser)
	}

	out, err := s.support.Process(r.Context(), support.ProcessInput{
		Message:        message,
		UserID:         domain.UserID(userID),
		SessionContext: req.SessionContext,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeAbandoned(w, userID, message, out)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Status:        "success",
		Timestamp:     time.Now().UTC(),
		UserID:        userID,
		Message:       message,
		ProcessOutput: out,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit, err := intQuery(r, "limit", support.DefaultHistoryLimit)
	if err != nil {
		badRequest(w, "limit must be an integer")
		return
	}

	msgs, err := s.support.History(r.Context(), domain.UserID(userID), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"user_id": userID,
		"history": toMessagesResponse(msgs),
		"count":   len(msgs),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	insights, err := s.support.Insights(r.Context(), domain.UserID(userID))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"user_id":   userID,
		"insights":  insights,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	review, err := s.support.ReviewProgress(r.Context(), domain.UserID(userID))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"user_id": userID,
		"review":  review,
	})
}

func (s *Server) handleWellness(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	q := r.URL.Query()

	minutes, err := intQuery(r, "available_time", 0)
	if err != nil {
		badRequest(w, "available_time must be an integer")
		return
	}

	prefs := recommend.Preferences{
		MindfulnessExperience: q.Get("experience"),
		AvailableMinutes:      minutes,
		FitnessLevel:          q.Get("fitness_level"),
		Traditions:            listQuery(r, "traditions"),
		SpiritualTypes:        listQuery(r, "spiritual_types"),
		Budget:                q.Get("budget"),
	}

	plan, err := s.support.WellnessSuggestions(r.Context(), domain.UserID(userID), prefs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"user_id": userID,
		"plan":    plan,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	res, err := s.support.ClearUser(r.Context(), domain.UserID(userID))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "success",
		"message":          "User data cleared successfully",
		"user_id":          userID,
		"crews_forgotten":  res.CrewsForgotten,
		"sessions_deleted": res.SessionsDeleted,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(chi.URLParam(r, "sessionID"))
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		badRequest(w, "limit must be an integer")
		return
	}

	session, msgs, err := s.support.SessionTimeline(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session":  toSessionResponse(session),
		"messages": toMessagesResponse(msgs),
	})
}

func writeAbandoned(w http.ResponseWriter, userID, message string, out *support.ProcessOutput) {
	if out == nil {
		out = &support.ProcessOutput{Response: persona.FallbackResponse, Fallback: true}
	}
	writeJSON(w, http.StatusServiceUnavailable, abandonedResponse{
		Error:            "request abandoned",
		FallbackResponse: persona.FallbackResponse,
		chatResponse: chatResponse{
			Status:        "error",
			Timestamp:     time.Now().UTC(),
			UserID:        userID,
			Message:       message,
			ProcessOutput: out,
		},
	})
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:           string(s.ID),
		UserID:       string(s.UserID),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		LastStrategy: string(s.LastStrategy),
		MessageCount: s.MessageCount,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		SessionID: string(m.SessionID),
		Author:    string(m.Author),
		Text:      m.Text,
		Strategy:  string(m.Strategy),
		Persona:   m.Persona,
		CreatedAt: m.CreatedAt,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func listQuery(r *http.Request, key string) []string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
