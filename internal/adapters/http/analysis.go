package httpadapter

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/invopop/jsonschema"

	"github.com/PabloGalante/farum-support/internal/app/mood"
	"github.com/PabloGalante/farum-support/internal/app/support"
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/recommend"
	"github.com/PabloGalante/farum-support/internal/triage"
)

type textRequest struct {
	Text   string `json:"text"`
	UserID string `json:"user_id,omitempty"`
}

type trackMoodRequest struct {
	UserID    string `json:"user_id"`
	Mood      string `json:"mood"`
	Intensity int    `json:"intensity"`
	Notes     string `json:"notes"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "Text is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"assessment": s.support.Assess(r.Context(), req.Text),
		"timestamp":  time.Now().UTC(),
	})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Text == "" {
		badRequest(w, "Text is required")
		return
	}

	var scorer triage.SentimentScorer
	res := scorer.Analyze(req.Text)
	pos, neg := scorer.Counts(req.Text)

	userID := req.UserID
	if userID == "" {
		userID = string(support.AnonymousUser)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"user_id": userID,
		"analysis": map[string]any{
			"sentiment":           strings.ToLower(res.Label),
			"score":               res.Score,
			"positive_indicators": pos,
			"negative_indicators": neg,
			"text_length":         len(req.Text),
		},
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleTrackMood(w http.ResponseWriter, r *http.Request) {
	var req trackMoodRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	entry, err := s.mood.Track(r.Context(), mood.TrackInput{
		UserID:    domain.UserID(req.UserID),
		Mood:      req.Mood,
		Intensity: req.Intensity,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "Mood tracked successfully",
		"data":    entry,
	})
}

func (s *Server) handleMoodHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	days, err := intQuery(r, "days", mood.DefaultDays)
	if err != nil {
		badRequest(w, "days must be an integer")
		return
	}

	entries, err := s.mood.History(r.Context(), domain.UserID(userID), days)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"user_id":     userID,
		"moods":       entries,
		"count":       len(entries),
		"period_days": days,
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	progress, err := s.mood.Progress(r.Context(), domain.UserID(userID))
	if err != nil {
		writeError(w, err)
		return
	}

	if progress == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "success",
			"user_id":  userID,
			"message":  "No data available yet",
			"analysis": map[string]any{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"user_id":  userID,
		"analysis": progress,
	})
}

func (s *Server) handleCommunityMatch(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if len(req.Struggles) == 0 {
		badRequest(w, "struggles are required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"suggestions": s.support.MatchCommunity(req),
	})
}

// ChatResponseSchema describes the body of POST /api/chat/message.
func ChatResponseSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	return reflector.Reflect(&support.ProcessOutput{})
}

func (s *Server) handleChatSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ChatResponseSchema())
}
