// Package httpadapter exposes the support service over HTTP.
package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/PabloGalante/farum-support/internal/app/mood"
	"github.com/PabloGalante/farum-support/internal/app/support"
	"github.com/PabloGalante/farum-support/internal/domain"
)

type Server struct {
	support *support.Service
	mood    *mood.Service
}

// NewServer builds the router. requestTimeout bounds every request and
// should exceed the generation timeout times the attempt count.
func NewServer(supportSvc *support.Service, moodSvc *mood.Service, requestTimeout time.Duration) http.Handler {
	s := &Server{support: supportSvc, mood: moodSvc}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withRequestContext)
	r.Use(withLogging)
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/message", s.handleSendMessage)
			r.Get("/history/{userID}", s.handleHistory)
			r.Get("/insights/{userID}", s.handleInsights)
			r.Post("/review/{userID}", s.handleReview)
			r.Get("/wellness/{userID}", s.handleWellness)
			r.Delete("/clear/{userID}", s.handleClear)
			r.Get("/sessions/{sessionID}", s.handleGetSession)
		})

		r.Route("/analysis", func(r chi.Router) {
			r.Post("/assess", s.handleAssess)
			r.Post("/sentiment", s.handleSentiment)
			r.Post("/mood", s.handleTrackMood)
			r.Get("/mood/{userID}", s.handleMoodHistory)
			r.Get("/progress/{userID}", s.handleProgress)
		})

		r.Post("/community/match", s.handleCommunityMatch)
		r.Get("/schema/chat-response", s.handleChatSchema)
	})

	return r
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"status": "error",
		"error":  msg,
	})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"status": "error",
		"error":  msg,
	})
}

// writeError maps a service error to a status code.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		badRequest(w, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		notFound(w, err.Error())
	case errors.Is(err, domain.ErrPersistence):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  "storage unavailable",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  "internal server error",
		})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
