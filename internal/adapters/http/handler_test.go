package httpadapter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/PabloGalante/farum-support/internal/adapters/http"
	"github.com/PabloGalante/farum-support/internal/adapters/llm"
	"github.com/PabloGalante/farum-support/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-support/internal/app/mood"
	"github.com/PabloGalante/farum-support/internal/app/support"
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/persona"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	return setupTestServerWith(t, llm.NewMockLLM(), 10*time.Second)
}

func setupTestServerWith(t *testing.T, gen domain.TextGenerator, requestTimeout time.Duration) http.Handler {
	t.Helper()

	reg, err := persona.Default()
	require.NoError(t, err)

	cfg := persona.DefaultDispatchConfig()
	cfg.Backoff = time.Millisecond

	supportSvc := support.NewService(support.Deps{
		Sessions:   memory.NewSessionStore(),
		Messages:   memory.NewMessageStore(),
		History:    memory.NewHistoryStore(),
		Registry:   reg,
		Dispatcher: persona.NewDispatcher(gen, cfg),
	})
	moodSvc := mood.NewService(memory.NewMoodStore())

	return httpadapter.NewServer(supportSvc, moodSvc, requestTimeout)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestSendMessage(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/chat/message", map[string]any{
		"message": "I had a rough day at work",
		"user_id": "user-1",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decode(t, rr)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, support.ResponseSupport, body["response_type"])
	assert.NotEmpty(t, body["response"])
	assert.NotEmpty(t, body["session_id"])
	assert.Contains(t, body, "mental_state")
	assert.Contains(t, body, "safety_status")
}

func TestSendMessage_Empty(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/chat/message", map[string]any{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Message cannot be empty", decode(t, rr)["error"])
}

func TestSendMessage_InvalidJSON(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendMessage_Crisis(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/chat/message", map[string]any{
		"message": "I want to kill myself, nobody would miss me",
		"user_id": "user-1",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decode(t, rr)
	assert.Equal(t, support.ResponseCrisis, body["response_type"])
	assert.Equal(t, support.CrisisResponse, body["response"])
	assert.Len(t, body["immediate_resources"], 3)
}

type stalledGenerator struct{}

func (stalledGenerator) Generate(ctx context.Context, _ domain.GenerationRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestSendMessage_TimeoutKeepsSafetyStatus(t *testing.T) {
	srv := setupTestServerWith(t, stalledGenerator{}, 100*time.Millisecond)

	rr := do(t, srv, http.MethodPost, "/api/chat/message", map[string]any{
		"message": "I feel so hopeless today",
		"user_id": "user-1",
	})
	require.Equal(t, http.StatusServiceUnavailable, rr.Code, rr.Body.String())

	body := decode(t, rr)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, persona.FallbackResponse, body["response"])
	assert.Equal(t, persona.FallbackResponse, body["fallback_response"])
	assert.EqualValues(t, 6, body["crisis_level"])

	safety, ok := body["safety_status"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 6, safety["risk_level"])
	assert.Equal(t, true, safety["safety_plan_required"])
}

func TestHistoryAndSession(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/chat/message", map[string]any{
		"message": "hello there",
		"user_id": "user-1",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	sessionID := decode(t, rr)["session_id"].(string)

	rr = do(t, srv, http.MethodGet, "/api/chat/history/user-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.EqualValues(t, 2, body["count"])

	rr = do(t, srv, http.MethodGet, "/api/chat/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode(t, rr)
	assert.Len(t, body["messages"], 2)
	session := body["session"].(map[string]any)
	assert.Equal(t, sessionID, session["id"])

	rr = do(t, srv, http.MethodGet, "/api/chat/sessions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, srv, http.MethodGet, "/api/chat/history/user-1?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInsightsReviewWellness(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/chat/message", map[string]any{
		"message": "I feel anxious about my exams",
		"user_id": "user-2",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, srv, http.MethodGet, "/api/chat/insights/user-2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decode(t, rr), "insights")

	rr = do(t, srv, http.MethodPost, "/api/chat/review/user-2", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, decode(t, rr), "review")

	rr = do(t, srv, http.MethodGet, "/api/chat/wellness/user-2?available_time=10&experience=beginner", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, decode(t, rr), "plan")
}

func TestClearUser(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/chat/message", map[string]any{
		"message": "hello",
		"user_id": "user-3",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, srv, http.MethodDelete, "/api/chat/clear/user-3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.EqualValues(t, 1, body["sessions_deleted"])

	rr = do(t, srv, http.MethodGet, "/api/chat/history/user-3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 0, decode(t, rr)["count"])
}

func TestAssess(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/analysis/assess", map[string]any{
		"text": "I want to kill myself",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assessment := decode(t, rr)["assessment"].(map[string]any)
	assert.Equal(t, true, assessment["crisis_detected"])

	rr = do(t, srv, http.MethodPost, "/api/analysis/assess", map[string]any{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSentiment(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/analysis/sentiment", map[string]any{
		"text": "I am happy and feeling great",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode(t, rr)
	assert.Equal(t, "anonymous", body["user_id"])
	analysis := body["analysis"].(map[string]any)
	assert.Equal(t, "positive", analysis["sentiment"])
	assert.EqualValues(t, 2, analysis["positive_indicators"])
	assert.EqualValues(t, 0, analysis["negative_indicators"])

	rr = do(t, srv, http.MethodPost, "/api/analysis/sentiment", map[string]any{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMoodEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/analysis/progress/user-4", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "No data available yet", decode(t, rr)["message"])

	rr = do(t, srv, http.MethodPost, "/api/analysis/mood", map[string]any{
		"user_id":   "user-4",
		"mood":      "calm",
		"intensity": 6,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, srv, http.MethodPost, "/api/analysis/mood", map[string]any{
		"user_id":   "user-4",
		"mood":      "calm",
		"intensity": 11,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, srv, http.MethodGet, "/api/analysis/mood/user-4?days=7", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, 7, body["period_days"])

	rr = do(t, srv, http.MethodGet, "/api/analysis/progress/user-4", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	analysis := decode(t, rr)["analysis"].(map[string]any)
	assert.EqualValues(t, 1, analysis["total_entries"])
}

func TestCommunityMatch(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/community/match", map[string]any{
		"struggles": []string{"anxiety"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, decode(t, rr), "suggestions")

	rr = do(t, srv, http.MethodPost, "/api/community/match", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChatResponseSchema(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/schema/chat-response", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	props, ok := decode(t, rr)["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "response_type")
	assert.Contains(t, props, "mental_state")
}
