package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/app/support"
	"github.com/PabloGalante/farum-support/internal/config"
	"github.com/PabloGalante/farum-support/internal/domain"
)

func TestAssessCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"assess", "I", "want", "to", "kill", "myself"})

	require.NoError(t, cmd.Execute())

	var res support.Assessment
	require.NoError(t, json.Unmarshal(out.Bytes(), &res), out.String())
	assert.True(t, res.CrisisDetected)
	assert.Equal(t, domain.StrategyCrisisIntervention, res.Strategy)
	assert.Equal(t, 10, res.Analysis.Crisis.RiskLevel)
}

func TestAssessCommandRequiresText(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"assess"})

	assert.Error(t, cmd.Execute())
}

func TestBuildHandler(t *testing.T) {
	tests := []struct {
		name    string
		backend string
	}{
		{"memory", "memory"},
		{"sqlite", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.LLM.Provider = "mock"
			cfg.Storage.Backend = tt.backend
			cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "farum.db")

			h, closeStores, err := buildHandler(context.Background(), cfg)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, closeStores()) })

			req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
				strings.NewReader(`{"message":"I had a long day","user_id":"cli-user"}`))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			rr = httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chat/history/cli-user", nil))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"count":2`)
		})
	}
}

func TestBuildHandlerRejectsUnknownSelections(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "carrier-pigeon"
	_, _, err := buildHandler(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown llm provider")

	cfg = config.Default()
	cfg.Storage.Backend = "tape"
	_, _, err = buildHandler(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestRequestTimeoutCoversAttempts(t *testing.T) {
	cfg := config.Default()
	got := requestTimeout(dispatchConfig(cfg))
	// 3 x 30s + (1+2) x 500ms + 5s
	assert.Equal(t, "1m36.5s", got.String())
}
