package persona_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/persona"
)

// scriptedGenerator returns errs[i] on call i, then "ok".
type scriptedGenerator struct {
	mu    sync.Mutex
	errs  []error
	calls int
	last  domain.GenerationRequest
	block bool
}

func (g *scriptedGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	g.mu.Lock()
	i := g.calls
	g.calls++
	g.last = req
	g.mu.Unlock()

	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	return "ok", nil
}

func fastConfig() persona.DispatchConfig {
	cfg := persona.DefaultDispatchConfig()
	cfg.Backoff = time.Millisecond
	cfg.Timeout = 50 * time.Millisecond
	return cfg
}

var transient = fmt.Errorf("429 too many requests: %w", domain.ErrTransientGeneration)

func TestDispatcher_Success(t *testing.T) {
	gen := &scriptedGenerator{}
	d := persona.NewDispatcher(gen, fastConfig())

	res, err := d.Generate(context.Background(), domain.GenerationRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text)
	assert.Equal(t, 1, res.Attempts)
	assert.False(t, res.Fallback)

	// sampling defaults filled in
	assert.Equal(t, float32(0.7), gen.last.Temperature)
	assert.Equal(t, int32(1024), gen.last.MaxTokens)
	assert.Equal(t, float32(0.9), gen.last.TopP)
}

func TestDispatcher_RetriesTransient(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{transient, transient}}
	d := persona.NewDispatcher(gen, fastConfig())

	res, err := d.Generate(context.Background(), domain.GenerationRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, gen.calls)
}

func TestDispatcher_FallbackWhenExhausted(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{transient, transient, transient, transient}}
	d := persona.NewDispatcher(gen, fastConfig())

	res, err := d.Generate(context.Background(), domain.GenerationRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, persona.FallbackResponse, res.Text)
	assert.Equal(t, 3, gen.calls)
}

func TestDispatcher_PermanentErrorIsNotRetried(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{errors.New("400 invalid model")}}
	d := persona.NewDispatcher(gen, fastConfig())

	res, err := d.Generate(context.Background(), domain.GenerationRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, 1, gen.calls)
}

func TestDispatcher_AttemptTimeoutIsTransient(t *testing.T) {
	gen := &scriptedGenerator{block: true}
	cfg := fastConfig()
	cfg.Timeout = 5 * time.Millisecond
	cfg.MaxAttempts = 2
	d := persona.NewDispatcher(gen, cfg)

	res, err := d.Generate(context.Background(), domain.GenerationRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, 2, gen.calls)
}

func TestDispatcher_CallerCancellation(t *testing.T) {
	gen := &scriptedGenerator{block: true}
	cfg := fastConfig()
	cfg.Timeout = time.Minute
	d := persona.NewDispatcher(gen, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(5*time.Millisecond, cancel)

	_, err := d.Generate(ctx, domain.GenerationRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gen.calls)
}
