package persona

import (
	"context"
	"errors"
	"time"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/observability"
)

// FallbackResponse replaces the generated reply when every attempt failed.
const FallbackResponse = "I'm here to listen and support you. Could you share more about what's on your mind?"

// DispatchConfig bounds generation calls.
type DispatchConfig struct {
	Temperature float32
	MaxTokens   int32
	TopP        float32

	// Timeout applies to each attempt separately.
	Timeout     time.Duration
	MaxAttempts int
	// Backoff is multiplied by the attempt number before each retry.
	Backoff time.Duration
}

// DefaultDispatchConfig mirrors the config package defaults.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        0.9,
		Timeout:     30 * time.Second,
		MaxAttempts: 3,
		Backoff:     500 * time.Millisecond,
	}
}

// Result is the outcome of a dispatch.
type Result struct {
	Text     string
	Attempts int
	Fallback bool
}

// Dispatcher sends rendered prompts to a TextGenerator with retries.
type Dispatcher struct {
	gen domain.TextGenerator
	cfg DispatchConfig
}

func NewDispatcher(gen domain.TextGenerator, cfg DispatchConfig) *Dispatcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Dispatcher{gen: gen, cfg: cfg}
}

// Generate fills in the sampling settings and calls the generator.
// Transient failures are retried; once attempts run out, or on a permanent
// failure, the fallback text is returned with Fallback set. The only error
// returned is the caller's context error.
func (d *Dispatcher) Generate(ctx context.Context, req domain.GenerationRequest) (Result, error) {
	log := observability.LoggerFromContext(ctx)

	if req.Temperature == 0 {
		req.Temperature = d.cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = d.cfg.MaxTokens
	}
	if req.TopP == 0 {
		req.TopP = d.cfg.TopP
	}

	var lastErr error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, time.Duration(attempt-1)*d.cfg.Backoff); err != nil {
				return Result{Attempts: attempt - 1}, err
			}
		}

		text, err := d.attempt(ctx, req)
		if err == nil {
			return Result{Text: text, Attempts: attempt}, nil
		}
		if ctx.Err() != nil {
			return Result{Attempts: attempt}, ctx.Err()
		}

		lastErr = err
		if !errors.Is(err, domain.ErrTransientGeneration) {
			log.Error("generation failed permanently", "attempt", attempt, "error", err)
			return Result{Text: FallbackResponse, Attempts: attempt, Fallback: true}, nil
		}
		log.Warn("generation attempt failed", "attempt", attempt, "max_attempts", d.cfg.MaxAttempts, "error", err)
	}

	log.Error("generation attempts exhausted, using fallback", "attempts", d.cfg.MaxAttempts, "error", lastErr)
	return Result{Text: FallbackResponse, Attempts: d.cfg.MaxAttempts, Fallback: true}, nil
}

func (d *Dispatcher) attempt(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	text, err := d.gen.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", errors.Join(domain.ErrTransientGeneration, err)
		}
		return "", err
	}
	if text == "" {
		return "", errors.Join(domain.ErrTransientGeneration, errors.New("empty response"))
	}
	return text, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
