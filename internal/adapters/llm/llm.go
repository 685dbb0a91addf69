// Package llm adapts hosted language models to domain.TextGenerator.
package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/farum-support/internal/config"
	"github.com/PabloGalante/farum-support/internal/domain"
)

// New builds the generator selected by cfg.LLM.Provider.
func New(ctx context.Context, cfg *config.Config) (domain.TextGenerator, error) {
	switch cfg.LLM.Provider {
	case "mock":
		return NewMockLLM(), nil
	case "vertex":
		return NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.LLM.ModelName)
	case "gemini":
		return NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.ModelName)
	case "openai":
		return NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.ModelName)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
