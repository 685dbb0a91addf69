package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// MockLLM answers without calling any model. Used in local mode and tests.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("I hear you. You said %q. Tell me a bit more about how that makes you feel.", userMessage(req.Prompt)), nil
}

// userMessage pulls the user's words out of a rendered persona prompt.
func userMessage(prompt string) string {
	const marker = "message: "
	if i := strings.LastIndex(prompt, marker); i >= 0 {
		rest := prompt[i+len(marker):]
		if j := strings.Index(rest, "\n"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(prompt)
}
