package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// GenAIClient generates text with Gemini, either through Vertex AI or the
// Gemini API.
type GenAIClient struct {
	client    *genai.Client
	modelName string
	provider  string
}

// NewVertexClient creates a TextGenerator based on Vertex AI (Gemini).
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*GenAIClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("vertex: project and location must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GenAIClient{client: client, modelName: modelName, provider: "vertex"}, nil
}

// NewGeminiClient creates a TextGenerator on the Gemini API with an API key.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GenAIClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GenAIClient{client: client, modelName: modelName, provider: "gemini"}, nil
}

// Generate implements domain.TextGenerator.
func (v *GenAIClient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	// 1) History (user / agent) as conversation
	var contents []*genai.Content
	for _, m := range req.History {
		var role genai.Role
		switch m.Author {
		case domain.RoleAgent:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	// 2) Current rendered prompt
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	// 3) Model config
	temp := req.Temperature
	topP := req.TopP

	cfg := &genai.GenerateContentConfig{
		// the system instruction is sent with the user role
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   req.MaxTokens,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", classify(v.provider, fmt.Errorf("generate content: %w", err))
	}

	text := res.Text()
	if text == "" {
		return "", classify(v.provider, errors.New("empty response: unavailable"))
	}
	return text, nil
}
