package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// OpenAIClient generates text with the OpenAI Responses API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key must be set")
	}
	if model == "" {
		return nil, errors.New("openai: model must be set")
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client, model: model}, nil
}

// Generate implements domain.TextGenerator.
func (c *OpenAIClient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	items := make([]responses.ResponseInputItemUnionParam, 0, len(req.History)+1)
	for _, m := range req.History {
		role := responses.EasyInputMessageRoleUser
		if m.Author == domain.RoleAgent {
			role = responses.EasyInputMessageRoleAssistant
		}
		items = append(items, responses.ResponseInputItemParamOfMessage(m.Text, role))
	}
	items = append(items, responses.ResponseInputItemParamOfMessage(req.Prompt, responses.EasyInputMessageRoleUser))

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(int64(req.MaxTokens)),
		Instructions:    openai.String(req.System),
		Temperature:     openai.Float(float64(req.Temperature)),
		TopP:            openai.Float(float64(req.TopP)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: items,
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", classify("openai", err)
	}

	text := resp.OutputText()
	if text == "" {
		return "", classify("openai", fmt.Errorf("empty response: unavailable (status %s)", resp.Status))
	}
	return text, nil
}
