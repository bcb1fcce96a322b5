package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider runs a candidate through the Google GenAI SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
	params Params
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, params Params) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiProvider{client: client, model: model, params: params}, nil
}

func (p *GeminiProvider) Name() string {
	return p.model
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := float32(p.params.Temperature)
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(p.params.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
