package llm

import (
	"context"
	"fmt"

	"github.com/Role1776/gigago"
)

// GigaChatProvider runs a candidate through the GigaChat SDK.
type GigaChatProvider struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	name   string
}

func NewGigaChatProvider(ctx context.Context, apiKey, scope, model string, params Params, insecureSkipVerify bool) (*GigaChatProvider, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(scope),
	}
	if insecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
	}

	client, err := gigago.NewClient(ctx, apiKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	m := client.GenerativeModel(model)
	applyGigaChatParams(m, params)

	return &GigaChatProvider{client: client, model: m, name: model}, nil
}

// applyGigaChatParams copies the shared sampling settings onto the model.
// The SDK default for MaxTokens is effectively unbounded, so a zero budget
// falls back to DefaultMaxTokens.
func applyGigaChatParams(m *gigago.GenerativeModel, params Params) {
	m.Temperature = params.Temperature
	m.MaxTokens = DefaultMaxTokens
	if params.MaxTokens > 0 {
		m.MaxTokens = int32(params.MaxTokens)
	}
}

func (p *GigaChatProvider) Name() string {
	return p.name
}

func (p *GigaChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from GigaChat")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *GigaChatProvider) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
