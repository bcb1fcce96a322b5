package llm

import (
	"context"
	"testing"
	"time"

	"billetera-ia/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

func TestBuildProviders_OpenAIOrder(t *testing.T) {
	t.Setenv("TEST_GROQ_KEY", "secret")

	cfg := &config.Config{
		LLM: config.LLMConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Timeout:     time.Second,
			Temperature: 0.2,
			MaxTokens:   300,
			Candidates: []config.CandidateConfig{
				{Kind: config.KindOpenAI, Model: "first", APIKeyEnv: "TEST_GROQ_KEY"},
				{Kind: config.KindOpenAI, Model: "second", BaseURL: "http://localhost:9999/v1"},
			},
		},
	}

	providers, closers, err := BuildProviders(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildProviders failed: %v", err)
	}
	if len(closers) != 0 {
		t.Errorf("expected no closers, got %d", len(closers))
	}
	if len(providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(providers))
	}
	if providers[0].Name() != "first" || providers[1].Name() != "second" {
		t.Errorf("order not preserved: %s, %s", providers[0].Name(), providers[1].Name())
	}

	first := providers[0].(*OpenAIProvider)
	if first.apiKey != "secret" {
		t.Errorf("apiKey = %q, want value of TEST_GROQ_KEY", first.apiKey)
	}
	if first.baseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("baseURL = %q, want default", first.baseURL)
	}
	second := providers[1].(*OpenAIProvider)
	if second.baseURL != "http://localhost:9999/v1" {
		t.Errorf("baseURL = %q, want override", second.baseURL)
	}
}

func TestBuildProviders_UnknownKind(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			Candidates: []config.CandidateConfig{{Kind: "fax", Model: "x"}},
		},
	}
	if _, _, err := BuildProviders(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuildProviders_Empty(t *testing.T) {
	if _, _, err := BuildProviders(context.Background(), &config.Config{}, zap.NewNop()); err == nil {
		t.Error("expected error with no candidates")
	}
}

func TestApplyGigaChatParams(t *testing.T) {
	tests := []struct {
		name          string
		params        Params
		wantTemp      float64
		wantMaxTokens int32
	}{
		{"configured", Params{Temperature: 0.4, MaxTokens: 250}, 0.4, 250},
		{"zero budget", Params{Temperature: 0.2}, 0.2, DefaultMaxTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := (&gigago.Client{}).GenerativeModel("GigaChat")
			applyGigaChatParams(m, tt.params)

			if m.Temperature != tt.wantTemp {
				t.Errorf("Temperature = %v, want %v", m.Temperature, tt.wantTemp)
			}
			if m.MaxTokens != tt.wantMaxTokens {
				t.Errorf("MaxTokens = %d, want %d", m.MaxTokens, tt.wantMaxTokens)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}
