package llm

import (
	"context"
	"fmt"
	"io"
	"os"

	"billetera-ia/pkg/config"

	"go.uber.org/zap"
)

// BuildProviders turns the configured candidate list into providers, keeping
// the configured order. Candidates whose SDK client cannot be created are
// skipped with a warning. The returned closers must be closed on shutdown.
func BuildProviders(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]Provider, []io.Closer, error) {
	params := Params{
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	var (
		providers []Provider
		closers   []io.Closer
	)

	for _, c := range cfg.LLM.Candidates {
		apiKey := cfg.LLM.APIKey
		if c.APIKeyEnv != "" {
			apiKey = os.Getenv(c.APIKeyEnv)
		}

		switch c.Kind {
		case config.KindOpenAI, "":
			baseURL := c.BaseURL
			if baseURL == "" {
				baseURL = cfg.LLM.BaseURL
			}
			providers = append(providers, NewOpenAIProvider(baseURL, apiKey, c.Model, params, cfg.LLM.Timeout))

		case config.KindGemini:
			p, err := NewGeminiProvider(ctx, apiKey, c.Model, params)
			if err != nil {
				logger.Warn("Skipping Gemini candidate", zap.String("model", c.Model), zap.Error(err))
				continue
			}
			providers = append(providers, p)

		case config.KindGigaChat:
			if apiKey == "" {
				apiKey = cfg.GigaChat.APIKey
			}
			p, err := NewGigaChatProvider(ctx, apiKey, cfg.GigaChat.Scope, c.Model, params, cfg.GigaChat.InsecureSkipVerify)
			if err != nil {
				logger.Warn("Skipping GigaChat candidate", zap.String("model", c.Model), zap.Error(err))
				continue
			}
			providers = append(providers, p)
			closers = append(closers, p)

		default:
			return nil, nil, fmt.Errorf("unknown provider kind %q", c.Kind)
		}
	}

	if len(providers) == 0 {
		return nil, closers, fmt.Errorf("no usable LLM candidates")
	}

	logger.Info("LLM candidates ready", zap.Int("count", len(providers)))
	return providers, closers, nil
}
