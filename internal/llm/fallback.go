package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrProvidersExhausted = errors.New("all providers exhausted")

// Completion is the raw text answered by the first candidate that succeeded.
type Completion struct {
	Model   string
	Content string
}

// FallbackClient tries its candidates in priority order, one attempt each,
// and returns the first non-empty answer.
type FallbackClient struct {
	providers []Provider
	timeout   time.Duration
	logger    *zap.Logger
}

func NewFallbackClient(providers []Provider, timeout time.Duration, logger *zap.Logger) *FallbackClient {
	return &FallbackClient{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Models lists the candidate names in the order they are tried.
func (c *FallbackClient) Models() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

func (c *FallbackClient) Complete(ctx context.Context, prompt string) (*Completion, error) {
	for _, p := range c.providers {
		start := time.Now()
		content, err := c.attempt(ctx, p, prompt)
		if err != nil {
			c.logger.Warn("Model attempt failed",
				zap.String("model", p.Name()),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			continue
		}

		c.logger.Info("Model attempt succeeded",
			zap.String("model", p.Name()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return &Completion{Model: p.Name(), Content: content}, nil
	}

	c.logger.Error("All model candidates failed", zap.Strings("models", c.Models()))
	return nil, ErrProvidersExhausted
}

func (c *FallbackClient) attempt(ctx context.Context, p Provider, prompt string) (content string, err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.New("provider panicked")
		}
	}()

	content, err = p.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", errors.New("empty content")
	}
	return content, nil
}
