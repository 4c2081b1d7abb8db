package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/textcal/textcal/internal/logger"
)

// Gateway wraps a Provider with the retry/backoff loop the extraction
// pipeline relies on. Requests run near-deterministic (temperature 0.1)
// and ask for JSON-only output.
type Gateway struct {
	provider    Provider
	maxTokens   int
	temperature float64
	sleep       func(ctx context.Context, d time.Duration) error
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMaxTokens sets the response token budget.
func WithMaxTokens(n int) GatewayOption {
	return func(g *Gateway) { g.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) GatewayOption {
	return func(g *Gateway) { g.temperature = t }
}

// withSleeper substitutes the backoff sleeper, so tests run without real
// delays.
func withSleeper(fn func(ctx context.Context, d time.Duration) error) GatewayOption {
	return func(g *Gateway) { g.sleep = fn }
}

// NewGateway creates a Gateway around the given provider.
func NewGateway(p Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		provider:    p,
		maxTokens:   1500,
		temperature: 0.1,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Complete invokes the model with up to three attempts. A failed attempt is
// retried only when RetryPolicy says so; exhaustion surfaces the last
// observed error.
func (g *Gateway) Complete(ctx context.Context, system, user, model string) (string, error) {
	req := CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		JSONOnly:    true,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := g.provider.Complete(ctx, req)
		if err == nil {
			if strings.TrimSpace(resp.Content) == "" {
				err = ErrEmptyResponse
			} else {
				logger.Debug("gateway completion ok",
					"provider", g.provider.Name(),
					"attempt", attempt+1,
					"input_tokens", resp.Usage.InputTokens,
					"output_tokens", resp.Usage.OutputTokens)
				return resp.Content, nil
			}
		}
		lastErr = err
		logger.Debug("gateway attempt failed",
			"provider", g.provider.Name(),
			"attempt", attempt+1,
			"error", err)

		retry, delay := RetryPolicy(attempt, err)
		if !retry {
			break
		}
		if serr := g.sleep(ctx, delay); serr != nil {
			return "", serr
		}
	}

	if lastErr == nil {
		lastErr = ErrMaxRetries
	}
	return "", fmt.Errorf("model request failed: %w", lastErr)
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
