// Package textcal is the public entry point for embedding the event
// extraction pipeline in another application.
package textcal

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/textcal/textcal/internal/extract"
	"github.com/textcal/textcal/internal/llm"
	"github.com/textcal/textcal/pkg/event"
)

// Re-exported sentinel errors for consumers.
var (
	// ErrEmptyInput is returned when the input is blank after sanitization.
	ErrEmptyInput = extract.ErrEmptyInput
	// ErrNoEvents is returned when every detected chunk failed extraction.
	ErrNoEvents = extract.ErrNoEvents
)

// Version returns the module version consumers pulled via go get.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown)"
}

// Config holds client construction settings.
type Config struct {
	Provider string // openai, anthropic, openrouter, ollama; empty = auto-detect
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// Option configures the client.
type Option func(*Config)

// WithProvider selects the model provider.
func WithProvider(name string) Option {
	return func(c *Config) { c.Provider = name }
}

// WithAPIKey sets the provider credential.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the default model identifier.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithBaseURL points the provider at a custom endpoint.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithTimeout bounds individual model requests.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// Client runs the extraction pipeline against a configured provider.
type Client struct {
	service *extract.Service
}

// New creates a Client. With no options it auto-detects a provider from
// the standard API key environment variables, falling back to local
// Ollama.
func New(opts ...Option) (*Client, error) {
	cfg := Config{Timeout: 60 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Provider == "" {
		detected, key := llm.DetectProvider()
		cfg.Provider = detected
		if cfg.APIKey == "" {
			cfg.APIKey = key
		}
	}
	if cfg.Model == "" {
		cfg.Model = llm.GetDefaultModel(cfg.Provider)
	}

	provider, err := llm.NewProvider(cfg.Provider, llm.ProviderConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return &Client{service: extract.NewService(llm.NewGateway(provider))}, nil
}

// ExtractEvents extracts every event described by text, in input order.
func (c *Client) ExtractEvents(ctx context.Context, text string, opts event.Options) ([]event.ExtractedEventData, error) {
	return c.service.ExtractEvents(ctx, text, opts)
}

// ExtractEvent treats the whole input as one event, skipping segmentation.
func (c *Client) ExtractEvent(ctx context.Context, text string, opts event.Options) (*event.ExtractedEventData, error) {
	return c.service.ExtractEventDetails(ctx, text, opts)
}
