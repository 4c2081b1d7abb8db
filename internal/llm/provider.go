// Package llm wraps text-completion model backends behind a single interface.
package llm

import (
	"context"
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    Role
	Content string
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// CompletionRequest represents a request to the model backend.
type CompletionRequest struct {
	// Model overrides the provider's configured default when non-empty.
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	// JSONOnly asks for a JSON-constrained response mode where the backend
	// supports one; otherwise the prompt alone carries the constraint.
	JSONOnly bool
}

// CompletionResponse represents the model response.
type CompletionResponse struct {
	Content      string
	FinishReason string
	Usage        Usage
	Model        string
}

// Provider is the core abstraction over model backends.
type Provider interface {
	// Complete sends a completion request and returns the raw response.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// Name returns the provider identifier.
	Name() string

	// SupportsJSONMode returns true if the provider has a native
	// JSON-constrained response mode.
	SupportsJSONMode() bool
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey  string
	BaseURL string // for OpenRouter, Ollama, or custom endpoints
	Model   string
	Timeout time.Duration
}

// Completer is the narrow surface the extraction pipeline consumes: one
// system prompt, one user message, one textual response. Gateway is the
// production implementation; tests substitute deterministic stubs.
type Completer interface {
	Complete(ctx context.Context, system, user, model string) (string, error)
}
