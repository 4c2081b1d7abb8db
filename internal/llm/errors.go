package llm

import (
	"errors"
	"fmt"
)

// APIError is a model backend failure carrying the HTTP status class the
// retry policy keys on.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model backend error (status %d): %s", e.StatusCode, e.Message)
}

// ConfigurationError indicates a provider cannot be constructed, typically
// because its API credential is missing.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %q not configured: %s", e.Provider, e.Reason)
}

// ErrEmptyResponse is returned when the backend answered without any
// textual content.
var ErrEmptyResponse = errors.New("empty response from model")

// ErrMaxRetries is the fallback failure when attempts are exhausted and no
// underlying error was captured.
var ErrMaxRetries = errors.New("max retries exceeded")

// Retryable reports whether err indicates a transient backend condition:
// rate limiting (429), a server-side fault (>=500), or an empty response.
func Retryable(err error) bool {
	if errors.Is(err, ErrEmptyResponse) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
