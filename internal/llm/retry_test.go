package llm

import (
	"errors"
	"testing"
	"time"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &APIError{StatusCode: 429}, true},
		{"server error", &APIError{StatusCode: 500}, true},
		{"bad gateway", &APIError{StatusCode: 502}, true},
		{"bad request", &APIError{StatusCode: 400}, false},
		{"unauthorized", &APIError{StatusCode: 401}, false},
		{"not found", &APIError{StatusCode: 404}, false},
		{"empty response", ErrEmptyResponse, true},
		{"wrapped empty response", errors.Join(errors.New("attempt"), ErrEmptyResponse), true},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryPolicy_Backoff(t *testing.T) {
	rateLimited := &APIError{StatusCode: 429}

	retry, delay := RetryPolicy(0, rateLimited)
	if !retry || delay != time.Second {
		t.Errorf("attempt 0: got (%v, %v), want (true, 1s)", retry, delay)
	}

	retry, delay = RetryPolicy(1, rateLimited)
	if !retry || delay != 2*time.Second {
		t.Errorf("attempt 1: got (%v, %v), want (true, 2s)", retry, delay)
	}

	// The last attempt never retries, regardless of the error.
	retry, _ = RetryPolicy(2, rateLimited)
	if retry {
		t.Error("attempt 2: expected no retry after the final attempt")
	}
}

func TestRetryPolicy_NonRetryableError(t *testing.T) {
	retry, delay := RetryPolicy(0, &APIError{StatusCode: 400})
	if retry || delay != 0 {
		t.Errorf("got (%v, %v), want (false, 0)", retry, delay)
	}
}
