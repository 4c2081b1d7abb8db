package llm

import "time"

const (
	// maxAttempts bounds the total number of model invocations per request.
	maxAttempts = 3
	// baseDelay is the backoff unit; attempt n sleeps baseDelay * 2^n
	// before the next try.
	baseDelay = time.Second
)

// RetryPolicy decides, given the 0-based index of the attempt that just
// failed and its error, whether to try again and how long to sleep first.
// It is pure so the backoff math is testable apart from any I/O.
func RetryPolicy(attempt int, err error) (retry bool, delay time.Duration) {
	if attempt >= maxAttempts-1 {
		return false, 0
	}
	if !Retryable(err) {
		return false, 0
	}
	return true, baseDelay << uint(attempt)
}
