package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider answered 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the reply could not be decoded into the
// requested schema. Purpose and Schema name the request it answered.
type ErrInvalidResponse struct {
	Purpose string
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("invalid %s response: %v", e.Purpose, e.Err)
	}
	return fmt.Sprintf("invalid %s response for %s: %v", e.Purpose, e.Schema, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the reply was cut off at MaxTokens
// before it formed a complete object. Retrying with the same budget
// gives the same result.
type ErrMaxTokensExceeded struct {
	Purpose   string
	MaxTokens int
	Content   json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("%s response truncated at %d tokens", e.Purpose, e.MaxTokens)
}

// errorForStatus maps a vendor HTTP status onto the package's error
// types. Unknown statuses count as unavailable so they are retried.
func errorForStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
