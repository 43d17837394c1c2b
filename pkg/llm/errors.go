package llm

import (
	"fmt"

	cerr "github.com/cockroachdb/errors"
)

// AuthError means the provider rejected the API key.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Body)
}

// RateLimitError means the provider answered 429.
type RateLimitError struct {
	Body string
}

func (e *RateLimitError) Error() string {
	return "rate limited by model provider: " + e.Body
}

// APIError is any other non-200 answer.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// ErrEmptyResponse is returned when the provider answers without content.
var ErrEmptyResponse = cerr.New("no content in model response")

func IsAuthError(err error) bool {
	var target *AuthError
	return cerr.As(err, &target)
}

func IsRateLimitError(err error) bool {
	var target *RateLimitError
	return cerr.As(err, &target)
}
