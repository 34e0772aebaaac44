// internal/openrouter/errors.go
package openrouter

import "fmt"

// AuthenticationError means the API key was rejected (HTTP 401). Never retried.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// AuthorizationError means the key lacks permission (HTTP 403). Never retried.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// InvalidRequestError means the request payload was rejected (HTTP 400/422).
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string { return e.Message }

// RateLimitError is surfaced when the retry budget is exhausted on HTTP 429,
// or immediately when the upstream asks for a wait longer than the cap.
// RetryAfter is the wait the upstream requested, in seconds, if known.
type RateLimitError struct {
	Message    string
	RetryAfter int
}

func (e *RateLimitError) Error() string { return e.Message }

// ServerError is an upstream 5xx that survived the retry budget.
type ServerError struct {
	Message    string
	StatusCode int
}

func (e *ServerError) Error() string { return e.Message }

// TimeoutError means the per-call timeout elapsed before a response arrived.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string { return e.Message }

// NetworkError covers transport-level failures and unclassified HTTP statuses.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string { return e.Message }

func (e *NetworkError) Unwrap() error { return e.Err }

// InvalidResponseError means the upstream answered 200 but the body did not
// match the expected shape, either at the envelope layer or in the model's
// generated JSON. Retrying is unlikely to fix a shape mismatch, so this is a
// hard failure.
type InvalidResponseError struct {
	Message string
}

func (e *InvalidResponseError) Error() string { return e.Message }

func invalidResponsef(format string, args ...any) *InvalidResponseError {
	return &InvalidResponseError{Message: fmt.Sprintf(format, args...)}
}
