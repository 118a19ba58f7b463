package moviesdb

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by the client wraps exactly one of
// these sentinels, so callers can classify with errors.Is.
var (
	// ErrInvalidParameter indicates a caller-supplied path or query value
	// outside the documented domain. Never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrTimeout indicates a single attempt exceeded its budget. Retried.
	ErrTimeout = errors.New("request timed out")

	// ErrRateLimited indicates the API answered 429. Retried.
	ErrRateLimited = errors.New("rate limited")

	// ErrServer indicates a 5xx response. Retried.
	ErrServer = errors.New("server error")

	// ErrAPI indicates the provider returned its error envelope
	// (for example an unknown title id). Never retried.
	ErrAPI = errors.New("api error")

	// ErrMalformedResponse indicates the body matched neither envelope
	// shape. Never retried.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRetryBudgetExhausted wraps the last retryable failure after the
	// backoff policy gave up.
	ErrRetryBudgetExhausted = errors.New("retry budget exhausted")
)

// Error is the structured failure type returned by the client. Kind is one
// of the package sentinels; Status holds the last HTTP status when known.
// Code, Message and Details carry the provider's error envelope verbatim
// when Kind is ErrAPI.
type Error struct {
	Kind     error
	Endpoint string
	Status   int
	Code     string
	Message  string
	Details  string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("moviesdb: %s: %s: %s", e.Kind, e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("moviesdb: %s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("moviesdb: %s: status %d", e.Kind, e.Status)
	default:
		return fmt.Sprintf("moviesdb: %s", e.Kind)
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// invalidParam builds an ErrInvalidParameter failure for a named parameter.
func invalidParam(name, reason string) *Error {
	return &Error{
		Kind:    ErrInvalidParameter,
		Message: fmt.Sprintf("%s: %s", name, reason),
	}
}
