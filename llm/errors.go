package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Client.Send
var (
	// ErrMissingAPIKey is returned before any network activity when no
	// credential is configured
	ErrMissingAPIKey = errors.New("no API key configured")

	// ErrCanceled is returned when a send was superseded or canceled.
	// Callers should suppress it rather than show it to the user.
	ErrCanceled = errors.New("request canceled")

	// ErrInvalidResponse is returned when the transport fails to produce
	// a usable HTTP response
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError represents a non-200 response from the completion endpoint
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}
