// Package ollama provides a typed client for a local Ollama server.
package ollama

import (
	"errors"
	"fmt"
)

// Sentinel errors for Ollama API responses.
var (
	// ErrModelNotFound indicates the requested model is not available locally.
	ErrModelNotFound = errors.New("model not found")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("bad request")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")
)

// APIError represents an error response from the Ollama server.
type APIError struct {
	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Message is the error message from the server.
	Message string

	// Endpoint is the API endpoint that was called.
	Endpoint string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("ollama API error (%d) at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap returns the underlying sentinel error based on status code.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrBadRequest
	case 404:
		return ErrModelNotFound
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsModelNotFound reports whether the error indicates a missing model.
func IsModelNotFound(err error) bool {
	return errors.Is(err, ErrModelNotFound)
}
