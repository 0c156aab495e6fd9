package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrServerUnreachable indicates the local Ollama server cannot be reached.
	ErrServerUnreachable = errors.New("ollama server unreachable")

	// ErrModelUnavailable indicates the requested model is not installed and
	// could not be pulled.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrFileNotFound indicates a required input file does not exist.
	ErrFileNotFound = errors.New("file not found")
)
