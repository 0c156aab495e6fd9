package errors

import (
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize suggestions for the CLI.
type ErrorMessenger interface {
	// ConnectionErrorMessage returns the message and suggestion shown when
	// the Ollama server cannot be reached. host is the address that failed,
	// model is the model the run needs.
	ConnectionErrorMessage(host, model string) (message, suggestion string)

	// TimeoutErrorMessage returns the message and suggestion for timeouts.
	TimeoutErrorMessage(host string) (message, suggestion string)

	// ModelErrorMessage returns the message and suggestion shown when a model
	// is missing locally and could not be pulled.
	ModelErrorMessage(model string) (message, suggestion string)

	// FileNotFoundMessage returns the message and suggestion for a missing
	// transcript file.
	FileNotFoundMessage(path string) (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) ConnectionErrorMessage(host, model string) (string, string) {
	return fmt.Sprintf("Cannot connect to the Ollama server at %s", host),
		fmt.Sprintf("Make sure Ollama is installed and running:\n  1. Install Ollama: https://ollama.com/download\n  2. Start the server: ollama serve\n  3. Pull the required model: ollama pull %s", model)
}

func (m DefaultMessenger) TimeoutErrorMessage(host string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", host),
		"The server may be busy or still loading a model.\nTry again in a moment."
}

func (m DefaultMessenger) ModelErrorMessage(model string) (string, string) {
	return fmt.Sprintf("Model %q is not available locally and could not be pulled", model),
		fmt.Sprintf("Pull the model manually and retry:\n  ollama pull %s", model)
}

func (m DefaultMessenger) FileNotFoundMessage(path string) (string, string) {
	return "Transcript file not found!",
		fmt.Sprintf("Check the path: %s", path)
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
// host is the Ollama address that failed, model the model the run needs.
func WrapConnectionError(err error, host, model string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	// Check for connection refused
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(host, model)
		return &CLIError{
			Err:        ErrServerUnreachable,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for timeout
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(host)
		return &CLIError{
			Err:        ErrServerUnreachable,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// NewModelUnavailableError creates an error for a model that is missing and
// could not be pulled. cause is the pull failure (optional).
func NewModelUnavailableError(model string, cause error, opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.ModelErrorMessage(model)

	e := &CLIError{
		Err:        ErrModelUnavailable,
		Message:    msg,
		Suggestion: suggestion,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewFileNotFoundError creates an error for a missing transcript file.
func NewFileNotFoundError(path string, opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.FileNotFoundMessage(path)
	return &CLIError{
		Err:        ErrFileNotFound,
		Message:    msg,
		Suggestion: suggestion,
	}
}
