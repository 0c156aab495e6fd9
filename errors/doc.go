// Package errors provides CLI error patterns with user-friendly messaging.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Sentinel errors for common scenarios:
//   - ErrServerUnreachable: Local Ollama server cannot be reached
//   - ErrModelUnavailable: Model missing and pull failed
//   - ErrFileNotFound: Required input file does not exist
//
// Example usage:
//
//	// Wrap a failed server probe with remediation steps
//	if err := client.Ping(ctx); err != nil {
//	    return errors.WrapConnectionError(err, host, cfg.Model.ModelName)
//	}
//
//	// Check error types at the top level
//	if errors.IsConnectionError(err) {
//	    // Print remediation, exit 1
//	}
package errors
