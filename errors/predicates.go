package errors

import (
	"errors"
	"strings"
)

// IsConnectionError checks if an error is connection-related.
// This includes timeouts and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrServerUnreachable) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	// Network connectivity
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		return true
	}
	// Timeout errors (consistent with WrapConnectionError)
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	return false
}

// IsModelError checks if an error is about a missing or unpullable model.
func IsModelError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrModelUnavailable)
}

// IsNotFoundError checks if an error is about a missing input file.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrFileNotFound)
}
