// Package testutil provides shared helpers for package tests: temp
// transcript files, test-scoped contexts, and an in-process Ollama
// stand-in.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// SampleTranscript is a minimal two-speaker lecture.
const SampleTranscript = `TEACHER:
Die Photosynthese findet in den Chloroplasten statt.

STUDENT_1:
Was entsteht dabei?

TEACHER:
Aus Kohlenstoffdioxid und Wasser entstehen Glucose und Sauerstoff.
`

// TempTranscript writes a transcript file into a fresh temp directory and
// returns its path.
func TempTranscript(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lecture.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write transcript: %v", err)
	}
	return path
}

// TestContext returns a context that is canceled when the test ends, so
// goroutines started during the test shut down with it.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// CancelableContext returns a context and its cancel function. The context
// is canceled when the test ends if the test did not cancel it earlier.
func CancelableContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}
