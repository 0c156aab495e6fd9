// Package logging configures the process logger.
//
// Every run writes to a log file inside the output directory; verbose mode
// additionally echoes log lines to stderr and lowers the level to Debug.
// Components never reach for a global logger, they receive a *slog.Logger
// from the caller.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// FileName is the log file created inside the output directory.
const FileName = "lektor.log"

// Log is an open logger backed by a file in the output directory.
type Log struct {
	// Logger carries a run_id attribute unique to this invocation.
	Logger *slog.Logger

	// Path is the location of the log file.
	Path string

	file *os.File
}

// New opens the log file under dir for appending, creating the directory if
// needed. When verbose is true, lines are echoed to stderr and the level
// drops to Debug.
func New(dir string, verbose bool) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	var w io.Writer = file
	level := slog.LevelInfo
	if verbose {
		w = io.MultiWriter(file, os.Stderr)
		level = slog.LevelDebug
	}

	runID, err := nanoid.New()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("generating run id: %w", err)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("run_id", runID)

	return &Log{Logger: logger, Path: path, file: file}, nil
}

// Close closes the underlying log file.
func (l *Log) Close() error {
	return l.file.Close()
}

// Discard returns a logger that drops everything. Handy default for tests
// and for components constructed without an explicit logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
