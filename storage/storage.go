// Package storage writes timestamped artifacts to the output directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lektorhq/lektor/session"
)

// Store writes summary and conversation artifacts.
type Store struct {
	dir string
}

// NewStore creates a store rooted at outputDir, creating the directory if
// needed.
func NewStore(outputDir string) (*Store, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Store{dir: outputDir}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveSummary writes the formatted summary to summary_<timestamp>.txt with a
// header naming the source transcript. Returns the artifact path.
func (s *Store) SaveSummary(transcriptPath, summary string) (string, error) {
	name := fmt.Sprintf("summary_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	var b strings.Builder
	fmt.Fprintf(&b, "Original transcript: %s\n", transcriptPath)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString(summary)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing summary artifact: %w", err)
	}
	return path, nil
}

// SaveConversation writes a question-answer history to
// conversation_<timestamp>.json. Returns the artifact path.
func (s *Store) SaveConversation(transcriptPath string, questions []session.QA) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(s.dir, fmt.Sprintf("conversation_%s.json", timestamp))

	record := struct {
		Transcript string       `json:"transcript"`
		Timestamp  string       `json:"timestamp"`
		Questions  []session.QA `json:"questions"`
	}{
		Transcript: transcriptPath,
		Timestamp:  timestamp,
		Questions:  questions,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding conversation: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing conversation artifact: %w", err)
	}
	return path, nil
}
