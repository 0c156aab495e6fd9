package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Store errors.
var (
	// ErrSessionNotFound indicates the session file does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMalformedSession indicates a session file that cannot be decoded
	// or is missing required fields.
	ErrMalformedSession = errors.New("malformed session file")
)

// Store persists sessions as JSON files in a sessions directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at <outputDir>/sessions, creating the
// directory if needed.
func NewStore(outputDir string) (*Store, error) {
	dir := filepath.Join(outputDir, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sessions directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the sessions directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the session to session_<timestamp>.json, named from its start
// time. Saving the same session again overwrites the earlier file.
func (s *Store) Save(sess *Session) (string, error) {
	name := fmt.Sprintf("session_%s.json", sess.StartTime.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing session: %w", err)
	}
	return path, nil
}

// Load reads a session file. Every required field must be present and
// well-typed, otherwise the error wraps ErrMalformedSession.
func (s *Store) Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, path)
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	// Pointer fields distinguish absent keys from zero values.
	var raw struct {
		Transcript *string    `json:"transcript"`
		StartTime  *time.Time `json:"start_time"`
		Questions  *[]QA      `json:"questions"`
		Summary    *string    `json:"summary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	switch {
	case raw.Transcript == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedSession, "transcript")
	case raw.StartTime == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedSession, "start_time")
	case raw.Questions == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedSession, "questions")
	case raw.Summary == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedSession, "summary")
	}

	return &Session{
		TranscriptPath: *raw.Transcript,
		StartTime:      *raw.StartTime,
		Questions:      *raw.Questions,
		Summary:        *raw.Summary,
	}, nil
}

// List returns the paths of all saved session files, oldest first. The
// timestamped names make lexical order chronological.
func (s *Store) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "session_*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
