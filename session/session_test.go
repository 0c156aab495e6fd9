package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSession_Record(t *testing.T) {
	sess := New("lecture.txt", "Zusammenfassung")

	if sess.TranscriptPath != "lecture.txt" {
		t.Errorf("TranscriptPath = %q, want %q", sess.TranscriptPath, "lecture.txt")
	}
	if sess.StartTime.IsZero() {
		t.Error("StartTime should be set")
	}
	if len(sess.Questions) != 0 {
		t.Errorf("Questions = %d, want 0", len(sess.Questions))
	}

	sess.Record("Warum?", "Darum.")

	if len(sess.Questions) != 1 {
		t.Fatalf("Questions = %d, want 1", len(sess.Questions))
	}
	qa := sess.Questions[0]
	if qa.Question != "Warum?" {
		t.Errorf("Question = %q, want %q", qa.Question, "Warum?")
	}
	if qa.Answer != "Darum." {
		t.Errorf("Answer = %q, want %q", qa.Answer, "Darum.")
	}
	if qa.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	sess := New("lecture.txt", "Die Photosynthese wandelt Licht in Energie um.")
	sess.Record("Wo findet der Prozess statt?", "In den Chloroplasten.")
	sess.Record("Was entsteht dabei?", "Sauerstoff und Glukose.")

	path, err := store.Save(sess)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	wantName := "session_" + sess.StartTime.Format("20060102_150405") + ".json"
	if filepath.Base(path) != wantName {
		t.Errorf("filename = %q, want %q", filepath.Base(path), wantName)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.TranscriptPath != sess.TranscriptPath {
		t.Errorf("TranscriptPath = %q, want %q", loaded.TranscriptPath, sess.TranscriptPath)
	}
	if !loaded.StartTime.Equal(sess.StartTime) {
		t.Errorf("StartTime = %v, want %v", loaded.StartTime, sess.StartTime)
	}
	if loaded.Summary != sess.Summary {
		t.Errorf("Summary = %q, want %q", loaded.Summary, sess.Summary)
	}
	if len(loaded.Questions) != 2 {
		t.Fatalf("Questions = %d, want 2", len(loaded.Questions))
	}
	for i := range sess.Questions {
		if loaded.Questions[i].Question != sess.Questions[i].Question {
			t.Errorf("question %d = %q, want %q", i, loaded.Questions[i].Question, sess.Questions[i].Question)
		}
		if loaded.Questions[i].Answer != sess.Questions[i].Answer {
			t.Errorf("answer %d = %q, want %q", i, loaded.Questions[i].Answer, sess.Questions[i].Answer)
		}
	}
}

func TestStore_Save_Overwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	sess := New("lecture.txt", "Zusammenfassung")
	if _, err := store.Save(sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	sess.Record("Neue Frage?", "Neue Antwort.")
	path, err := store.Save(sess)
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	paths, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("List() = %d files, want 1", len(paths))
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Questions) != 1 {
		t.Errorf("Questions = %d, want 1", len(loaded.Questions))
	}
}

func TestStore_Load_NotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	_, err = store.Load(filepath.Join(store.Dir(), "session_missing.json"))
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Load() error = %v, want ErrSessionNotFound", err)
	}
}

func TestStore_Load_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "invalid JSON",
			content: "{not json",
		},
		{
			name:    "missing transcript",
			content: `{"start_time":"2024-01-15T14:30:05Z","questions":[],"summary":"s"}`,
		},
		{
			name:    "missing start_time",
			content: `{"transcript":"t.txt","questions":[],"summary":"s"}`,
		},
		{
			name:    "missing questions",
			content: `{"transcript":"t.txt","start_time":"2024-01-15T14:30:05Z","summary":"s"}`,
		},
		{
			name:    "missing summary",
			content: `{"transcript":"t.txt","start_time":"2024-01-15T14:30:05Z","questions":[]}`,
		},
		{
			name:    "mistyped questions",
			content: `{"transcript":"t.txt","start_time":"2024-01-15T14:30:05Z","questions":"oops","summary":"s"}`,
		},
	}

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(store.Dir(), fmt.Sprintf("session_broken_%d.json", i))
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			_, err := store.Load(path)
			if !errors.Is(err, ErrMalformedSession) {
				t.Errorf("Load() error = %v, want ErrMalformedSession", err)
			}
		})
	}
}

func TestStore_List(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	paths, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("List() = %d files, want 0", len(paths))
	}

	older := New("a.txt", "s")
	older.StartTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	newer := New("b.txt", "s")
	newer.StartTime = time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)

	// Save newest first to prove ordering comes from the names.
	if _, err := store.Save(newer); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Save(older); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	paths, err = store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("List() = %d files, want 2", len(paths))
	}
	if filepath.Base(paths[0]) != "session_20240115_100000.json" {
		t.Errorf("first = %q, want the older session", filepath.Base(paths[0]))
	}
}

func TestViewer_FormatList(t *testing.T) {
	viewer := NewViewer()

	var empty bytes.Buffer
	if err := viewer.FormatList(&empty, nil); err != nil {
		t.Fatalf("FormatList() error = %v", err)
	}
	if !strings.Contains(empty.String(), "No saved sessions found.") {
		t.Errorf("empty list output = %q", empty.String())
	}

	sess := New("lecture.txt", "s")
	sess.StartTime = time.Date(2024, 1, 15, 14, 30, 5, 0, time.UTC)
	sess.Record("Warum?", "Darum.")

	var buf bytes.Buffer
	err := viewer.FormatList(&buf, []Entry{{Path: "session_x.json", Session: sess}})
	if err != nil {
		t.Fatalf("FormatList() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Saved Sessions", "2024-01-15 14:30:05", "lecture.txt", "Total: 1 sessions"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestViewer_ViewSession(t *testing.T) {
	sess := New("lecture.txt", "Die Zusammenfassung.")
	sess.Record("Wo?", "Dort.")

	var buf bytes.Buffer
	if err := NewViewer().ViewSession(&buf, sess); err != nil {
		t.Fatalf("ViewSession() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Session from", "Transcript: lecture.txt", "Summary:", "Die Zusammenfassung.", "Q: Wo?", "A: Dort."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
