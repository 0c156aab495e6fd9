package session

import (
	"fmt"
	"io"
	"strings"
)

// Viewer renders sessions for terminal display.
type Viewer struct{}

// NewViewer creates a viewer.
func NewViewer() *Viewer {
	return &Viewer{}
}

// Entry pairs a loaded session with the file it came from.
type Entry struct {
	Path    string
	Session *Session
}

// FormatList renders the saved-sessions table: start date, transcript path,
// and question count per session.
func (v *Viewer) FormatList(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No saved sessions found.")
		return nil
	}

	fmt.Fprintln(w, "Saved Sessions")
	fmt.Fprintf(w, "%-20s %-44s %9s\n", "DATE", "TRANSCRIPT", "QUESTIONS")
	fmt.Fprintln(w, strings.Repeat("-", 75))

	for _, e := range entries {
		fmt.Fprintf(w, "%-20s %-44s %9d\n",
			e.Session.StartTime.Format("2006-01-02 15:04:05"),
			truncate(e.Session.TranscriptPath, 44),
			len(e.Session.Questions))
	}

	fmt.Fprintf(w, "\nTotal: %d sessions\n", len(entries))
	return nil
}

// ViewSession renders a full session: header, summary, and every exchange.
func (v *Viewer) ViewSession(w io.Writer, s *Session) error {
	fmt.Fprintf(w, "\nSession from %s\n", s.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Transcript: %s\n", s.TranscriptPath)

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintln(w, s.Summary)

	fmt.Fprintln(w, "\nQuestions:")
	v.writeHistory(w, s)
	return nil
}

// ViewHistory renders only the question-answer pairs, used when resuming a
// session.
func (v *Viewer) ViewHistory(w io.Writer, s *Session) error {
	v.writeHistory(w, s)
	return nil
}

func (v *Viewer) writeHistory(w io.Writer, s *Session) {
	for _, qa := range s.Questions {
		fmt.Fprintf(w, "\nQ: %s\n", qa.Question)
		fmt.Fprintf(w, "A: %s\n", qa.Answer)
	}
}

// truncate shortens a string to max length
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
