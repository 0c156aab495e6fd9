package query

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/lektorhq/lektor/ollama"
	"github.com/lektorhq/lektor/session"
)

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestRunInteractive(t *testing.T) {
	svc := &stubService{}
	e := newTestEngine(t, svc, lectureTranscript(), "", testEngineConfig())
	sess := session.New("lecture.txt", "")

	in := strings.NewReader("Was ist Photosynthese?\n\nWie entsteht ATP?\n")
	var out bytes.Buffer

	if err := RunInteractive(context.Background(), e, sess, in, &out); err != nil {
		t.Fatalf("RunInteractive() error = %v", err)
	}

	if len(sess.Questions) != 2 {
		t.Fatalf("recorded %d questions, want 2", len(sess.Questions))
	}
	if sess.Questions[0].Question != "Was ist Photosynthese?" {
		t.Errorf("first question = %q", sess.Questions[0].Question)
	}
	if sess.Questions[1].Question != "Wie entsteht ATP?" {
		t.Errorf("second question = %q", sess.Questions[1].Question)
	}
	for i, qa := range sess.Questions {
		if qa.Answer != "Antwort." {
			t.Errorf("answer %d = %q, want the engine answer", i, qa.Answer)
		}
		if qa.Timestamp.IsZero() {
			t.Errorf("question %d has no timestamp", i)
		}
	}

	got := out.String()
	if !strings.Contains(got, "Fragen-Modus gestartet. Drücken Sie Ctrl+C zum Beenden.") {
		t.Error("output is missing the intro line")
	}
	if !strings.Contains(got, "Stellen Sie Ihre Fragen zum Transkript:") {
		t.Error("output is missing the instruction line")
	}
	if !strings.Contains(got, "\nAntwort.\n\n") {
		t.Error("output is missing the printed answer")
	}
	if !strings.Contains(got, "Fragen-Modus beendet.") {
		t.Error("output is missing the closing line")
	}
	// One prompt per question, one for the skipped blank line, one for the
	// read that hit end of input.
	if n := strings.Count(got, "> "); n != 4 {
		t.Errorf("printed %d prompts, want 4", n)
	}
}

func TestRunInteractive_CanceledContext(t *testing.T) {
	svc := &stubService{}
	e := newTestEngine(t, svc, lectureTranscript(), "", testEngineConfig())
	sess := session.New("lecture.txt", "")

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := RunInteractive(ctx, e, sess, pr, &out); err != nil {
		t.Fatalf("RunInteractive() error = %v", err)
	}

	if len(sess.Questions) != 0 {
		t.Errorf("recorded %d questions after cancellation, want 0", len(sess.Questions))
	}
	if !strings.Contains(out.String(), "Fragen-Modus beendet.") {
		t.Error("output is missing the closing line")
	}
}

func TestRunInteractive_QueryFailureAborts(t *testing.T) {
	svc := &stubService{
		generateFunc: func(ollama.GenerateRequest) (*ollama.GenerateResponse, error) {
			return nil, errors.New("model crashed")
		},
	}
	e := newTestEngine(t, svc, lectureTranscript(), "", testEngineConfig())
	sess := session.New("lecture.txt", "")

	var out bytes.Buffer
	err := RunInteractive(context.Background(), e, sess, strings.NewReader("Wo findet die Photosynthese statt?\n"), &out)
	if err == nil {
		t.Fatal("RunInteractive() succeeded despite a failing query")
	}

	if len(sess.Questions) != 0 {
		t.Errorf("recorded %d questions, want 0", len(sess.Questions))
	}
	if strings.Contains(out.String(), "Fragen-Modus beendet.") {
		t.Error("closing line printed on abort")
	}
}

func TestRunInteractive_ReadFailure(t *testing.T) {
	svc := &stubService{}
	e := newTestEngine(t, svc, lectureTranscript(), "", testEngineConfig())
	sess := session.New("lecture.txt", "")

	var out bytes.Buffer
	err := RunInteractive(context.Background(), e, sess, failingReader{err: errors.New("tty gone")}, &out)
	if err == nil || !strings.Contains(err.Error(), "reading input") {
		t.Errorf("error = %v, want a read failure", err)
	}
}
