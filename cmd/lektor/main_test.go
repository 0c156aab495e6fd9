package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lektorhq/lektor/logging"
	"github.com/lektorhq/lektor/session"
	"github.com/lektorhq/lektor/testutil"
)

// runApp drives the command line with captured streams.
func runApp(t *testing.T, stdin io.Reader, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	var out, errOut bytes.Buffer
	a := &app{stdin: stdin, stdout: &out, stderr: &errOut}
	code = a.run(testutil.TestContext(t), args)
	return code, out.String(), errOut.String()
}

// writeConfig writes a config file pointing at the given Ollama host, with a
// test-local output directory, and returns both paths.
func writeConfig(t *testing.T, host string) (path, outputDir string) {
	t.Helper()
	dir := t.TempDir()
	outputDir = filepath.Join(dir, "outputs")
	data, err := json.Marshal(map[string]any{
		"ollama_host": host,
		"output_dir":  outputDir,
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path = filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path, outputDir
}

func TestRun_NoArgs(t *testing.T) {
	code, _, stderr := runApp(t, nil)
	if code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
	if !strings.Contains(stderr, "lektor summarize") {
		t.Errorf("stderr does not show usage:\n%s", stderr)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runApp(t, nil, "frobnicate")
	if code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
	if !strings.Contains(stderr, `unknown command "frobnicate"`) {
		t.Errorf("stderr = %q, want unknown command notice", stderr)
	}
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"help", "-h", "--help"} {
		code, stdout, _ := runApp(t, nil, arg)
		if code != 0 {
			t.Errorf("run(%q) = %d, want 0", arg, code)
		}
		if !strings.Contains(stdout, "lektor summarize") {
			t.Errorf("run(%q) stdout does not show usage:\n%s", arg, stdout)
		}
	}
}

func TestSummarize_NoArgs(t *testing.T) {
	code, _, stderr := runApp(t, nil, "summarize")
	if code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
	if !strings.Contains(stderr, "usage: lektor summarize") {
		t.Errorf("stderr = %q, want summarize usage", stderr)
	}
}

func TestSummarize_MissingTranscript(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	cfgPath, _ := writeConfig(t, "http://localhost:11434")

	code, _, stderr := runApp(t, nil, "summarize", "--config", cfgPath, filepath.Join(t.TempDir(), "nope.txt"))
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Transcript file not found!") {
		t.Errorf("stderr = %q, want file-not-found message", stderr)
	}
}

func TestSummarize_EndToEnd(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	fake := testutil.NewFakeOllama(t, "llama3.2")
	cfgPath, outputDir := writeConfig(t, fake.URL())
	trPath := testutil.TempTranscript(t, testutil.SampleTranscript)

	stdin := strings.NewReader("Wo findet die Photosynthese statt?\n")
	code, stdout, stderr := runApp(t, stdin, "summarize", "--config", cfgPath, trPath)
	if code != 0 {
		t.Fatalf("run() = %d, want 0\nstderr:\n%s", code, stderr)
	}

	for _, want := range []string{
		"Summary:",
		"Zusammenfassung:",
		"Photosynthese",
		"Fragen-Modus gestartet",
		"Antwort.",
		"Fragen-Modus beendet.",
		"Session gespeichert in:",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout does not contain %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stderr, "Generiere Zusammenfassung...") {
		t.Errorf("stderr does not show the progress label:\n%s", stderr)
	}
	if pulled := fake.Pulled(); len(pulled) != 0 {
		t.Errorf("pulled %v, want no pulls for an installed model", pulled)
	}

	prompts := fake.Prompts()
	if len(prompts) < 2 {
		t.Fatalf("got %d prompts, want summarization and answer", len(prompts))
	}
	if last := prompts[len(prompts)-1]; !strings.Contains(last, "Wo findet die Photosynthese statt?") {
		t.Errorf("answer prompt does not carry the question:\n%s", last)
	}

	if _, err := os.Stat(filepath.Join(outputDir, logging.FileName)); err != nil {
		t.Errorf("log file: %v", err)
	}
	artifacts, err := filepath.Glob(filepath.Join(outputDir, "summary_*.txt"))
	if err != nil || len(artifacts) != 1 {
		t.Errorf("summary artifacts = %v (err %v), want exactly one", artifacts, err)
	}

	store, err := session.NewStore(outputDir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	paths, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d session files, want 1", len(paths))
	}
	sess, err := store.Load(paths[0])
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(sess.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(sess.Questions))
	}
	if sess.Questions[0].Question != "Wo findet die Photosynthese statt?" {
		t.Errorf("question = %q", sess.Questions[0].Question)
	}
	if sess.Questions[0].Answer != "Antwort." {
		t.Errorf("answer = %q", sess.Questions[0].Answer)
	}
	if !strings.Contains(sess.Summary, "Zusammenfassung:") {
		t.Errorf("saved summary = %q, want the formatted summary", sess.Summary)
	}
}

func TestConfig_NoFlagsHint(t *testing.T) {
	code, stdout, _ := runApp(t, nil, "config")
	if code != 0 {
		t.Errorf("run() = %d, want 0", code)
	}
	if !strings.Contains(stdout, "Use --create to create a default config or --show to view current settings") {
		t.Errorf("stdout = %q, want the hint line", stdout)
	}
}

func TestConfig_CreateAndShow(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	code, stdout, stderr := runApp(t, nil, "config", "--create", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("create: run() = %d, want 0\nstderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "Created default configuration at:") || !strings.Contains(stdout, cfgPath) {
		t.Errorf("create: stdout = %q", stdout)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file: %v", err)
	}

	code, stdout, stderr = runApp(t, nil, "config", "--show", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("show: run() = %d, want 0\nstderr:\n%s", code, stderr)
	}
	for _, want := range []string{"Current Configuration", "Model Name", "llama3.2", "Output Directory"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show: stdout does not contain %q:\n%s", want, stdout)
		}
	}
}

func TestSessions_NoFlagsHint(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	cfgPath, _ := writeConfig(t, "http://localhost:11434")

	code, stdout, _ := runApp(t, nil, "sessions", "--config", cfgPath)
	if code != 0 {
		t.Errorf("run() = %d, want 0", code)
	}
	if !strings.Contains(stdout, "Use --list, --show PATH, or --continue PATH") {
		t.Errorf("stdout = %q, want the hint line", stdout)
	}
}

func TestSessions_ListEmpty(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	cfgPath, _ := writeConfig(t, "http://localhost:11434")

	code, stdout, stderr := runApp(t, nil, "sessions", "--list", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("run() = %d, want 0\nstderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "No saved sessions found.") {
		t.Errorf("stdout = %q, want the empty notice", stdout)
	}
}

func TestSessions_ShowMissing(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	cfgPath, outputDir := writeConfig(t, "http://localhost:11434")

	code, _, stderr := runApp(t, nil, "sessions", "--show", filepath.Join(outputDir, "sessions", "session_none.json"), "--config", cfgPath)
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error loading session:") {
		t.Errorf("stderr = %q, want session load error", stderr)
	}
}

func TestSessions_Continue(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	fake := testutil.NewFakeOllama(t, "llama3.2")
	cfgPath, outputDir := writeConfig(t, fake.URL())
	trPath := testutil.TempTranscript(t, testutil.SampleTranscript)

	prev := session.New(trPath, "Es ging um Photosynthese in Chloroplasten.")
	// A fixed past start time keeps the resumed run from reusing the
	// fixture's file name.
	prev.StartTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	prev.Record("Was ist ATP?", "Der Energieträger der Zelle.")

	store, err := session.NewStore(outputDir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	saved, err := store.Save(prev)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	stdin := strings.NewReader("Wie entsteht Glucose?\n")
	code, stdout, stderr := runApp(t, stdin, "sessions", "--continue", saved, "--config", cfgPath)
	if code != 0 {
		t.Fatalf("run() = %d, want 0\nstderr:\n%s", code, stderr)
	}

	for _, want := range []string{
		"Continuing session from",
		"2024-03-01 10:00:00",
		"Previous questions:",
		"Q: Was ist ATP?",
		"A: Der Energieträger der Zelle.",
		"Fragen-Modus gestartet",
		"Antwort.",
		"Session gespeichert in:",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout does not contain %q:\n%s", want, stdout)
		}
	}

	paths, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d session files, want the fixture and the resumed run", len(paths))
	}
	resumed, err := store.Load(paths[1])
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(resumed.Questions) != 2 {
		t.Fatalf("got %d questions, want carried-over and new", len(resumed.Questions))
	}
	if resumed.Questions[0].Question != "Was ist ATP?" {
		t.Errorf("carried question = %q", resumed.Questions[0].Question)
	}
	if resumed.Questions[1].Question != "Wie entsteht Glucose?" {
		t.Errorf("new question = %q", resumed.Questions[1].Question)
	}
}
