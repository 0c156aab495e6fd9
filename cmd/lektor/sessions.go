package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/lektorhq/lektor/config"
	"github.com/lektorhq/lektor/logging"
	"github.com/lektorhq/lektor/ollama"
	"github.com/lektorhq/lektor/prompt"
	"github.com/lektorhq/lektor/session"
	"github.com/lektorhq/lektor/transcript"
	"github.com/lektorhq/lektor/ui"
)

func (a *app) runSessions(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var list bool
	fs.BoolVar(&list, "list", false, "list all saved sessions")
	fs.BoolVar(&list, "l", false, "shorthand for --list")
	var show string
	fs.StringVar(&show, "show", "", "show the session at the given path")
	fs.StringVar(&show, "s", "", "shorthand for --show")
	var resume string
	fs.StringVar(&resume, "continue", "", "resume the session at the given path")
	fs.StringVar(&resume, "c", "", "shorthand for --continue")
	var configPath string
	fs.StringVar(&configPath, "config", "", "path to the config file")
	if err := fs.Parse(args); err != nil {
		return parseErrCode(err)
	}

	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		ui.PrintError(a.stderr, err)
		return 1
	}

	store, err := session.NewStore(cfg.OutputDir)
	if err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}

	switch {
	case list:
		return a.listSessions(store)
	case show != "":
		return a.showSession(store, show)
	case resume != "":
		return a.continueSession(ctx, cfg, store, resume)
	}

	fmt.Fprintln(a.stdout, "Use --list, --show PATH, or --continue PATH")
	return 0
}

func (a *app) listSessions(store *session.Store) int {
	paths, err := store.List()
	if err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}

	var entries []session.Entry
	for _, path := range paths {
		sess, err := store.Load(path)
		if err != nil {
			// A broken file should not hide the readable ones.
			ui.Warnf(a.stderr, "Skipping %s: %v", path, err)
			continue
		}
		entries = append(entries, session.Entry{Path: path, Session: sess})
	}

	if err := session.NewViewer().FormatList(a.stdout, entries); err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}
	return 0
}

func (a *app) showSession(store *session.Store, path string) int {
	sess, err := store.Load(path)
	if err != nil {
		a.sessionLoadError(err)
		return 1
	}
	if err := session.NewViewer().ViewSession(a.stdout, sess); err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}
	return 0
}

func (a *app) continueSession(ctx context.Context, cfg config.Config, store *session.Store, path string) int {
	prev, err := store.Load(path)
	if err != nil {
		a.sessionLoadError(err)
		return 1
	}

	tr, err := transcript.NewParser().Parse(prev.TranscriptPath)
	if err != nil {
		a.sessionLoadError(err)
		return 1
	}

	logs, err := logging.New(cfg.OutputDir, cfg.Verbose)
	if err != nil {
		ui.PrintError(a.stderr, err)
		return 1
	}
	defer logs.Close()

	fmt.Fprintf(a.stdout, "\n%s %s\n", ui.LabelStyle.Render("Continuing session from"), prev.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.stdout, "%s %s\n", ui.LabelStyle.Render("Transcript:"), prev.TranscriptPath)
	fmt.Fprintf(a.stdout, "\n%s\n", ui.LabelStyle.Render("Previous questions:"))
	_ = session.NewViewer().ViewHistory(a.stdout, prev)

	// The resumed run keeps the loaded history and summary but gets its own
	// start time, so saving creates a new file instead of rewriting history.
	sess := session.New(prev.TranscriptPath, prev.Summary)
	sess.Questions = append(sess.Questions, prev.Questions...)

	client := ollama.NewClient(ollama.ClientConfig{Host: cfg.OllamaHost})
	return a.interactive(ctx, interactiveParams{
		cfg:     cfg,
		log:     logs.Logger,
		client:  client,
		prompts: prompt.NewLoader(""),
		tr:      tr,
		sess:    sess,
	})
}

func (a *app) sessionLoadError(err error) {
	fmt.Fprintf(a.stderr, "%s %v\n", ui.ErrorStyle.Render("Error loading session:"), err)
}
