package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lektorhq/lektor/config"
	lekerrors "github.com/lektorhq/lektor/errors"
	"github.com/lektorhq/lektor/logging"
	"github.com/lektorhq/lektor/ollama"
	"github.com/lektorhq/lektor/prompt"
	"github.com/lektorhq/lektor/query"
	"github.com/lektorhq/lektor/session"
	"github.com/lektorhq/lektor/storage"
	"github.com/lektorhq/lektor/summary"
	"github.com/lektorhq/lektor/transcript"
	"github.com/lektorhq/lektor/ui"
)

func (a *app) runSummarize(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var configPath string
	fs.StringVar(&configPath, "config", "", "path to the config file")
	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "show detailed logs")
	fs.BoolVar(&verbose, "v", false, "shorthand for --verbose")
	if err := fs.Parse(args); err != nil {
		return parseErrCode(err)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: lektor summarize <transcript> [--config PATH] [--verbose]")
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		ui.PrintError(a.stderr, err)
		return 1
	}
	cfg.Verbose = cfg.Verbose || verbose

	logs, err := logging.New(cfg.OutputDir, cfg.Verbose)
	if err != nil {
		ui.PrintError(a.stderr, err)
		return 1
	}
	defer logs.Close()

	code := a.summarize(ctx, cfg, logs.Logger, fs.Arg(0))
	if cfg.Verbose {
		fmt.Fprintf(a.stdout, "\n%s %s\n", ui.LabelStyle.Render("Log file:"), logs.Path)
	}
	return code
}

func (a *app) summarize(ctx context.Context, cfg config.Config, log *slog.Logger, transcriptPath string) int {
	if _, err := os.Stat(transcriptPath); err != nil {
		ui.PrintError(a.stderr, lekerrors.NewFileNotFoundError(transcriptPath))
		return 1
	}

	tr, err := transcript.NewParser().Parse(transcriptPath)
	if err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}
	log.Info("transcript parsed", "path", transcriptPath, "statements", len(tr.Statements))

	client := ollama.NewClient(ollama.ClientConfig{Host: cfg.OllamaHost})
	prompts := prompt.NewLoader("")

	spin := ui.NewSpinner(a.stderr, "Generiere Zusammenfassung...")
	spin.Start()
	sum, err := summary.NewSummarizer(client, prompts, cfg.Model, log).Summarize(ctx, tr)
	spin.Stop()
	if err != nil {
		ui.PrintError(a.stderr, lekerrors.WrapConnectionError(err, cfg.OllamaHost, cfg.Model.ModelName))
		return 1
	}

	formatted := sum.Format()
	fmt.Fprintf(a.stdout, "\n%s\n", ui.LabelStyle.Render("Summary:"))
	fmt.Fprintln(a.stdout, formatted)

	// The artifact is a convenience copy; a failed write should not kill
	// the interactive session.
	if store, err := storage.NewStore(cfg.OutputDir); err != nil {
		log.Warn("opening output directory failed", "error", err)
	} else if path, err := store.SaveSummary(transcriptPath, formatted); err != nil {
		log.Warn("saving summary artifact failed", "error", err)
	} else {
		log.Info("summary artifact written", "path", path)
	}

	return a.interactive(ctx, interactiveParams{
		cfg:     cfg,
		log:     log,
		client:  client,
		prompts: prompts,
		tr:      tr,
		sess:    session.New(transcriptPath, formatted),
	})
}

// interactiveParams carries everything the interactive loop needs. The
// session's summary feeds the vector index, so resumed sessions search the
// same corpus as fresh ones.
type interactiveParams struct {
	cfg     config.Config
	log     *slog.Logger
	client  *ollama.Client
	prompts *prompt.Loader
	tr      *transcript.Transcript
	sess    *session.Session
}

func (a *app) interactive(ctx context.Context, p interactiveParams) int {
	eng, err := query.NewEngine(ctx, query.EngineParams{
		Service:    p.client,
		Transcript: p.tr,
		Summary:    p.sess.Summary,
		Config:     &p.cfg,
		Prompts:    p.prompts,
		Logger:     p.log,
	})
	if err != nil {
		ui.PrintError(a.stderr, err)
		return 1
	}

	if err := query.RunInteractive(ctx, eng, p.sess, a.stdin, a.stdout); err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}

	store, err := session.NewStore(p.cfg.OutputDir)
	if err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}
	if _, err := store.Save(p.sess); err != nil {
		ui.Errorf(a.stderr, "%v", err)
		return 1
	}
	fmt.Fprintf(a.stdout, "\n%s %s\n", ui.SuccessStyle.Render("Session gespeichert in:"), store.Dir())
	return 0
}
