// Command lektor summarizes German lecture transcripts with a local Ollama
// model and answers questions about them from an in-memory vector index.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lektorhq/lektor/config"
)

const usage = `lektor summarizes lecture transcripts and answers questions about them
using a local Ollama model.

Usage:
  lektor summarize <transcript> [--config PATH] [--verbose]
      Summarize a transcript and enter interactive query mode.

  lektor config [--create | --show] [--config PATH]
      Manage the configuration file.

  lektor sessions [--list | --show PATH | --continue PATH] [--config PATH]
      List, inspect, or resume saved question sessions.
`

// app binds the commands to their streams, so tests can drive them.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	// A .env in the working directory may carry OLLAMA_HOST for a
	// non-default server address.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(ctx, os.Args[1:]))
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return 2
	}

	switch args[0] {
	case "summarize":
		return a.runSummarize(ctx, args[1:])
	case "config":
		return a.runConfig(args[1:])
	case "sessions":
		return a.runSessions(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return 0
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

// parseErrCode maps a flag parse result to an exit code. Asking for help is
// not a usage error.
func parseErrCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

// loadConfig resolves the effective configuration. An explicit path must
// load cleanly; without one the default location applies, and a missing
// default file just means defaults.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	p, err := config.DefaultPath()
	if err != nil {
		return config.Default(), err
	}
	return config.LoadIfExists(p)
}
