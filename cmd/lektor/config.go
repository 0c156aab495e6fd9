package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lektorhq/lektor/config"
	"github.com/lektorhq/lektor/ui"
)

func (a *app) runConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var create, show bool
	fs.BoolVar(&create, "create", false, "create a default config file")
	fs.BoolVar(&show, "show", false, "show the current configuration")
	var configPath string
	fs.StringVar(&configPath, "config", "", "path to the config file")
	if err := fs.Parse(args); err != nil {
		return parseErrCode(err)
	}

	switch {
	case create:
		path := configPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				ui.Errorf(a.stderr, "%v", err)
				return 1
			}
			path = p
		}
		if err := config.CreateDefault(path); err != nil {
			ui.Errorf(a.stderr, "%v", err)
			return 1
		}
		fmt.Fprintf(a.stdout, "%s %s\n", ui.SuccessStyle.Render("Created default configuration at:"), path)
		return 0

	case show:
		cfg, err := config.LoadOrCreate(configPath)
		if err != nil {
			ui.PrintError(a.stderr, err)
			return 1
		}
		printConfigTable(a.stdout, cfg)
		return 0
	}

	fmt.Fprintln(a.stdout, "Use --create to create a default config or --show to view current settings")
	return 0
}

func printConfigTable(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w, ui.LabelStyle.Render("Current Configuration"))
	fmt.Fprintln(w, strings.Repeat("-", 44))

	rows := [][2]string{
		{"Model Name", cfg.Model.ModelName},
		{"Temperature", strconv.FormatFloat(cfg.Model.Temperature, 'g', -1, 64)},
		{"Context Window", strconv.Itoa(cfg.Model.ContextWindow)},
		{"Language", cfg.Language},
		{"Output Directory", cfg.OutputDir},
		{"Verbose Logging", strconv.FormatBool(cfg.Verbose)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-20s %s\n", row[0], row[1])
	}
}
