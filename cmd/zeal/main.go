package main

import (
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	"tractor.dev/toolkit-go/engine"
	"tractor.dev/toolkit-go/engine/cli"
	"tractor.dev/zealboot/internal/slogger"
)

func main() {
	engine.Run(Main{})
}

type Main struct{}

func (m *Main) InitializeCLI(root *cli.Command) {
	root.Usage = "zeal"
	root.AddCommand(serveCmd())
	root.AddCommand(stageCmd())
}

type logFlags struct {
	verbose bool
	filter  string
}

func (f *logFlags) register(cmd *cli.Command) {
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Log debug output")
	cmd.Flags().StringVar(&f.filter, "log-filter", "", "Only log records with an attribute matching one of these comma separated globs")
}

func (f *logFlags) use() {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	var include []string
	for _, p := range strings.Split(f.filter, ",") {
		if p = strings.TrimSpace(p); p != "" {
			include = append(include, p)
		}
	}
	slogger.UseWithOptions(slogger.HandlerOptions{
		Level:   level,
		Include: include,
		Color:   term.IsTerminal(int(os.Stdout.Fd())),
	})
}

func fatal(err error) {
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
