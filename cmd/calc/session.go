package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"calc/internal/config"
	"calc/internal/diagfmt"
	"calc/internal/observ"
	"calc/internal/trace"
)

// session holds settings resolved from calc.toml and command-line flags for
// one command invocation.
type session struct {
	cfg       config.Config
	color     bool // цвет для stdout
	colorErr  bool // цвет для stderr
	ui        uiMode
	precision int
	jobs      int
	quiet     bool
	timings   bool

	tracer  trace.Tracer
	cleanup []func()
}

var current *session

// setupSession loads the config, applies flag overrides and starts tracing
// and profiling. It runs before every command.
func setupSession(cmd *cobra.Command, _ []string) error {
	closeSession(nil, io.Discard)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := &session{cfg: cfg}
	current = s

	flags := cmd.Root().PersistentFlags()

	colorMode := cfg.Output.Color
	if flags.Changed("color") {
		colorMode, _ = flags.GetString("color")
	}
	switch colorMode {
	case "on":
		s.color, s.colorErr = true, true
	case "off":
	case "auto":
		s.color = isTerminal(cmd.OutOrStdout())
		s.colorErr = isTerminal(cmd.ErrOrStderr())
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	uiValue := cfg.REPL.UI
	if flags.Changed("ui") {
		uiValue, _ = flags.GetString("ui")
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return err
	}

	s.precision = cfg.Output.Precision
	if flags.Changed("precision") {
		s.precision, _ = flags.GetInt("precision")
		if s.precision < -1 || s.precision > 17 {
			return fmt.Errorf("invalid --precision %d (expected -1..17)", s.precision)
		}
	}

	s.jobs = cfg.Batch.Jobs
	if flags.Changed("jobs") {
		s.jobs, _ = flags.GetInt("jobs")
	}

	s.quiet, _ = flags.GetBool("quiet")
	s.timings, _ = flags.GetBool("timings")

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	s.cleanup = append(s.cleanup, stopProfiling)

	tracer, stopTracing, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		closeSession(err, io.Discard)
		return err
	}
	s.tracer = tracer
	s.cleanup = append(s.cleanup, stopTracing)
	return nil
}

// closeSession runs cleanups in reverse order. On failure the trace ring,
// if any, is dumped to w.
func closeSession(runErr error, w io.Writer) {
	s := current
	if s == nil {
		return
	}
	current = nil

	if runErr != nil && s.tracer != nil {
		if ring, ok := trace.Ring(s.tracer); ok && ring.Len() > 0 {
			fmt.Fprintln(w, "trace: last events before failure:")
			if err := ring.Dump(w, trace.FormatText); err != nil {
				fmt.Fprintf(w, "trace: dump error: %v\n", err)
			}
		}
	}
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	return config.Discover(wd)
}

// prettyOpts returns diagnostic options for stdout (or stderr with toErr).
func (s *session) prettyOpts(toErr bool) diagfmt.PrettyOpts {
	opts := diagfmt.PrettyOpts{Color: s.color, Precision: s.precision}
	if toErr {
		opts.Color = s.colorErr
	}
	return opts
}

// printTimings выводит отчёт таймера в stderr, если включён --timings
func (s *session) printTimings(w io.Writer, report observ.Report) {
	if s == nil || !s.timings || len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(w, report.Summary())
}
