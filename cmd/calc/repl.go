package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/history"
	"calc/internal/ui"
)

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Repl reads expressions line by line and prints each result.
Type "exit" or press Ctrl+D to leave. Evaluated expressions are kept in the
history file unless [repl] history = false is set in calc.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

// runOneShot evaluates the arguments as one expression.
func runOneShot(cmd *cobra.Command, args []string) error {
	s := current
	item := driver.ArgsItem(args)
	res := driver.Run(cmd.Context(), item.Expr)
	s.printTimings(cmd.ErrOrStderr(), res.Timings)

	if res.OK() {
		return diagfmt.PrettyValue(cmd.OutOrStdout(), res.Value, s.prettyOpts(false))
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	_ = diagfmt.Pretty(cmd.ErrOrStderr(), res.Input, res.Err, s.prettyOpts(true))
	return errFailed
}

func runREPL(cmd *cobra.Command) error {
	s := current
	store, err := openHistory(s.cfg.REPL.History, s.cfg.REPL.HistorySize)
	if err != nil {
		// без истории REPL всё равно работает
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: history disabled: %v\n", err)
	}

	record := func(res *driver.Result) {
		if store != nil {
			store.Add(history.NewEntry(res.Input, res.Value, res.Err))
		}
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if shouldUseTUI(s.ui, in, out) {
		opts := ui.REPLOptions{
			Ctx:       cmd.Context(),
			Prompt:    s.cfg.REPL.Prompt,
			Precision: s.precision,
			OnResult:  record,
		}
		if store != nil {
			opts.History = store.Exprs()
		}
		err = runREPLWithUI(opts, in, out)
	} else {
		err = runLineREPL(cmd, in, out, record)
	}

	if store != nil {
		if saveErr := store.Save(); saveErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to save history: %w", saveErr))
		}
	}
	return err
}

// runLineREPL is the plain prompt loop used when stdin or stdout is not a
// terminal, or with --ui=off. Lines are read in a separate goroutine so an
// interrupt ends the session while the prompt is waiting.
func runLineREPL(cmd *cobra.Command, in io.Reader, out io.Writer, record func(*driver.Result)) error {
	s := current
	ctx := cmd.Context()
	prompt := s.cfg.REPL.Prompt
	if s.quiet {
		prompt = ""
	}

	lines, readErr := scanLines(ctx, in)
	for {
		fmt.Fprint(out, prompt)

		var line string
		select {
		case <-ctx.Done():
			// прерывание: обычный выход из сессии
			if prompt != "" {
				fmt.Fprintln(out)
			}
			return nil
		case l, ok := <-lines:
			if !ok {
				if prompt != "" {
					fmt.Fprintln(out)
				}
				return <-readErr
			}
			line = strings.TrimSpace(l)
		}

		if line == "" {
			continue
		}
		if line == ui.ExitCommand {
			return nil
		}

		res := driver.Run(ctx, line)
		if ctx.Err() != nil {
			// результат отменённого вычисления не показываем и не сохраняем
			return nil
		}
		record(res)
		s.printTimings(cmd.ErrOrStderr(), res.Timings)
		if res.OK() {
			_ = diagfmt.PrettyValue(out, res.Value, s.prettyOpts(false))
			continue
		}
		_ = diagfmt.Pretty(cmd.ErrOrStderr(), res.Input, res.Err, s.prettyOpts(true))
	}
}

// scanLines feeds lines of in to the returned channel until EOF, a read
// error or ctx cancellation. The error channel receives the scanner error
// once the line channel is closed.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

func openHistory(enabled bool, limit int) (*history.Store, error) {
	if !enabled {
		return nil, nil
	}
	path, err := history.DefaultPath("calc")
	if err != nil {
		return nil, err
	}
	return history.Open(path, limit)
}
