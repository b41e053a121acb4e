package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/observ"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] [expression...]",
		Short: "Evaluate expressions from arguments or files",
		Long: `Eval evaluates one expression given as arguments, or every line of the
files passed with --file. Blank lines and lines starting with '#' are skipped.
Lines are evaluated in parallel (see --jobs); results keep input order.
With --watch the files are evaluated again after every change until interrupted.`,
		Args: cobra.ArbitraryArgs,
		RunE: runEval,
	}
	cmd.Flags().StringArrayP("file", "f", nil, "read expressions from file, one per line ('-' for stdin)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("tokens", false, "include tokens and postfix in json output")
	cmd.Flags().BoolP("watch", "w", false, "re-evaluate --file inputs whenever they change")
	return cmd
}

type evalRequest struct {
	files  []string
	args   []string
	format string
	tokens bool
	watch  bool
}

func runEval(cmd *cobra.Command, args []string) error {
	files, err := cmd.Flags().GetStringArray("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	withTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}

	if len(files) == 0 && len(args) == 0 {
		return fmt.Errorf("nothing to evaluate: pass an expression or --file")
	}
	if len(files) > 0 && len(args) > 0 {
		return fmt.Errorf("expression arguments and --file are mutually exclusive")
	}
	if watch && (len(files) == 0 || slices.Contains(files, "-")) {
		return fmt.Errorf("--watch needs --file with regular files")
	}

	req := evalRequest{files: files, args: args, format: format, tokens: withTokens, watch: watch}
	err = evalOnce(cmd, req)
	if !watch {
		return err
	}
	if err != nil && !errors.Is(err, errFailed) {
		return err
	}
	return watchFiles(cmd.Context(), files, cmd.ErrOrStderr(), func() error {
		return evalOnce(cmd, req)
	})
}

// evalOnce reads the inputs, evaluates them and prints the results.
func evalOnce(cmd *cobra.Command, req evalRequest) error {
	var items []driver.Item
	if len(req.args) > 0 {
		items = []driver.Item{driver.ArgsItem(req.args)}
	}
	for _, path := range req.files {
		fileItems, err := readItemsFrom(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		items = append(items, fileItems...)
	}

	s := current
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var results []*driver.Result
	var err error
	useUI := req.format == "pretty" && !req.watch && len(req.files) > 0 && len(items) > 1 &&
		!s.quiet && shouldUseTUI(s.ui, os.Stdin, out)
	if useUI {
		title := fmt.Sprintf("evaluating %d expressions", len(items))
		results, err = runBatchWithUI(ctx, title, items, s.jobs, s.precision, out)
	} else {
		results, err = driver.EvalBatch(ctx, items, s.jobs)
	}
	if err != nil {
		return err
	}

	if req.format == "json" {
		err = diagfmt.FormatResultsJSON(out, results, diagfmt.JSONOpts{
			Precision:     s.precision,
			IncludeTokens: req.tokens,
			Indent:        true,
		})
	} else {
		err = printResultsPretty(cmd, results)
	}
	if err != nil {
		return err
	}

	reports := make([]observ.Report, 0, len(results))
	failed := 0
	for _, res := range results {
		reports = append(reports, res.Timings)
		if !res.OK() {
			failed++
		}
	}
	s.printTimings(cmd.ErrOrStderr(), observ.Sum(reports...))

	if failed > 0 {
		if !s.quiet && len(results) > 1 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d expressions failed\n", failed, len(results))
		}
		return errFailed
	}
	return nil
}

// printResultsPretty пишет значения в stdout, а ошибки в stderr
func printResultsPretty(cmd *cobra.Command, results []*driver.Result) error {
	s := current
	named := len(results) > 1
	for _, res := range results {
		opts := s.prettyOpts(!res.OK())
		if named || res.Name != "<args>" {
			opts.Name = diagfmt.ResultName(res)
		}
		var err error
		if res.OK() {
			err = diagfmt.PrettyValue(cmd.OutOrStdout(), res.Value, opts)
		} else {
			err = diagfmt.Pretty(cmd.ErrOrStderr(), res.Input, res.Err, opts)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readItemsFrom(stdin io.Reader, path string) ([]driver.Item, error) {
	if path == "-" {
		return driver.ReadItems(stdin, "<stdin>")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return driver.ReadItems(f, path)
}
