package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/token"
)

func newRPNCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rpn [flags] expression...",
		Aliases: []string{"postfix"},
		Short:   "Print an expression in postfix (reverse Polish) notation",
		Long: `Rpn converts an infix expression to postfix notation without evaluating it.
Unary minus is printed as "-" after its operand, e.g. -2^3 becomes "2 3 ^ -".`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRPN,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runRPN(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	item := driver.ArgsItem(args)
	res := driver.Run(cmd.Context(), item.Expr)
	current.printTimings(cmd.ErrOrStderr(), res.Timings)

	// ошибка вычисления не мешает показать постфиксную запись
	if !res.OK() && res.FailedStage < driver.StageEval {
		s := current
		_ = diagfmt.Pretty(cmd.ErrOrStderr(), res.Input, res.Err, s.prettyOpts(true))
		return errFailed
	}

	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Postfix)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token.Join(res.Postfix))
	return err
}
