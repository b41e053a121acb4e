package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/lexer"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] expression...",
		Short: "Print the tokens of an expression",
		Long:  `Tokenize breaks an expression down into numbers, operators and parentheses`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	item := driver.ArgsItem(args)

	tokens, err := lexer.Tokenize(item.Expr)
	if err != nil {
		s := current
		_ = diagfmt.Pretty(cmd.ErrOrStderr(), item.Expr, err, s.prettyOpts(true))
		return errFailed
	}

	switch strings.ToLower(format) {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
