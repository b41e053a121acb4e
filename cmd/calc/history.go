package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear expressions evaluated in the REPL",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().Bool("clear", false, "remove the history file")
	cmd.Flags().IntP("limit", "n", 0, "show only the last N entries (0 = all)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

type historyEntryJSON struct {
	Expr  string    `json:"expr"`
	Value *float64  `json:"value,omitempty"`
	Text  string    `json:"text,omitempty"`
	Error string    `json:"error,omitempty"`
	Code  string    `json:"code,omitempty"`
	Kind  string    `json:"kind,omitempty"`
	At    time.Time `json:"at"`
}

func runHistory(cmd *cobra.Command, _ []string) error {
	clearAll, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return fmt.Errorf("failed to get clear flag: %w", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	path, err := history.DefaultPath("calc")
	if err != nil {
		return err
	}
	store, err := history.Open(path, 0)
	if err != nil {
		return err
	}

	if clearAll {
		n := store.Len()
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		if !current.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
		}
		return nil
	}

	entries := store.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if format == "json" {
		return renderHistoryJSON(cmd.OutOrStdout(), entries)
	}
	renderHistoryPretty(cmd.OutOrStdout(), entries, current.prettyOpts(false))
	return nil
}

func renderHistoryPretty(out io.Writer, entries []history.Entry, opts diagfmt.PrettyOpts) {
	value := color.New(color.FgGreen, color.Bold)
	failed := color.New(color.FgRed)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{value, failed, dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, e := range entries {
		stamp := dim.Sprint(e.At.Local().Format(time.DateTime))
		if e.OK() {
			fmt.Fprintf(out, "%s  %s = %s\n", stamp, e.Expr, value.Sprint(diagfmt.FormatValue(e.Value, opts.Precision)))
			continue
		}
		fmt.Fprintf(out, "%s  %s  %s\n", stamp, e.Expr, failed.Sprintf("%s: %s", e.Code.Kind(), e.Err))
	}
}

func renderHistoryJSON(out io.Writer, entries []history.Entry) error {
	payload := make([]historyEntryJSON, 0, len(entries))
	for _, e := range entries {
		item := historyEntryJSON{Expr: e.Expr, At: e.At}
		if e.OK() {
			item.Text = diagfmt.FormatValue(e.Value, -1)
			if !math.IsInf(e.Value, 0) && !math.IsNaN(e.Value) {
				v := e.Value
				item.Value = &v
			}
		} else {
			item.Error = e.Err
			item.Code = e.Code.ID()
			item.Kind = e.Code.Kind()
		}
		payload = append(payload, item)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
