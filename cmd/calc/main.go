package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"calc/internal/version"
)

// errFailed означает, что ошибки уже напечатаны и нужен только код выхода 1
var errFailed = errors.New("evaluation failed")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "calc [flags] [expression...]",
		Short: "Arithmetic expression calculator",
		Long: `calc evaluates arithmetic expressions with + - * / ^, unary minus and parentheses.

With arguments it evaluates them as one expression and prints the result.
Without arguments it starts an interactive session; type "exit" to leave.
Use "--" before an expression that starts with '-', e.g. calc -- -2^2`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupSession,
		RunE:              runRoot,
	}
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Describe(false) + "\n")

	// Добавляем команды
	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newRPNCmd())
	rootCmd.AddCommand(newREPLCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "path to calc.toml (default: search upwards, then user config)")
	pf.Int("precision", -1, "digits after the decimal point, -1 for shortest")
	pf.String("ui", "auto", "interactive UI (auto|on|off)")
	pf.Int("jobs", 0, "parallel workers for batches, 0 = GOMAXPROCS")

	pf.String("trace", "", "trace output file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	return rootCmd
}

// main initializes the CLI and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	os.Exit(execute(newRootCmd(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command tree and returns the process exit code.
func execute(rootCmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeSession(err, stderr)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errFailed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runREPL(cmd)
	}
	return runOneShot(cmd, args)
}

// isTerminal проверяет, является ли поток (stdin/stdout/stderr) терминалом
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
