package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"calc/internal/driver"
	"calc/internal/ui"
)

type batchOutcome struct {
	results []*driver.Result
	err     error
}

func runBatchWithUI(ctx context.Context, title string, items []driver.Item, jobs, precision int, out io.Writer) ([]*driver.Result, error) {
	events := make(chan driver.ItemEvent, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		res, err := driver.EvalBatchWithOptions(ctx, items, driver.BatchOptions{
			Jobs:     jobs,
			Observer: func(ev driver.ItemEvent) { events <- ev },
		})
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Expr
	}
	model := ui.NewProgressModel(title, names, precision, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c), дочитываем канал, чтобы воркеры
	// не зависли на отправке
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func runREPLWithUI(opts ui.REPLOptions, in io.Reader, out io.Writer) error {
	model := ui.NewREPLModel(opts)
	program := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out))
	_, err := program.Run()
	return err
}
