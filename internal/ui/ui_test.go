package ui_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calc/internal/driver"
	"calc/internal/ui"
)

func typeLine(t *testing.T, m tea.Model, text string) (tea.Model, tea.Cmd) {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestREPL_Evaluates(t *testing.T) {
	var got []*driver.Result
	m := ui.NewREPLModel(ui.REPLOptions{
		Precision: -1,
		OnResult:  func(r *driver.Result) { got = append(got, r) },
	})

	var model tea.Model = m
	model, _ = typeLine(t, model, "2 + 3 * 4")
	model, _ = typeLine(t, model, "1 / 0")

	lines := strings.Join(m.Lines(), "\n")
	for _, want := range []string{"2 + 3 * 4", "14", "1 / 0", "division by zero"} {
		if !strings.Contains(lines, want) {
			t.Errorf("scrollback missing %q:\n%s", want, lines)
		}
	}
	if len(got) != 2 || got[0].Value != 14 || got[1].OK() {
		t.Errorf("OnResult calls = %+v", got)
	}
	if m.Input() != "" {
		t.Errorf("input not cleared: %q", m.Input())
	}
	if !strings.Contains(model.View(), "history") {
		t.Error("view has no hint line")
	}
}

func TestREPL_Exit(t *testing.T) {
	m := ui.NewREPLModel(ui.REPLOptions{Ctx: context.Background()})
	_, cmd := typeLine(t, m, "exit")
	if !isQuit(cmd) {
		t.Fatal("exit did not quit")
	}

	m = ui.NewREPLModel(ui.REPLOptions{})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !isQuit(cmd) {
		t.Fatal("esc did not quit")
	}
}

func TestREPL_EmptyLine(t *testing.T) {
	m := ui.NewREPLModel(ui.REPLOptions{})
	_, cmd := typeLine(t, m, "   ")
	if isQuit(cmd) || len(m.Lines()) != 0 {
		t.Fatalf("empty line produced output %v", m.Lines())
	}
}

func TestREPL_HistoryRecall(t *testing.T) {
	m := ui.NewREPLModel(ui.REPLOptions{History: []string{"1 + 1"}})
	typeLine(t, m, "2 * 2")

	if h := m.History(); len(h) != 2 || h[1] != "2 * 2" {
		t.Fatalf("History = %v", h)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Input() != "2 * 2" {
		t.Errorf("after up: %q", m.Input())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Input() != "1 + 1" {
		t.Errorf("after up x3: %q", m.Input())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Input() != "3" {
		t.Errorf("draft not restored: %q", m.Input())
	}
}

func TestREPL_ViewFitsWidth(t *testing.T) {
	m := ui.NewREPLModel(ui.REPLOptions{Prompt: "> "})
	var model tea.Model = m
	model, _ = model.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	model, _ = typeLine(t, model, "1 + 2 + 3 + 4 + 5 + 6 + 7 + 8")

	view := model.View()
	first := strings.SplitN(view, "\n", 2)[0]
	if w := lipgloss.Width(first); w > 20 {
		t.Errorf("scrollback line is %d cells wide: %q", w, first)
	}
	if !strings.Contains(strings.Join(m.Lines(), "\n"), "1 + 2 + 3 + 4 + 5 + 6 + 7 + 8") {
		t.Error("scrollback should keep the full expression")
	}
}
