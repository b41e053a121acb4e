package ui

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	ansitrunc "github.com/muesli/reflow/truncate"

	"calc/internal/diagfmt"
	"calc/internal/driver"
)

// ExitCommand завершает REPL
const ExitCommand = "exit"

// REPLOptions configures NewREPLModel.
type REPLOptions struct {
	Ctx       context.Context
	Prompt    string
	Precision int
	// History holds earlier expressions for Up/Down recall, oldest first.
	History []string
	// OnResult is called after each evaluated line.
	OnResult func(*driver.Result)
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// REPLModel is an interactive calculator: a prompt, a scrollback of
// results and history recall.
type REPLModel struct {
	opts    REPLOptions
	input   textinput.Model
	lines   []string // уже отрисованные строки прокрутки
	history []string
	recall  int    // позиция в history при листании, len(history) = новая строка
	draft   string // ввод, сохранённый перед листанием
	width   int
	height  int
	quit    bool
}

// NewREPLModel creates a focused REPL model.
func NewREPLModel(opts REPLOptions) *REPLModel {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	in := textinput.New()
	in.Prompt = promptStyle.Render(opts.Prompt)
	in.Placeholder = "2 + 3 * 4"
	in.Focus()

	history := append([]string(nil), opts.History...)
	return &REPLModel{
		opts:    opts,
		input:   in,
		history: history,
		recall:  len(history),
		width:   80,
	}
}

func (m *REPLModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *REPLModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyUp:
			m.recallPrev()
			return m, nil
		case tea.KeyDown:
			m.recallNext()
			return m, nil
		case tea.KeyCtrlL:
			m.lines = nil
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-runewidth.StringWidth(m.opts.Prompt)-1, 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *REPLModel) submit() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.draft = ""
	if line == "" {
		m.recall = len(m.history)
		return nil
	}
	if line == ExitCommand {
		m.quit = true
		return tea.Quit
	}

	res := driver.Run(m.opts.Ctx, line)
	m.lines = append(m.lines, promptStyle.Render(m.opts.Prompt)+line)
	m.lines = append(m.lines, renderResult(res, m.opts.Precision)...)

	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	m.recall = len(m.history)

	if m.opts.OnResult != nil {
		m.opts.OnResult(res)
	}
	return nil
}

func renderResult(res *driver.Result, precision int) []string {
	if res.OK() {
		return []string{valueStyle.Render(diagfmt.FormatValue(res.Value, precision))}
	}
	var buf bytes.Buffer
	_ = diagfmt.Pretty(&buf, res.Input, res.Err, diagfmt.PrettyOpts{})
	raw := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = errorStyle.Render(l)
	}
	return out
}

func (m *REPLModel) recallPrev() {
	if m.recall == 0 {
		return
	}
	if m.recall == len(m.history) {
		m.draft = m.input.Value()
	}
	m.recall--
	m.input.SetValue(m.history[m.recall])
	m.input.CursorEnd()
}

func (m *REPLModel) recallNext() {
	if m.recall >= len(m.history) {
		return
	}
	m.recall++
	if m.recall == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[m.recall])
	}
	m.input.CursorEnd()
}

func (m *REPLModel) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder

	lines := m.lines
	// оставляем место под ввод и подсказку
	if m.height > 2 && len(lines) > m.height-2 {
		lines = lines[len(lines)-(m.height-2):]
	}
	for _, l := range lines {
		// строки уже раскрашены, обрезаем с учётом ANSI
		b.WriteString(ansitrunc.String(l, uint(max(m.width, 1))))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: evaluate  up/down: history  ctrl+l: clear  esc/exit: quit"))
	return b.String()
}

// Lines returns the scrollback as rendered so far.
func (m *REPLModel) Lines() []string { return m.lines }

// History returns the expressions available for recall.
func (m *REPLModel) History() []string { return m.history }

// Input returns the current contents of the prompt.
func (m *REPLModel) Input() string { return m.input.Value() }
