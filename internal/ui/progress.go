package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"calc/internal/diagfmt"
	"calc/internal/driver"
)

// maxVisibleItems ограничивает список строк под индикатором
const maxVisibleItems = 12

type progressModel struct {
	title     string
	events    <-chan driver.ItemEvent
	spinner   spinner.Model
	prog      progress.Model
	items     []batchItem
	finished  int
	failed    int
	precision int
	width     int
	done      bool
}

type batchItem struct {
	name   string
	status string
	detail string
}

type eventMsg driver.ItemEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress.
// names[i] labels driver item i; the model quits when events is closed.
func NewProgressModel(title string, names []string, precision int, events <-chan driver.ItemEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]batchItem, len(names))
	for i, name := range names {
		items[i] = batchItem{name: name, status: "queued"}
	}
	return &progressModel{
		title:     title,
		events:    events,
		spinner:   sp,
		prog:      prog,
		items:     items,
		precision: precision,
		width:     80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.ItemEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d", m.title, m.finished, len(m.items))
	if m.failed > 0 {
		header += fmt.Sprintf(", %d failed", m.failed)
	}
	header += ")"
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := max(m.width-statusWidth-4, 20)

	for _, item := range m.visibleItems() {
		line := item.name
		if item.detail != "" {
			line += "  " + item.detail
		}
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		b.WriteString("  " + statusStyled + " " + truncate(line, nameWidth) + "\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

// visibleItems показывает элементы в работе и последние завершённые
func (m *progressModel) visibleItems() []batchItem {
	out := make([]batchItem, 0, maxVisibleItems)
	for _, item := range m.items {
		if item.status == "error" || item.status == "running" {
			out = append(out, item)
			if len(out) == maxVisibleItems {
				break
			}
		}
	}
	return out
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.ItemEvent) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	item := &m.items[ev.Index]
	switch ev.Status {
	case driver.ItemStarted:
		item.status = "running"
	case driver.ItemDone:
		m.finished++
		item.status = "done"
		if ev.Result != nil && !ev.Result.OK() {
			m.failed++
			item.status = "error"
			item.detail = ev.Result.Err.Error()
		} else if ev.Result != nil {
			item.detail = "= " + diagfmt.FormatValue(ev.Result.Value, m.precision)
		}
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "running":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
