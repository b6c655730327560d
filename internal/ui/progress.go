// Package ui renders live progress of a migration or comment pass in the
// terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	pipeline "synport/internal/progress"
)

// maxRows bounds how many items are listed; finished items scroll away first.
const maxRows = 12

type progressModel struct {
	title   string
	total   int
	events  <-chan pipeline.Event
	spinner spinner.Model
	prog    progress.Model
	items   []item
	index   map[string]int
	counts  map[string]int
	width   int
	done    bool
}

type item struct {
	name   string
	status string
	stage  pipeline.Stage
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders pipeline
// progress. Items are added as their first event arrives; total is the
// expected item count used for the bar (0 when unknown).
func NewProgressModel(title string, total int, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		total:   total,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int),
		counts:  make(map[string]int),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(pipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %s", m.spinner.View(), m.title)
	if m.done {
		header = fmt.Sprintf("done: %s", m.title)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}
	for _, it := range m.visible() {
		statusStyled := styleStatus(it.status).Render(fmt.Sprintf("%12s", it.status))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, truncate(it.name, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	if line := m.countLine(); line != "" {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// visible keeps unfinished items and fills the remaining rows with the most
// recently finished ones.
func (m *progressModel) visible() []item {
	if len(m.items) <= maxRows {
		return m.items
	}
	var active, finished []item
	for _, it := range m.items {
		if isFinished(it.status) {
			finished = append(finished, it)
		} else {
			active = append(active, it)
		}
	}
	if len(active) >= maxRows {
		return active[:maxRows]
	}
	keep := maxRows - len(active)
	if keep < len(finished) {
		finished = finished[len(finished)-keep:]
	}
	return append(finished, active...)
}

func (m *progressModel) countLine() string {
	var parts []string
	for _, status := range []string{"done", "skipped", "error"} {
		if n := m.counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", status, n))
		}
	}
	return strings.Join(parts, " · ")
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

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	if ev.Item == "" {
		return nil
	}
	label := statusLabel(ev.Stage, ev.Status)
	if label == "" {
		return nil
	}
	idx, ok := m.index[ev.Item]
	if !ok {
		idx = len(m.items)
		m.items = append(m.items, item{name: ev.Item})
		m.index[ev.Item] = idx
	}
	if prev := m.items[idx].status; isFinished(prev) {
		m.counts[prev]--
	}
	m.items[idx].status = label
	m.items[idx].stage = ev.Stage
	if isFinished(label) {
		m.counts[label]++
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	total := max(m.total, len(m.items))
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, it := range m.items {
		if isFinished(it.status) {
			sum += 1.0
		} else {
			sum += progressFromStage(it.stage)
		}
	}
	return sum / float64(total)
}

func isFinished(status string) bool {
	return status == "done" || status == "skipped" || status == "error"
}

func progressFromStage(stage pipeline.Stage) float64 {
	switch stage {
	case pipeline.StageResolve:
		return 0.1
	case pipeline.StageExtract:
		return 0.3
	case pipeline.StageMerge:
		return 0.6
	case pipeline.StageWrite, pipeline.StageRewrite:
		return 0.8
	default:
		return 0.0
	}
}

func statusLabel(stage pipeline.Stage, status pipeline.Status) string {
	switch status {
	case pipeline.StatusQueued:
		return "queued"
	case pipeline.StatusDone:
		return "done"
	case pipeline.StatusSkipped:
		return "skipped"
	case pipeline.StatusError:
		return "error"
	case pipeline.StatusWorking:
		return stageLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage pipeline.Stage) string {
	switch stage {
	case pipeline.StageResolve:
		return "resolving"
	case pipeline.StageExtract:
		return "reading"
	case pipeline.StageMerge:
		return "merging"
	case pipeline.StageWrite:
		return "writing"
	case pipeline.StageRewrite:
		return "rewriting"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "skipped":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case "resolving", "reading", "merging", "writing", "rewriting":
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
	return runewidth.Truncate(value, width, "...")
}
