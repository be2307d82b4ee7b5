package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cxxtargs/internal/driver"
	"cxxtargs/internal/source"
)

// recentFailures is how many failed inputs the view lists.
const recentFailures = 5

type progressModel struct {
	title    string
	total    int
	events   <-chan driver.Event
	label    func(source.InputID) string
	spinner  spinner.Model
	prog     progress.Model
	parsed   int
	failed   int
	skipped  int
	failures []string // newest last
	width    int
	done     bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows a batch parse of
// total inputs. label names an input in the failure list.
func NewProgressModel(title string, total int, events <-chan driver.Event, label func(source.InputID) string) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		total:   total,
		events:  events,
		label:   label,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
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
		model, cmd := m.prog.Update(msg)
		m.prog = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) finished() int {
	return m.parsed + m.failed + m.skipped
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), m.total)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s  %s  %s\n",
		styleStatus(driver.StatusDone).Render(fmt.Sprintf("%d parsed", m.parsed)),
		styleStatus(driver.StatusError).Render(fmt.Sprintf("%d failed", m.failed)),
		styleStatus(driver.StatusSkipped).Render(fmt.Sprintf("%d skipped", m.skipped)),
	)

	nameWidth := max(m.width-12, 20)
	for _, name := range m.failures {
		b.WriteString("  ")
		b.WriteString(styleStatus(driver.StatusError).Render("error"))
		b.WriteString(" ")
		b.WriteString(truncate(name, nameWidth))
		b.WriteString("\n")
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

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	switch ev.Status {
	case driver.StatusDone:
		m.parsed++
	case driver.StatusSkipped:
		m.skipped++
	case driver.StatusError:
		m.failed++
		name := fmt.Sprintf("input %d", ev.Input)
		if m.label != nil {
			name = m.label(ev.Input)
		}
		m.failures = append(m.failures, name)
		if len(m.failures) > recentFailures {
			m.failures = m.failures[len(m.failures)-recentFailures:]
		}
	}
	if m.total <= 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.finished()) / float64(m.total))
}

func styleStatus(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
