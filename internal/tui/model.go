package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/keys"
	"github.com/dycw/skritter/internal/review"
	"github.com/dycw/skritter/internal/ui/layout"
	"github.com/dycw/skritter/internal/ui/theme"
)

// maxHistory is how many recent steps the monitor lists.
const maxHistory = 8

type progressMsg struct {
	label       string
	done, total int
}

type stepMsg struct {
	step review.Step
	at   time.Time
}

type quitMsg struct{}

type historyEntry struct {
	step review.Step
	at   time.Time
}

// model is the monitor's Bubble Tea model.
type model struct {
	width  int
	height int

	state   review.State
	label   string
	done    int
	total   int
	bar     progress.Model
	history []historyEntry

	bindings review.Bindings
	// source receives terminal key presses; nil when keys come from devices.
	source *events.Chan
	cancel func()
}

func newModel(bindings review.Bindings, source *events.Chan, cancel func()) model {
	if cancel == nil {
		cancel = func() {}
	}
	return model{
		state:    review.StateInit,
		label:    review.StateInit.Label(),
		bar:      progress.New(progress.WithWidth(40), progress.WithoutPercentage()),
		bindings: bindings,
		source:   source,
		cancel:   cancel,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.SetWidth(max(msg.Width-12, 10))
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, nil
		}
		if m.source != nil {
			if k, err := keys.Parse(msg.String()); err == nil {
				m.source.Push(events.Event{Key: k, Kind: events.Press, Device: "terminal"})
			}
		}
		return m, nil

	case progressMsg:
		m.label, m.done, m.total = msg.label, msg.done, msg.total
		return m, nil

	case stepMsg:
		m.state = msg.step.To
		m.label = msg.step.To.Label()
		m.done, m.total = 0, 0
		if msg.step.Action != review.ActionContinue {
			m.history = append(m.history, historyEntry(msg))
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
		}
		return m, nil

	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m model) hints() []layout.KeyHint {
	b := m.bindings
	toggle := "Pause"
	if m.state.Paused() {
		toggle = "Resume"
	}
	return []layout.KeyHint{
		{Key: b.TogglePause.String(), Description: toggle},
		{Key: b.FailCurrent.String(), Description: "Fail current"},
		{Key: b.FailPrevious.String(), Description: "Fail previous"},
		{Key: b.ShutDown.String(), Description: "Quit"},
	}
}

func (m model) content() string {
	var sb strings.Builder

	labelStyle := lipgloss.NewStyle().
		Foreground(theme.StateColor(m.state.Label())).
		Bold(true)
	sb.WriteString("\n  " + labelStyle.Render(m.label) + "\n\n")
	sb.WriteString("  " + m.bar.ViewAs(m.percent()))
	if m.total > 0 {
		sb.WriteString(theme.Hint.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	}
	sb.WriteString("\n\n")

	if len(m.history) == 0 {
		sb.WriteString("  " + theme.Hint.Render("Waiting for the first step...") + "\n")
		return sb.String()
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		e := m.history[i]
		line := fmt.Sprintf("%s  %-16s %s → %s",
			e.at.Format("15:04:05"), e.step.Action, e.step.From.Label(), e.step.To.Label())
		if e.step.Key != "" {
			line += fmt.Sprintf(" [%s]", e.step.Key)
		}
		sb.WriteString("  " + theme.Body.Render(line) + "\n")
	}
	return sb.String()
}

func (m model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader("Review monitor", m.state.Label(), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)
	return layout.RenderFrame(header, m.content(), footer, m.width, m.height)
}
