package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/weekcal/internal/calendar"
	"github.com/lululau/weekcal/internal/render"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

const addEventUnavailable = "adding events is not available yet"

type inputMode int

const (
	inputNone inputMode = iota
	inputDate
)

// Run starts the interactive Bubble Tea UI. notice is shown under the help
// line, e.g. where the events were loaded from.
func Run(svc *calendar.Service, clock *calendar.Clock, notice string) error {
	if svc == nil {
		svc = calendar.NewService()
	}
	if clock == nil {
		clock = svc.NewClock()
	}
	m := newModel(svc, clock, notice)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

type model struct {
	svc       *calendar.Service
	clock     *calendar.Clock
	width     int
	inputMode inputMode
	input     textinput.Model
	statusMsg string
	notice    string
}

func newModel(svc *calendar.Service, clock *calendar.Clock, notice string) model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	ti.Prompt = "> "
	return model{
		svc:    svc,
		clock:  clock,
		input:  ti,
		notice: notice,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		m.statusMsg = ""
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h", "[", "left":
			m.clock.Prev()
		case "l", "]", "right":
			m.clock.Next()
		case "w":
			m.clock.SetViewMode(calendar.ModeWeek)
		case "m":
			m.clock.SetViewMode(calendar.ModeMonth)
		case "tab":
			m.clock.Toggle()
		case ".":
			m.clock.Today()
		case "g":
			m.activateInput()
		case "a":
			m.statusMsg = addEventUnavailable
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.inputMode != inputNone {
		return m.inputView()
	}

	width := m.width
	if width <= 0 {
		width = 100
	}
	sb := strings.Builder{}
	sb.WriteString(render.Build(m.svc.View(m.clock), width).String())
	sb.WriteString("\n\n")
	sb.WriteString(render.HelpLine())
	if m.statusMsg != "" {
		sb.WriteString("\n")
		if noColorMode {
			sb.WriteString(m.statusMsg)
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Render(m.statusMsg))
		}
	}
	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(render.Notice(m.notice))
	}
	return sb.String()
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.statusMsg = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput() {
	m.inputMode = inputDate
	m.input.SetValue("")
	m.input.CursorEnd()
	m.input.Focus()
	m.statusMsg = ""
}

func (m *model) applyInput() {
	date, ok := parseJump(m.input.Value())
	if !ok {
		m.statusMsg = "expected YYYY-MM-DD or YYYY-MM"
		return
	}
	m.clock.Jump(date)
	m.statusMsg = ""
	m.inputMode = inputNone
	m.input.Blur()
}

// parseJump accepts a full canonical key or a year-month, which lands on
// the first of that month.
func parseJump(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if d, err := calendar.ParseKey(value); err == nil {
		return d, true
	}
	if d, err := time.Parse("2006-01", value); err == nil {
		first, err := calendar.ParseKey(calendar.CanonicalKey(d))
		return first, err == nil
	}
	return time.Time{}, false
}

func (m model) inputView() string {
	label := "Go to date (Enter to confirm / Esc to cancel)"
	if !noColorMode {
		label = lipgloss.NewStyle().Bold(true).Render(label)
	}
	body := label + "\n\n" + m.input.View()
	if m.statusMsg != "" {
		body += "\n" + m.statusMsg
	}
	return body
}
