package focus

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "studydesk/internal/modules/focus/dto"
	"studydesk/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Configure(subject string) (focusdto.StatusOutput, error)
	Reset() (focusdto.StatusOutput, error)
	Start(subject string) (focusdto.StatusOutput, error)
	Stop() (focusdto.StatusOutput, error)
	Status() focusdto.StatusOutput
	Completions() <-chan focusdto.CompletionOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg struct{}

// CompletedMsg is delivered once per finished countdown.
type CompletedMsg struct {
	Completion focusdto.CompletionOutput
}

// StatusMsg reports the outcome of a timer command for the status bar.
type StatusMsg struct {
	Text string
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	status  focusdto.StatusOutput
	subject textinput.Model
	bar     progress.Model
	history []focusdto.CompletionOutput
	width   int
	height  int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "subject"
	ti.CharLimit = 80
	ti.Prompt = "subject: "

	return Model{
		port:    port,
		status:  port.Status(),
		subject: ti,
		bar:     progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitCompletion(), tick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-8, 60)

	case tickMsg:
		m.status = m.port.Status()
		return m, tick()

	case CompletedMsg:
		m.history = append([]focusdto.CompletionOutput{msg.Completion}, m.history...)
		m.status = m.port.Status()
		text := fmt.Sprintf("focus complete: %d min of %s recorded", msg.Completion.Session.DurationMin, msg.Completion.Session.Subject)
		var err error
		switch {
		case msg.Completion.Error != "":
			err = fmt.Errorf("focus session not recorded: %s", msg.Completion.Error)
		case msg.Completion.RefreshError != "":
			text += " (refresh failed)"
		}
		return m, tea.Batch(m.waitCompletion(), report(text, err))

	case tea.KeyMsg:
		if m.subject.Focused() {
			switch msg.String() {
			case "enter":
				m.subject.Blur()
				return m, m.Start(m.subject.Value())
			case "esc":
				m.subject.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.subject, cmd = m.subject.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "e":
			return m, m.subject.Focus()
		case "enter", "s":
			return m, m.Start(m.subject.Value())
		case "x":
			return m, m.Stop()
		case "r":
			return m, m.Reset()
		}
	}
	return m, nil
}

// Editing reports whether the subject field has keyboard focus.
func (m Model) Editing() bool { return m.subject.Focused() }

// Start begins a countdown for subject, or the configured subject when empty.
func (m *Model) Start(subject string) tea.Cmd {
	subject = strings.TrimSpace(subject)
	if subject != "" {
		m.subject.SetValue(subject)
	}
	st, err := m.port.Start(subject)
	if err != nil {
		return report("", err)
	}
	m.status = st
	return report("focus started: "+st.Subject, nil)
}

func (m *Model) Stop() tea.Cmd {
	st, err := m.port.Stop()
	if err != nil {
		return report("", err)
	}
	m.status = st
	return report("focus stopped, nothing recorded", nil)
}

func (m *Model) Reset() tea.Cmd {
	st, err := m.port.Reset()
	if err != nil {
		return report("", err)
	}
	m.status = st
	return report("focus reset", nil)
}

// Running reports whether a countdown is in progress.
func (m Model) Running() bool { return m.status.State == "running" }

// Status returns the last observed timer status.
func (m Model) Status() focusdto.StatusOutput { return m.status }

func (m Model) View() string {
	st := m.status
	clock := theme.Clock.Render(formatClock(st.Remaining))

	var pct float64
	if st.DurationSecs > 0 {
		pct = 1 - float64(st.Remaining)/float64(st.DurationSecs)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus") + "  " + theme.Muted.Render(st.State) + "\n\n")
	sb.WriteString(clock + "\n\n")
	sb.WriteString(m.bar.ViewAs(pct) + "\n\n")
	if st.Subject != "" && !m.subject.Focused() {
		sb.WriteString(theme.Hot.Render(st.Subject) + "\n")
	}
	sb.WriteString(m.subject.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("e: edit subject  s/enter: start  x: stop  r: reset") + "\n")

	if len(m.history) > 0 {
		sb.WriteString("\n" + theme.Title.Render("This run") + "\n")
		for _, c := range m.history {
			line := fmt.Sprintf("%s  %-20s %3d min", c.FinishedAt.Format("15:04"), c.Session.Subject, c.Session.DurationMin)
			if c.Error != "" {
				line = theme.Bad.Render(line + "  not saved")
			}
			sb.WriteString(line + "\n")
		}
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) waitCompletion() tea.Cmd {
	ch := m.port.Completions()
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return CompletedMsg{Completion: c}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{} })
}

func report(text string, err error) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, Err: err} }
}

func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
