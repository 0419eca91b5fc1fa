package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chatdto "studydesk/internal/modules/chat/dto"
	"studydesk/internal/ui/components"
	"studydesk/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	SessionID() string
	Send(ctx context.Context, message string) (chatdto.TurnOutput, error)
	Transcript() []chatdto.TurnOutput
	NewSession() string
}

// ─── messages ────────────────────────────────────────────────────────────────

// RepliedMsg is delivered when one send settles, successfully or not.
type RepliedMsg struct {
	Message string
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is a transcript viewport over a single-line composer. Several
// messages may be in flight at once; the transcript is re-read from the
// port on every reply so it always shows issue order.
type Model struct {
	port       Port
	input      textinput.Model
	transcript viewport.Model
	turns      []chatdto.TurnOutput
	inFlight   []string
	lastErr    string
	width      int
	height     int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "ask the tutor…"
	ti.Prompt = "› "
	ti.CharLimit = 4000

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(0, 1)

	return Model{port: port, input: ti, transcript: vp, turns: port.Transcript()}
}

func (m Model) Init() tea.Cmd { return nil }

// Focus gives the composer keyboard focus.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Blur releases keyboard focus.
func (m *Model) Blur() { m.input.Blur() }

// Editing reports whether the composer has keyboard focus.
func (m Model) Editing() bool { return m.input.Focused() }

// NewSession starts over with a fresh session id.
func (m *Model) NewSession() string {
	id := m.port.NewSession()
	m.turns = nil
	m.inFlight = nil
	m.lastErr = ""
	m.refresh()
	return id
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.transcript.Width = msg.Width
		m.transcript.Height = msg.Height - 3
		m.refresh()
		return m, nil

	case RepliedMsg:
		m.inFlight = removeFirst(m.inFlight, msg.Message)
		if msg.Err != nil {
			m.lastErr = msg.Err.Error()
		}
		m.turns = m.port.Transcript()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter":
				text := strings.TrimSpace(m.input.Value())
				if text == "" {
					return m, nil
				}
				m.input.SetValue("")
				m.lastErr = ""
				m.inFlight = append(m.inFlight, text)
				m.refresh()
				return m, m.send(text)
			case "esc":
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if msg.String() == "i" || msg.String() == "enter" {
			return m, m.input.Focus()
		}
	}

	var cmd tea.Cmd
	m.transcript, cmd = m.transcript.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("Chat") + "  " + theme.Muted.Render("session "+m.port.SessionID())
	return lipgloss.JoinVertical(lipgloss.Left, header, m.transcript.View(), m.input.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) send(text string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		_, err := port.Send(context.Background(), text)
		return RepliedMsg{Message: text, Err: err}
	}
}

func (m *Model) refresh() {
	var sb strings.Builder
	if len(m.turns) == 0 && len(m.inFlight) == 0 {
		sb.WriteString(theme.Muted.Render("No messages yet. Press i to type, esc to leave the composer.") + "\n")
	}
	for _, t := range m.turns {
		sb.WriteString(theme.Hot.Render("you ") + t.Message + "\n")
		sb.WriteString(components.RenderMarkdown(t.Response, m.transcript.Width-4) + "\n\n")
	}
	for _, p := range m.inFlight {
		sb.WriteString(theme.Hot.Render("you ") + p + "\n")
		sb.WriteString(theme.Muted.Render("  thinking…") + "\n\n")
	}
	if m.lastErr != "" {
		sb.WriteString(theme.Bad.Render("send failed: "+m.lastErr) + "\n")
	}
	m.transcript.SetContent(sb.String())
	m.transcript.GotoBottom()
}

func removeFirst(items []string, v string) []string {
	for i, s := range items {
		if s == v {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}
