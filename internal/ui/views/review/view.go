package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reviewdto "studydesk/internal/modules/review/dto"
	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Start(ctx context.Context, scope string) (reviewdto.CardView, error)
	Reveal() (reviewdto.CardView, error)
	Grade(correct bool) (reviewdto.CardView, error)
	Quit() (reviewdto.CardView, error)
	Wait(ctx context.Context) (reviewdto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type startedMsg struct {
	card reviewdto.CardView
	err  error
}

// FinishedMsg carries the settled summary once every grade write is done.
type FinishedMsg struct {
	Summary reviewdto.SummaryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	card     reviewdto.CardView
	active   bool
	loading  bool
	settling bool
	summary  *reviewdto.SummaryOutput
	note     string
	spinner  spinner.Model
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp}
}

func (m Model) Init() tea.Cmd { return nil }

// Start fetches the cards for scope and shows the first question.
func (m *Model) Start(scope string) tea.Cmd {
	if m.active || m.loading {
		m.note = "a review is already running"
		return nil
	}
	m.loading = true
	m.summary = nil
	m.note = ""
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		card, err := port.Start(context.Background(), scope)
		return startedMsg{card: card, err: err}
	})
}

// Active reports whether a walk is in progress.
func (m Model) Active() bool { return m.active }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.loading || m.settling {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case startedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrEmptyCollection) {
				m.note = "no flashcards to review"
			} else {
				m.note = "could not start review: " + msg.err.Error()
			}
			return m, nil
		}
		m.active = true
		m.card = msg.card

	case FinishedMsg:
		m.settling = false
		if msg.Err != nil {
			m.note = "review summary unavailable: " + msg.Err.Error()
			return m, nil
		}
		s := msg.Summary
		m.summary = &s

	case tea.KeyMsg:
		if !m.active {
			switch msg.String() {
			case "a", "enter":
				return m, m.Start("all")
			case "d":
				return m, m.Start("due")
			}
			return m, nil
		}
		switch msg.String() {
		case " ", "enter":
			if m.card.Phase == "hidden" {
				return m.apply(m.port.Reveal())
			}
		case "y":
			if m.card.Phase == "revealed" {
				return m.apply(m.port.Grade(true))
			}
		case "n":
			if m.card.Phase == "revealed" {
				return m.apply(m.port.Grade(false))
			}
		case "esc":
			return m.apply(m.port.Quit())
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Review") + "\n\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " loading cards…\n")
	case m.active:
		sb.WriteString(m.renderCard())
	case m.settling:
		sb.WriteString(m.spinner.View() + " saving grades…\n")
	default:
		if m.summary != nil {
			sb.WriteString(renderSummary(*m.summary) + "\n\n")
		}
		sb.WriteString(theme.Muted.Render("a/enter: review all cards  d: review due cards") + "\n")
	}
	if m.note != "" {
		sb.WriteString("\n" + theme.Warn.Render(m.note) + "\n")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) apply(card reviewdto.CardView, err error) (Model, tea.Cmd) {
	if err != nil {
		m.note = err.Error()
		return m, nil
	}
	m.card = card
	if card.Phase != "done" {
		return m, nil
	}
	m.active = false
	m.settling = true
	port := m.port
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		s, err := port.Wait(context.Background())
		return FinishedMsg{Summary: s, Err: err}
	})
}

func (m Model) renderCard() string {
	c := m.card
	w := min(m.width-4, 72)
	if w < 20 {
		w = 60
	}
	face := theme.PaneActive.Width(w)

	var sb strings.Builder
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("card %d of %d   ✓ %d  ✗ %d", c.Index+1, c.Total, c.Correct, c.Wrong)) + "\n")
	sb.WriteString(face.Render(theme.Hot.Render("Q ") + c.Question) + "\n")
	if c.Phase == "revealed" {
		sb.WriteString(theme.Pane.Width(w).Render(theme.Good.Render("A ") + c.Answer) + "\n")
		sb.WriteString(theme.Muted.Render("y: knew it  n: missed it  esc: stop") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("space: reveal  esc: stop") + "\n")
	}
	return sb.String()
}

func renderSummary(s reviewdto.SummaryOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Good.Render(fmt.Sprintf("%d correct", s.Correct)) + "  ")
	sb.WriteString(theme.Bad.Render(fmt.Sprintf("%d wrong", s.Wrong)) + "  ")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("of %d cards", s.Total)))
	if s.WriteError != "" {
		sb.WriteString("\n" + theme.Bad.Render("some grades were not saved: "+s.WriteError))
	}
	if s.RefreshError != "" {
		sb.WriteString("\n" + theme.Warn.Render("refresh failed: "+s.RefreshError))
	}
	return sb.String()
}
