package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "studydesk/internal/modules/catalog/dto"
	catalogin "studydesk/internal/modules/catalog/port/in"
	chatin "studydesk/internal/modules/chat/port/in"
	focusin "studydesk/internal/modules/focus/port/in"
	reviewin "studydesk/internal/modules/review/port/in"
	"studydesk/internal/platform/clock"
	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/ui/components"
	"studydesk/internal/ui/theme"
	chatview "studydesk/internal/ui/views/chat"
	focusview "studydesk/internal/ui/views/focus"
	reviewview "studydesk/internal/ui/views/review"
	todayview "studydesk/internal/ui/views/today"
)

// Deps are the use cases the terminal UI drives.
type Deps struct {
	Catalog        catalogin.Usecase
	Focus          focusin.Usecase
	Review         reviewin.Usecase
	Chat           chatin.Usecase
	FlashcardCount int
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabFocus
	tabReview
	tabChat
	tabCount
)

var tabLabels = [tabCount]string{
	"Today", "Focus", "Review", "Chat",
}

const defaultTaskMinutes = 30

// ─── async messages ───────────────────────────────────────────────────────────

// opDoneMsg reports a catalog mutation started from the palette.
type opDoneMsg struct {
	text string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Focus   key.Binding
	Reveal  key.Binding
	Grade   key.Binding
	Compose key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh (Today)")),
		Focus:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus on selection")),
		Reveal:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "reveal answer")),
		Grade:   key.NewBinding(key.WithKeys("y", "n"), key.WithHelp("y/n", "grade card")),
		Compose: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "compose (Chat)")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Focus},
		{k.Reveal, k.Grade, k.Compose},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// the command palette and the status bar. Rendering is delegated to one
// sub-view per tab.
type Model struct {
	catalog        catalogin.Usecase
	flashcardCount int

	todayView  todayview.Model
	focusView  focusview.Model
	reviewView reviewview.Model
	chatView   chatview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(deps Deps) Model {
	return Model{
		catalog:        deps.Catalog,
		flashcardCount: deps.FlashcardCount,
		todayView:      todayview.New(deps.Catalog),
		focusView:      focusview.New(deps.Focus),
		reviewView:     reviewview.New(deps.Review),
		chatView:       chatview.New(deps.Chat),
		activeTab:      tabToday,
		keys:           defaultKeys(),
		help:           help.New(),
		palette:        components.NewPalette(),
		status:         "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.focusView.Init(),
		m.reviewView.Init(),
		m.chatView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.status = describeErr(msg.err)
		} else {
			m.status = msg.text
		}
		// A failed refresh after a successful write still changed the remote
		// state, so reload in both cases.
		return m, m.todayView.Reload()

	case todayview.RefreshedMsg:
		if msg.Err != nil {
			m.status = "refresh failed: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.todayView, cmd = m.todayView.Update(msg)
		return m, cmd

	case focusview.StatusMsg:
		if msg.Err != nil {
			m.status = describeErr(msg.Err)
		} else {
			m.status = msg.Text
		}
		return m, nil

	case focusview.CompletedMsg:
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		return m, tea.Batch(cmd, m.todayView.Reload())

	case reviewview.FinishedMsg:
		var cmd tea.Cmd
		m.reviewView, cmd = m.reviewView.Update(msg)
		if msg.Err == nil {
			m.status = fmt.Sprintf("review done: %d/%d correct", msg.Summary.Correct, msg.Summary.Total)
		}
		return m, tea.Batch(cmd, m.todayView.Reload())

	case chatview.RepliedMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-views that are taking free text.
		if m.subViewEditing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			if m.activeTab == tabToday {
				m.status = "refreshing…"
				return m, m.todayView.Refresh()
			}
		case "f":
			if m.activeTab == tabToday {
				return m.focusOnSelection()
			}
		}
	}

	// Timer ticks and spinner frames must reach their views on any tab.
	var cmd tea.Cmd
	if _, ok := msg.(tea.KeyMsg); !ok {
		m.todayView, cmd = m.todayView.Update(msg)
		cmds = append(cmds, cmd)
		m.focusView, cmd = m.focusView.Update(msg)
		cmds = append(cmds, cmd)
		m.reviewView, cmd = m.reviewView.Update(msg)
		cmds = append(cmds, cmd)
		m.chatView, cmd = m.chatView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch m.activeTab {
	case tabToday:
		m.todayView, cmd = m.todayView.Update(msg)
	case tabFocus:
		m.focusView, cmd = m.focusView.Update(msg)
	case tabReview:
		m.reviewView, cmd = m.reviewView.Update(msg)
	case tabChat:
		m.chatView, cmd = m.chatView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabFocus:
		return m.focusView.View()
	case tabReview:
		return m.reviewView.View()
	case tabChat:
		return m.chatView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "studydesk  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.focusView.Running() {
		st := m.focusView.Status()
		left = theme.Hot.Render(fmt.Sprintf("● %s %02d:%02d", st.Subject, st.Remaining/60, st.Remaining%60)) + "  " + left
	}
	if m.catalog != nil && m.catalog.Busy() {
		left = theme.Warn.Render("working…") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	note, hasNote := m.todayView.SelectedNote()
	task, hasTask := m.todayView.SelectedTask()

	switch parts[0] {
	case "refresh":
		m.status = "refreshing…"
		return m, m.todayView.Refresh()

	case "note:add":
		title, content, _ := strings.Cut(rest, "|")
		noteIn := catalogdto.CreateNoteInput{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
		return m, m.catalogOp(func(ctx context.Context) (string, error) {
			n, err := m.catalog.CreateNote(ctx, noteIn)
			return "note created: " + n.Title, err
		})

	case "note:delete", "note:summarize", "note:export", "cards:generate":
		if !hasNote {
			m.status = "no note selected"
			return m, nil
		}
		return m, m.noteOp(parts, note)

	case "task:add":
		title, minutes := splitMinutes(rest)
		taskIn := catalogdto.CreateTaskInput{
			Title:       title,
			Date:        clock.Today(clock.SystemClock{}),
			DurationMin: minutes,
		}
		return m, m.catalogOp(func(ctx context.Context) (string, error) {
			t, err := m.catalog.CreateTask(ctx, taskIn)
			return "task added: " + t.Title, err
		})

	case "task:done":
		if !hasTask {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.catalogOp(func(ctx context.Context) (string, error) {
			return "task completed: " + task.Title, m.catalog.CompleteTask(ctx, task.ID)
		})

	case "task:delete":
		if !hasTask {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.catalogOp(func(ctx context.Context) (string, error) {
			return "task deleted: " + task.Title, m.catalog.DeleteTask(ctx, task.ID)
		})

	case "review:start":
		scope := "all"
		if len(parts) >= 2 {
			scope = parts[1]
		}
		m.activeTab = tabReview
		return m, m.reviewView.Start(scope)

	case "focus:start":
		m.activeTab = tabFocus
		return m, m.focusView.Start(rest)

	case "focus:stop":
		return m, m.focusView.Stop()

	case "focus:reset":
		return m, m.focusView.Reset()

	case "chat:new":
		m.activeTab = tabChat
		m.status = "new chat session " + m.chatView.NewSession()
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) noteOp(parts []string, note catalogdto.NoteOutput) tea.Cmd {
	switch parts[0] {
	case "note:delete":
		return m.catalogOp(func(ctx context.Context) (string, error) {
			return "note deleted: " + note.Title, m.catalog.DeleteNote(ctx, note.ID)
		})
	case "note:summarize":
		return m.catalogOp(func(ctx context.Context) (string, error) {
			_, err := m.catalog.SummarizeNote(ctx, note.ID)
			return "summary saved for " + note.Title, err
		})
	case "note:export":
		format := "pdf"
		if len(parts) >= 2 {
			format = parts[1]
		}
		return m.catalogOp(func(ctx context.Context) (string, error) {
			out, err := m.catalog.ExportNote(ctx, catalogdto.ExportNoteInput{ID: note.ID, Format: format})
			return "exported to " + out.Path, err
		})
	default:
		count := m.flashcardCount
		if len(parts) >= 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				count = n
			}
		}
		return m.catalogOp(func(ctx context.Context) (string, error) {
			drafts, err := m.catalog.GenerateFlashcards(ctx, catalogdto.GenerateFlashcardsInput{NoteID: note.ID, Count: count, Save: true})
			return fmt.Sprintf("%d flashcards saved for %s", len(drafts), note.Title), err
		})
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewEditing reports whether the active tab is taking free text, in which
// case global key bindings must yield.
func (m Model) subViewEditing() bool {
	switch m.activeTab {
	case tabToday:
		return m.todayView.Filtering()
	case tabFocus:
		return m.focusView.Editing()
	case tabChat:
		return m.chatView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.focusView, _ = m.focusView.Update(sz)
	m.reviewView, _ = m.reviewView.Update(sz)
	m.chatView, _ = m.chatView.Update(sz)
}

func (m Model) focusOnSelection() (tea.Model, tea.Cmd) {
	subject := ""
	if t, ok := m.todayView.SelectedTask(); ok {
		subject = t.Title
	} else if n, ok := m.todayView.SelectedNote(); ok {
		subject = n.Subject
		if subject == "" {
			subject = n.Title
		}
	}
	m.activeTab = tabFocus
	return m, m.focusView.Start(subject)
}

func splitMinutes(s string) (string, int) {
	fields := strings.Fields(s)
	if len(fields) >= 2 {
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			return strings.Join(fields[:len(fields)-1], " "), n
		}
	}
	return strings.TrimSpace(s), defaultTaskMinutes
}

func describeErr(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrBusy):
		return "still working on the previous request"
	case errors.Is(err, apperrors.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, apperrors.ErrAlreadyRunning):
		return "a focus session is already running"
	case errors.Is(err, apperrors.ErrNotRunning):
		return "no focus session is running"
	}
	return "error: " + err.Error()
}

// ─── async commands ───────────────────────────────────────────────────────────

const opTimeout = 2 * time.Minute

func (m Model) catalogOp(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		text, err := fn(ctx)
		return opDoneMsg{text: text, err: err}
	}
}
