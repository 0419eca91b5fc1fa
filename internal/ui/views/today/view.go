package today

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "studydesk/internal/modules/catalog/dto"
	"studydesk/internal/ui/components"
	"studydesk/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Refresh(ctx context.Context) (catalogdto.SnapshotOutput, error)
	Snapshot(ctx context.Context) catalogdto.SnapshotOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// RefreshedMsg carries the outcome of a refresh. Snapshot is the cache
// contents after the attempt, so it is valid even when Err is set.
type RefreshedMsg struct {
	Snapshot catalogdto.SnapshotOutput
	Err      error
}

// ─── list items ──────────────────────────────────────────────────────────────

type taskItem struct {
	task catalogdto.TaskOutput
}

func (i taskItem) Title() string {
	box := "☐ "
	if i.task.Completed {
		box = "☑ "
	}
	return box + i.task.Title
}
func (i taskItem) Description() string {
	return fmt.Sprintf("task  %s  %d min", i.task.Date, i.task.DurationMin)
}
func (i taskItem) FilterValue() string { return i.task.Title }

type noteItem struct {
	note catalogdto.NoteOutput
}

func (i noteItem) Title() string { return i.note.Title }
func (i noteItem) Description() string {
	if i.note.Subject != "" {
		return "note  " + i.note.Subject
	}
	return "note"
}
func (i noteItem) FilterValue() string { return i.note.Title + " " + i.note.Subject }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists today's tasks and all notes from the entity cache, with a
// rendered preview of the selection.
type Model struct {
	port     Port
	list     list.Model
	preview  viewport.Model
	spinner  spinner.Model
	snapshot catalogdto.SnapshotOutput
	lastErr  error
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Today"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads every collection from the backend.
func (m Model) Refresh() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		_, err := port.Refresh(ctx)
		return RefreshedMsg{Snapshot: port.Snapshot(ctx), Err: err}
	}
}

// Reload re-reads the cache without contacting the backend. Mutations
// refresh the cache themselves, so this is all the view needs after one.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		return RefreshedMsg{Snapshot: port.Snapshot(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.preview.SetContent(m.renderDetail())

	case RefreshedMsg:
		m.loading = false
		m.lastErr = msg.Err
		m.snapshot = msg.Snapshot
		m.list.Title = m.title()
		cmds = append(cmds, m.list.SetItems(buildItems(msg.Snapshot)))
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SelectedNote returns the highlighted note, if the selection is a note.
func (m Model) SelectedNote() (catalogdto.NoteOutput, bool) {
	if item, ok := m.list.SelectedItem().(noteItem); ok {
		return item.note, true
	}
	return catalogdto.NoteOutput{}, false
}

// SelectedTask returns the highlighted task, if the selection is a task.
func (m Model) SelectedTask() (catalogdto.TaskOutput, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task, true
	}
	return catalogdto.TaskOutput{}, false
}

// Snapshot returns the last snapshot the view rendered.
func (m Model) Snapshot() catalogdto.SnapshotOutput { return m.snapshot }

// ─── private ─────────────────────────────────────────────────────────────────

func buildItems(s catalogdto.SnapshotOutput) []list.Item {
	items := make([]list.Item, 0, len(s.PendingTasks)+len(s.CompletedTasks)+len(s.Notes))
	for _, t := range s.PendingTasks {
		items = append(items, taskItem{task: t})
	}
	for _, t := range s.CompletedTasks {
		items = append(items, taskItem{task: t})
	}
	for _, n := range s.Notes {
		items = append(items, noteItem{note: n})
	}
	return items
}

func (m Model) title() string {
	p := m.snapshot.Progress
	t := fmt.Sprintf("Today · %d pending · %d xp · %d day streak", len(m.snapshot.PendingTasks), p.XP, p.StreakDays)
	if m.lastErr != nil {
		t += " · refresh failed"
	}
	return t
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	if m.lastErr != nil && m.snapshot.Generation == 0 {
		return theme.Bad.Render("Could not load data: " + m.lastErr.Error())
	}
	switch item := m.list.SelectedItem().(type) {
	case noteItem:
		return m.renderNote(item.note)
	case taskItem:
		return renderTask(item.task)
	}
	return theme.Muted.Render("Nothing here yet. Press : and try note:add or task:add")
}

func (m Model) renderNote(n catalogdto.NoteOutput) string {
	var md strings.Builder
	md.WriteString("# " + n.Title + "\n\n")
	if n.Subject != "" {
		md.WriteString("*" + n.Subject + "*\n\n")
	}
	md.WriteString(n.Content + "\n")
	if n.AISummary != "" {
		md.WriteString("\n## AI Summary\n\n" + n.AISummary + "\n")
	}
	cards := 0
	for _, c := range m.snapshot.Flashcards {
		if c.NoteID == n.ID {
			cards++
		}
	}
	footer := theme.Muted.Render(fmt.Sprintf("%d flashcards   :note:summarize  :cards:generate  :note:export", cards))
	return components.RenderMarkdown(md.String(), m.preview.Width-2) + "\n\n" + footer
}

func renderTask(t catalogdto.TaskOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(t.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("date:     ") + t.Date + "\n")
	sb.WriteString(fmt.Sprintf("%s%d min\n", theme.Muted.Render("duration: "), t.DurationMin))
	if t.Completed {
		sb.WriteString(theme.Muted.Render("status:   ") + theme.Good.Render("done") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("status:   ") + theme.Warn.Render("pending") + "\n")
	}
	if t.Description != "" {
		sb.WriteString("\n" + t.Description + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(":task:done  :task:delete  f: focus on this"))
	return sb.String()
}
