package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	catalogdto "studydesk/internal/modules/catalog/dto"
	chatdto "studydesk/internal/modules/chat/dto"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func newTable(header ...interface{}) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	bolded := make([]interface{}, 0, len(header))
	for _, h := range header {
		bolded = append(bolded, bold(h))
	}
	tbl.AddRow(bolded...)
	return tbl
}

func printNotes(w io.Writer, notes []catalogdto.NoteOutput) {
	if len(notes) == 0 {
		_, _ = fmt.Fprintln(w, "no notes")
		return
	}
	tbl := newTable("ID", "Title", "Subject", "Summary")
	for _, n := range notes {
		summary := faint("-")
		if n.AISummary != "" {
			summary = green("yes")
		}
		tbl.AddRow(n.ID, n.Title, n.Subject, summary)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printTasks(w io.Writer, pending, completed []catalogdto.TaskOutput) {
	_, _ = fmt.Fprintln(w, bold("Pending"))
	printTaskTable(w, pending)
	_, _ = fmt.Fprintln(w, bold("\nCompleted"))
	printTaskTable(w, completed)
}

func printTaskTable(w io.Writer, tasks []catalogdto.TaskOutput) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, faint("  none"))
		return
	}
	tbl := newTable("ID", "Date", "Minutes", "Title")
	for _, t := range tasks {
		tbl.AddRow(t.ID, t.Date, t.DurationMin, t.Title)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printFlashcards(w io.Writer, cards []catalogdto.FlashcardOutput) {
	if len(cards) == 0 {
		_, _ = fmt.Fprintln(w, "no flashcards")
		return
	}
	tbl := newTable("ID", "Level", "Next review", "Question")
	for _, c := range cards {
		next := faint("-")
		if !c.NextReview.IsZero() {
			next = c.NextReview.Local().Format("2006-01-02 15:04")
		}
		tbl.AddRow(c.ID, strings.Repeat("*", c.Difficulty), next, c.Question)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printDrafts(w io.Writer, drafts []catalogdto.FlashcardDraftOutput) {
	for i, d := range drafts {
		_, _ = fmt.Fprintf(w, "%s %s\n   %s %s\n", cyan(fmt.Sprintf("%d.", i+1)), d.Question, faint("→"), d.Answer)
	}
}

func printSessions(w io.Writer, sessions []catalogdto.SessionOutput) {
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(w, "no sessions")
		return
	}
	tbl := newTable("Date", "Subject", "Minutes", "Focus")
	for _, s := range sessions {
		tbl.AddRow(s.Date, s.Subject, s.DurationMin, s.FocusScore)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printProgress(w io.Writer, p catalogdto.ProgressOutput) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("XP"), p.XP)
	tbl.AddRow(bold("Streak"), fmt.Sprintf("%d days", p.StreakDays))
	tbl.AddRow(bold("Study hours"), fmt.Sprintf("%.1f", p.TotalStudyHours))
	tbl.AddRow(bold("Notes"), p.TotalNotes)
	tbl.AddRow(bold("Flashcards"), p.TotalFlashcards)
	tbl.AddRow(bold("Quizzes"), p.TotalQuizzes)
	badges := faint("none")
	if len(p.Badges) > 0 {
		badges = green(strings.Join(p.Badges, ", "))
	}
	tbl.AddRow(bold("Badges"), badges)
	if p.LastStudyDate != "" {
		tbl.AddRow(bold("Last studied"), p.LastStudyDate)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printQuestions(w io.Writer, questions []chatdto.QuestionOutput) {
	if len(questions) == 0 {
		_, _ = fmt.Fprintln(w, "no saved questions")
		return
	}
	for i, q := range questions {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", cyan(fmt.Sprintf("%d.", i+1)), q.Question, faint("("+q.Topic+", "+q.Difficulty+")"))
		for j, o := range q.Options {
			mark := " "
			if j == q.CorrectAnswer {
				mark = green("✓")
			}
			_, _ = fmt.Fprintf(w, "   %s %c) %s\n", mark, 'a'+j, o)
		}
	}
}
