package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"studydesk/internal/bootstrap"
	focusdto "studydesk/internal/modules/focus/dto"
	reviewdto "studydesk/internal/modules/review/dto"
)

// reviewPrompter drives a review from the terminal.
type reviewPrompter struct {
	in  lineInput
	out io.Writer
}

func (p reviewPrompter) ShowQuestion(card reviewdto.CardView) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "\n%s %s\n", cyan(fmt.Sprintf("[%d/%d]", card.Index+1, card.Total)), bold(card.Question))
	line, err := p.in.ReadLine(faint("enter to reveal, q to stop: "))
	if isQuit(line, err) {
		return false, nil
	}
	return true, nil
}

func (p reviewPrompter) Judge(card reviewdto.CardView) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", faint("answer:"), card.Answer)
	for {
		line, err := p.in.ReadLine("did you know it? [y/n] ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func newReviewCmd(opts *rootOptions) *cobra.Command {
	var due bool
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Walk through flashcards once, in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				in := newLineInput("review_history")
				defer in.Close()
				summary, err := app.ReviewCLI.Run(cmd.Context(), scopeFlag(due), reviewPrompter{in: in, out: cmd.OutOrStdout()})
				if err != nil {
					return err
				}
				return emit(cmd, opts, summary, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "\n%s %d correct, %d wrong of %d\n", bold("review done:"), summary.Correct, summary.Wrong, summary.Total)
					if summary.WriteError != "" {
						_, _ = fmt.Fprintf(w, "%s %s\n", color.RedString("some grades were not saved:"), summary.WriteError)
					}
					if summary.RefreshError != "" {
						_, _ = fmt.Fprintf(w, "%s %s\n", color.YellowString("refresh failed:"), summary.RefreshError)
					}
				})
			})
		},
	}
	cmd.Flags().BoolVar(&due, "due", false, "only cards due for review")
	return cmd
}

func newFocusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "focus <subject>",
		Short: "Run a focus countdown and record it when it completes (Ctrl-C abandons it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				progress := func(st focusdto.StatusOutput) {
					if opts.json {
						return
					}
					_, _ = fmt.Fprintf(w, "\r%s %s ", cyan(formatClock(st.Remaining)), st.Subject)
				}
				done, err := app.FocusCLI.Run(cmd.Context(), args[0], time.Second, progress)
				if errors.Is(err, context.Canceled) {
					_, _ = fmt.Fprintln(w, "\nfocus abandoned, nothing recorded")
					return nil
				}
				if err != nil {
					return err
				}
				if done.Error != "" {
					return errors.New(done.Error)
				}
				return emit(cmd, opts, done, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "\n%s %d minutes of %s\n", green("session recorded:"), done.Session.DurationMin, done.Session.Subject)
					if done.RefreshError != "" {
						_, _ = fmt.Fprintf(w, "%s %s\n", color.YellowString("refresh failed:"), done.RefreshError)
					}
				})
			})
		},
	}
}

func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
