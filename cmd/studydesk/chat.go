package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studydesk/internal/bootstrap"
	chatdto "studydesk/internal/modules/chat/dto"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	var resume string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the study tutor (/new, /history, /session, /quit)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				ctx := cmd.Context()
				if resume != "" {
					turns, err := app.ChatCLI.Resume(ctx, resume)
					if err != nil {
						return err
					}
					printTurns(w, turns)
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", faint("session"), app.ChatCLI.SessionID())

				in := newLineInput("chat_history")
				defer in.Close()
				for {
					line, err := in.ReadLine(cyan("you> "))
					if isQuit(line, err) {
						return nil
					}
					line = strings.TrimSpace(line)
					switch line {
					case "":
						continue
					case "/new":
						_, _ = fmt.Fprintf(w, "%s %s\n", faint("new session"), app.ChatCLI.NewSession())
						continue
					case "/history":
						printTurns(w, app.ChatCLI.Transcript())
						continue
					case "/session":
						_, _ = fmt.Fprintln(w, app.ChatCLI.SessionID())
						continue
					}
					turn, err := app.ChatCLI.Send(ctx, line)
					if err != nil {
						if ctx.Err() != nil {
							return nil
						}
						_, _ = fmt.Fprintf(w, "%s %v\n", faint("send failed:"), err)
						continue
					}
					_, _ = fmt.Fprintf(w, "%s %s\n", green("tutor>"), turn.Response)
				}
			})
		},
	}
	cmd.Flags().StringVar(&resume, "resume", "", "continue an existing session id")
	return cmd
}

func printTurns(w io.Writer, turns []chatdto.TurnOutput) {
	for _, t := range turns {
		_, _ = fmt.Fprintf(w, "%s %s\n%s %s\n", cyan("you>"), t.Message, green("tutor>"), t.Response)
	}
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Upload a document and ask the tutor about it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ChatCLI.Analyze(cmd.Context(), args[0], query)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s\n\n%s\n", bold(out.Filename), out.Analysis)
				})
			})
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "question to ask about the document")
	return cmd
}

func newQuizCmd(opts *rootOptions) *cobra.Command {
	var (
		difficulty string
		count      int
	)
	cmd := &cobra.Command{
		Use:   "quiz <topic>",
		Short: "Generate a practice quiz",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ChatCLI.Quiz(cmd.Context(), strings.Join(args, " "), difficulty, count)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s %s\n\n%s\n", bold(out.Topic), faint("("+out.Difficulty+")"), out.Quiz)
				})
			})
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard (default medium)")
	cmd.Flags().IntVar(&count, "count", 0, "number of questions (default 5)")
	return cmd
}

func newQuestionsCmd(opts *rootOptions) *cobra.Command {
	questions := &cobra.Command{Use: "questions", Short: "Manage the saved quiz question bank"}

	var topic string
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved questions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ChatCLI.Questions(cmd.Context(), topic)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) { printQuestions(w, out) })
			})
		},
	}
	list.Flags().StringVar(&topic, "topic", "", "only questions for this topic")
	questions.AddCommand(list)

	var (
		input  chatdto.SaveQuestionInput
		answer int
	)
	add := &cobra.Command{
		Use:   "add --topic <topic> --question <text> --option <a> --option <b> --answer <n>",
		Short: "Save a multiple-choice question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input.CorrectAnswer = answer - 1
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ChatCLI.SaveQuestion(cmd.Context(), input)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "saved question %s (%s)\n", bold(out.Question), out.ID)
				})
			})
		},
	}
	add.Flags().StringVar(&input.Topic, "topic", "", "topic")
	add.Flags().StringVar(&input.Question, "question", "", "question text")
	add.Flags().StringArrayVar(&input.Options, "option", nil, "answer option, repeat for each choice")
	add.Flags().IntVar(&answer, "answer", 1, "number of the correct option, starting at 1")
	add.Flags().StringVar(&input.Difficulty, "difficulty", "", "easy, medium or hard (default medium)")
	questions.AddCommand(add)

	return questions
}
