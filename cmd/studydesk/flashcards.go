package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"studydesk/internal/bootstrap"
)

func newFlashcardsCmd(opts *rootOptions) *cobra.Command {
	cards := &cobra.Command{Use: "flashcards", Short: "Manage flashcards"}

	var due bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List flashcards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.ListFlashcards(cmd.Context(), scopeFlag(due))
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) { printFlashcards(w, out) })
			})
		},
	}
	list.Flags().BoolVar(&due, "due", false, "only cards due for review")
	cards.AddCommand(list)

	var count int
	var save bool
	generate := &cobra.Command{
		Use:   "generate <note-id>",
		Short: "Generate flashcards from a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				n := count
				if n == 0 {
					n = app.Config.FlashcardCount
				}
				out, err := app.CatalogCLI.GenerateFlashcards(cmd.Context(), args[0], n, save)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					printDrafts(w, out)
					if save {
						_, _ = fmt.Fprintf(w, "%s %d flashcards\n", green("saved"), len(out))
					}
				})
			})
		},
	}
	generate.Flags().IntVar(&count, "count", 0, "number of cards (default flashcards.count)")
	generate.Flags().BoolVar(&save, "save", false, "store the generated cards")
	cards.AddCommand(generate)

	var noteID, question, answer string
	add := &cobra.Command{
		Use:   "add --note <id> --question <q> --answer <a>",
		Short: "Create a flashcard by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.AddFlashcard(cmd.Context(), noteID, question, answer)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "created flashcard %s\n", out.ID)
				})
			})
		},
	}
	add.Flags().StringVar(&noteID, "note", "", "note id")
	add.Flags().StringVar(&question, "question", "", "question")
	add.Flags().StringVar(&answer, "answer", "", "answer")
	cards.AddCommand(add)

	return cards
}

func scopeFlag(due bool) string {
	if due {
		return "due"
	}
	return "all"
}
