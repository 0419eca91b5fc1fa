package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"studydesk/internal/bootstrap"
)

func newNotesCmd(opts *rootOptions) *cobra.Command {
	notes := &cobra.Command{Use: "notes", Short: "Manage notes"}

	notes.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.ListNotes(cmd.Context())
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) { printNotes(w, out) })
			})
		},
	})

	var title, content, contentFile, subject string
	add := &cobra.Command{
		Use:   "add --title <title> (--content <text> | --file <path>)",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if contentFile != "" {
				b, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("read --file: %w", err)
				}
				content = string(b)
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.CreateNote(cmd.Context(), title, content, subject)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "created note %s (%s)\n", bold(out.Title), out.ID)
				})
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "note title")
	add.Flags().StringVar(&content, "content", "", "note body")
	add.Flags().StringVar(&contentFile, "file", "", "read the note body from a file")
	add.Flags().StringVar(&subject, "subject", "", "subject")
	notes.AddCommand(add)

	notes.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.CatalogCLI.DeleteNote(cmd.Context(), args[0]); err != nil {
					return err
				}
				return emit(cmd, opts, map[string]string{"deleted": args[0]}, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "deleted note %s\n", args[0])
				})
			})
		},
	})

	notes.AddCommand(&cobra.Command{
		Use:   "summarize <id>",
		Short: "Ask the service for an AI summary of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				summary, err := app.CatalogCLI.SummarizeNote(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return emit(cmd, opts, map[string]string{"id": args[0], "summary": summary}, func(w io.Writer) {
					_, _ = fmt.Fprintln(w, strings.TrimSpace(summary))
				})
			})
		},
	})

	var format string
	var open bool
	export := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a note as PDF or Markdown into export.dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.ExportNote(cmd.Context(), args[0], format, open)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					detail := fmt.Sprintf("%d bytes", out.Bytes)
					if out.Pages > 0 {
						detail = fmt.Sprintf("%d pages, %s", out.Pages, detail)
					}
					_, _ = fmt.Fprintf(w, "exported %s (%s)\n", out.Path, detail)
				})
			})
		},
	}
	export.Flags().StringVar(&format, "format", "pdf", "export format: pdf|md")
	export.Flags().BoolVar(&open, "open", false, "open the exported file")
	notes.AddCommand(export)

	return notes
}
