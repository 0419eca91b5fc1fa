package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"studydesk/internal/bootstrap"
	catalogdto "studydesk/internal/modules/catalog/dto"
	"studydesk/internal/platform/clock"
)

func newTasksCmd(opts *rootOptions) *cobra.Command {
	tasks := &cobra.Command{Use: "tasks", Short: "Plan study tasks"}

	tasks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pending and completed tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				pending, completed, err := app.CatalogCLI.ListTasks(cmd.Context())
				if err != nil {
					return err
				}
				out := map[string][]catalogdto.TaskOutput{"pending": pending, "completed": completed}
				return emit(cmd, opts, out, func(w io.Writer) { printTasks(w, pending, completed) })
			})
		},
	})

	var title, description, date string
	var duration int
	add := &cobra.Command{
		Use:   "add --title <title> [--date YYYY-MM-DD] [--duration minutes]",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = clock.Today(clock.SystemClock{})
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.CreateTask(cmd.Context(), title, description, date, duration)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "created task %s on %s (%s)\n", bold(out.Title), out.Date, out.ID)
				})
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "task title")
	add.Flags().StringVar(&description, "description", "", "task description")
	add.Flags().StringVar(&date, "date", "", "task date, YYYY-MM-DD (default today)")
	add.Flags().IntVar(&duration, "duration", 30, "planned minutes")
	tasks.AddCommand(add)

	tasks.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.CatalogCLI.CompleteTask(cmd.Context(), args[0]); err != nil {
					return err
				}
				return emit(cmd, opts, map[string]string{"completed": args[0]}, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s task %s\n", green("completed"), args[0])
				})
			})
		},
	})

	tasks.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.CatalogCLI.DeleteTask(cmd.Context(), args[0]); err != nil {
					return err
				}
				return emit(cmd, opts, map[string]string{"deleted": args[0]}, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "deleted task %s\n", args[0])
				})
			})
		},
	})

	return tasks
}

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List recorded focus sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.ListSessions(cmd.Context())
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) { printSessions(w, out) })
			})
		},
	}
}

func newProgressCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show XP, streak and badges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.Progress(cmd.Context())
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) { printProgress(w, out) })
			})
		},
	}
}
