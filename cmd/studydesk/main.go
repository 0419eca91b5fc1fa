package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"studydesk/internal/bootstrap"
	"studydesk/internal/platform/config"
	"studydesk/internal/platform/logger"
)

type rootOptions struct {
	configPath string
	logMode    string
	json       bool
}

func main() {
	opts := &rootOptions{}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(opts).ExecuteContext(ctx)
	stop()
	if err != nil {
		if opts.json {
			b, _ := json.Marshal(map[string]string{"error": err.Error()})
			_, _ = fmt.Fprintln(color.Output, string(b))
		} else {
			_, _ = fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "studydesk",
		Short:         "Study assistant: notes, tasks, flashcards, focus sessions and chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default .studydesk.yaml in ~/.config/studydesk or ./)")
	root.PersistentFlags().StringVar(&opts.logMode, "log", "", "log mode: off|dev|prod (overrides log.mode)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Output as JSON.")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newNotesCmd(opts))
	root.AddCommand(newTasksCmd(opts))
	root.AddCommand(newFlashcardsCmd(opts))
	root.AddCommand(newReviewCmd(opts))
	root.AddCommand(newFocusCmd(opts))
	root.AddCommand(newChatCmd(opts))
	root.AddCommand(newAnalyzeCmd(opts))
	root.AddCommand(newQuizCmd(opts))
	root.AddCommand(newQuestionsCmd(opts))
	root.AddCommand(newSessionsCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logMode != "" {
		cfg.LogMode = opts.logMode
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return bootstrap.New(cfg, log)
}

// withApp builds the application for one command run and flushes the logger
// afterwards.
func withApp(opts *rootOptions, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer app.Log.Sync()
	return fn(app)
}

// emit writes v as JSON under --json, otherwise calls human.
func emit(cmd *cobra.Command, opts *rootOptions, v any, human func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human(w)
	return nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(opts, bootstrap.RunTUI)
		},
	}
}
