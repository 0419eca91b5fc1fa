package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	homedir "github.com/mitchellh/go-homedir"
)

type lineInput interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type basicLineInput struct {
	reader *bufio.Reader
	out    io.Writer
}

func newBasicLineInput(in io.Reader, out io.Writer) *basicLineInput {
	return &basicLineInput{reader: bufio.NewReader(in), out: out}
}

func (b *basicLineInput) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		_, _ = fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *basicLineInput) Close() error { return nil }

type readlineInput struct {
	instance *readline.Instance
}

func newReadlineInput(historyPath string) (*readlineInput, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, err
	}
	return &readlineInput{instance: instance}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

func (r *readlineInput) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

// newLineInput prefers readline with a per-purpose history file and falls
// back to plain stdin when no terminal is attached.
func newLineInput(historyName string) lineInput {
	historyPath := ""
	if historyName != "" {
		if home, err := homedir.Dir(); err == nil {
			historyPath = filepath.Join(home, ".config", "studydesk", historyName)
		}
	}
	if in, err := newReadlineInput(historyPath); err == nil {
		return in
	}
	return newBasicLineInput(os.Stdin, os.Stdout)
}

// isQuit reports whether line ends the loop: EOF, interrupt, or a quit word.
func isQuit(line string, err error) bool {
	if err != nil {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit", "/quit", "/exit":
		return true
	}
	return false
}
