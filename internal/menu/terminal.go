package menu

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// history is the part of *liner.State that persists entered lines.
type history interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// Terminal is a Prompter backed by a liner line editor, with optional
// history persisted to a file between sessions.
type Terminal struct {
	state       *liner.State
	historyFile string
}

// OpenTerminal puts the terminal into line-editing mode. Close must be
// called to restore it.
func OpenTerminal(historyFile string) *Terminal {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	loadHistory(slog.Default(), state, historyFile)

	return &Terminal{state: state, historyFile: historyFile}
}

// Prompt reads one line. Non-blank lines are added to the history.
func (t *Terminal) Prompt(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}

	return line, nil
}

// Close writes the history file (if any) and restores the terminal.
func (t *Terminal) Close() error {
	saveHistory(slog.Default(), t.state, t.historyFile)

	return t.state.Close()
}

// loadHistory reads path into h. A missing file is the first run and is
// not reported; any other failure is logged and the session goes on
// without history.
func loadHistory(log *slog.Logger, h history, path string) {
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("failed to open history file",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return
	}
	defer f.Close()

	if _, err := h.ReadHistory(f); err != nil {
		log.Warn("failed to read history file",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

// saveHistory writes h to path. Failures are logged; losing history never
// stops the program.
func saveHistory(log *slog.Logger, h history, path string) {
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		log.Warn("failed to create history file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}

	if _, err := h.WriteHistory(f); err != nil {
		log.Warn("failed to write history file",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}

	if err := f.Close(); err != nil {
		log.Warn("failed to close history file",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}
