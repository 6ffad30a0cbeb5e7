// Package menu runs the interactive, line-oriented front end of the
// roster: it prints the option list, reads a choice, and dispatches to
// the matching Handler.
//
// The menu never touches the store itself. Handlers (see
// menu/handlers/student) are built by factories that close over a
// storage.Storage, the same way HTTP handlers close over a database.
package menu

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/aanand-mishra/roster/internal/types"
	"github.com/aanand-mishra/roster/internal/utils/response"
)

// exitKey is the menu choice that ends the session.
const exitKey = "0"

// Prompter reads one line of input after showing prompt. *liner.State
// satisfies it, and so does the Terminal wrapper in this package.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Handler runs one menu command. Returning an error that wraps io.EOF or
// liner.ErrPromptAborted ends the session cleanly; any other error ends
// it with that error.
type Handler func(s *Session) error

// Command is one numbered entry of the menu.
type Command struct {
	Key   string
	Label string
	Run   Handler
}

// Session is what a Handler sees: input helpers and the output writer.
type Session struct {
	in  Prompter
	out io.Writer
}

// NewSession pairs a prompter with an output writer.
func NewSession(in Prompter, out io.Writer) *Session {
	return &Session{in: in, out: out}
}

// Out is where handlers write their results.
func (s *Session) Out() io.Writer { return s.out }

// Linef writes one formatted line of output.
func (s *Session) Linef(format string, args ...any) {
	_ = response.WriteLine(s.out, format, args...)
}

// Prompt shows "label: " and returns the raw line.
func (s *Session) Prompt(label string) (string, error) {
	return s.in.Prompt(label + ": ")
}

// ReadInt prompts until the answer parses as an integer.
func (s *Session) ReadInt(label string) (int, error) {
	for {
		line, err := s.Prompt(label)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		s.Linef("Enter an integer.")
	}
}

// ReadDate prompts until the answer parses as a YYYY-MM-DD date.
func (s *Session) ReadDate(label string) (time.Time, error) {
	for {
		line, err := s.Prompt(label)
		if err != nil {
			return time.Time{}, err
		}

		d, err := types.ParseDate(line)
		if err == nil {
			return d, nil
		}
		s.Linef("Date must be in yyyy-MM-dd format.")
	}
}

// ReadFloat prompts until the answer is a number within [lo, hi].
func (s *Session) ReadFloat(label string, lo, hi float64) (float64, error) {
	for {
		line, err := s.Prompt(label)
		if err != nil {
			return 0, err
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		switch {
		case err != nil:
			s.Linef("Enter a numeric value.")
		case math.IsNaN(v) || v < lo || v > hi:
			s.Linef("Value must be between %.2f and %.2f", lo, hi)
		default:
			return v, nil
		}
	}
}

// Menu is the top-level command loop.
type Menu struct {
	title    string
	session  *Session
	commands []Command
}

// New builds a menu over the given commands, shown in the order given.
// The exit entry is added automatically.
func New(title string, in Prompter, out io.Writer, commands []Command) *Menu {
	return &Menu{
		title:    title,
		session:  NewSession(in, out),
		commands: commands,
	}
}

// Run prints the welcome line and loops until the user exits, input ends
// (EOF), or the prompt is aborted with Ctrl+C.
func (m *Menu) Run() error {
	s := m.session
	s.Linef("Welcome to the %s", m.title)

	for {
		m.printMenu()

		choice, err := s.Prompt("Choose an option")
		if err != nil {
			return m.finish(err)
		}
		choice = strings.TrimSpace(choice)

		if choice == exitKey {
			s.Linef("Bye.")
			return nil
		}

		cmd, ok := m.lookup(choice)
		if !ok {
			s.Linef("Unknown option.")
			continue
		}

		if err := cmd.Run(s); err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) printMenu() {
	s := m.session
	s.Linef("")
	s.Linef("Menu:")
	for _, c := range m.commands {
		s.Linef("%s) %s", c.Key, c.Label)
	}
	s.Linef("%s) Exit", exitKey)
}

func (m *Menu) lookup(key string) (Command, bool) {
	for _, c := range m.commands {
		if c.Key == key {
			return c, true
		}
	}
	return Command{}, false
}

// finish turns end-of-input into a clean exit.
func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		m.session.Linef("")
		m.session.Linef("Bye.")
		return nil
	}
	return fmt.Errorf("menu: %w", err)
}
