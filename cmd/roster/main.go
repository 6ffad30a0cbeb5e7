// main is the entry point of the roster application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file and/or environment, then flags)
//  2. Initialise the logger
//  3. Create the in-memory store, optionally loading the data file
//  4. Build the menu from the student handlers
//  5. Run the menu until the user exits or input ends
//
// RUNNING:
//
//	go run ./cmd/roster --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/roster
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/roster/internal/config"
	"github.com/aanand-mishra/roster/internal/menu"
	"github.com/aanand-mishra/roster/internal/menu/handlers/student"
	"github.com/aanand-mishra/roster/internal/storage/memory"
)

const title = "Student Record Management System"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr (or log_file) so they never interleave with the
	// menu on stdout.
	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		slog.Error("failed to open log file",
			slog.String("path", cfg.LogFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLog()

	log := setupLogger(cfg.Env, logOut)
	slog.SetDefault(log)

	log.Info("starting roster",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store := memory.New()

	if cfg.Autoload {
		autoload(log, store, cfg.DataFile)
	}

	// ── 4. Build and run the menu ─────────────────────────────────────────
	term := menu.OpenTerminal(cfg.HistoryFile)
	m := menu.New(title, term, os.Stdout, student.Commands(store, cfg.DataFile))

	runErr := m.Run()

	if err := term.Close(); err != nil {
		log.Error("failed to restore terminal", slog.String("error", err.Error()))
	}

	if runErr != nil {
		log.Error("menu stopped with an error", slog.String("error", runErr.Error()))
		closeLog()
		os.Exit(1)
	}

	log.Info("roster stopped", slog.Int("students", store.Len()))
}

// autoload loads path into store if the file exists. A missing file is
// normal on first run; any other failure is logged and the session starts
// empty.
func autoload(log *slog.Logger, store *memory.Store, path string) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Info("no data file to autoload", slog.String("path", path))
		return
	}

	if err := store.LoadFromFile(path); err != nil {
		log.Error("autoload failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}

	log.Info("data file loaded",
		slog.String("path", path),
		slog.Int("students", store.Len()))
}

// openLogOutput returns the writer logs go to and a func that releases it.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { f.Close() }, nil
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvProd:
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case config.EnvStaging:
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
