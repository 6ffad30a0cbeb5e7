// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order for the file path):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. No file at all: values come from environment variables and defaults
//
// Command-line flags such as --data-file override whatever the file or
// the environment said.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/pflag"
)

// Valid values of Config.Env.
const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

var (
	errConfigFileNotFound = errors.New("config file does not exist")
	errInvalidEnv         = errors.New("env must be one of dev, staging, prod")
	errDataFileEmpty      = errors.New("data_file cannot be empty")
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// DataFile is the roster file used when save/load is asked for
	// without a path, and by Autoload.
	DataFile string `yaml:"data_file" env:"DATA_FILE" env-default:"students.txt"`

	// Autoload loads DataFile at start-up when it exists.
	Autoload bool `yaml:"autoload" env:"AUTOLOAD" env-default:"false"`

	// Prompt holds settings for the interactive menu.
	Prompt `yaml:"prompt"`

	// LogFile receives the structured log. Empty means stderr, which
	// keeps log lines out of the menu's stdout.
	LogFile string `yaml:"log_file" env:"LOG_FILE"`
}

// Prompt holds settings specific to the line editor.
// Nested under prompt: in the YAML file.
type Prompt struct {
	// HistoryFile persists entered lines between sessions. Empty disables
	// history.
	HistoryFile string `yaml:"history_file" env:"PROMPT_HISTORY_FILE"`
}

// Load reads the configuration for the given command-line arguments
// (without the program name).
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("roster", pflag.ContinueOnError)
	configFlag := flags.String("config", "", "Path to the configuration YAML file")
	dataFile := flags.String("data-file", "", "Roster file used by save/load when no path is given")
	autoload := flags.Bool("autoload", false, "Load the data file at start-up if it exists")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	if configPath == "" {
		configPath = *configFlag
	}

	var cfg Config

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}

		// cleanenv.ReadConfig reads the YAML file, then applies env:"..."
		// overrides and env-default values.
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else {
		// ── Source 3: environment only ───────────────────────────────
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from env: %w", err)
		}
	}

	if flags.Changed("data-file") {
		cfg.DataFile = *dataFile
	}
	if flags.Changed("autoload") {
		cfg.Autoload = *autoload
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad is Load for main: it exits the program on failure, so callers
// do not need to check a returned error.
func MustLoad() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("config: %s", err.Error())
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDev, EnvStaging, EnvProd:
	default:
		return fmt.Errorf("%w: got %q", errInvalidEnv, c.Env)
	}

	if c.DataFile == "" {
		return errDataFileEmpty
	}

	return nil
}
