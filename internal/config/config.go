// Package config provides Viper-based configuration loading for the shell.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	// Prompt is the text printed before each blocking read.
	Prompt string `mapstructure:"prompt"`
	// HistoryPath is the history file location; empty selects the
	// session-default path under the user's home directory.
	HistoryPath string `mapstructure:"history_path"`
	// HistoryCapacity is the fixed size of the history ring.
	HistoryCapacity int `mapstructure:"history_capacity"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds starting game-state settings.
type GameConfig struct {
	// SavePath is the YAML save file location.
	SavePath string `mapstructure:"save_path"`
	// StartingMana is the necromancer's initial mana pool.
	StartingMana int `mapstructure:"starting_mana"`
	// StartingSouls is the initial soul energy reserve.
	StartingSouls int `mapstructure:"starting_souls"`
}

// Config is the top-level application configuration.
type Config struct {
	Shell   ShellConfig   `mapstructure:"shell"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateShell(c.Shell); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateShell(s ShellConfig) error {
	var errs []string
	if s.Prompt == "" {
		errs = append(errs, "shell.prompt must not be empty")
	}
	if s.HistoryCapacity < 1 {
		errs = append(errs, fmt.Sprintf("shell.history_capacity must be >= 1, got %d", s.HistoryCapacity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.StartingMana < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_mana must be >= 0, got %d", g.StartingMana))
	}
	if g.StartingSouls < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_souls must be >= 0, got %d", g.StartingSouls))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path skips the
// file read and yields defaults plus environment overrides.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with NECROSHELL_ prefix
	v.SetEnvPrefix("NECROSHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("shell.prompt", "necro> ")
	v.SetDefault("shell.history_path", "")
	v.SetDefault("shell.history_capacity", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.save_path", "necroshell_save.yaml")
	v.SetDefault("game.starting_mana", 100)
	v.SetDefault("game.starting_souls", 0)
}
