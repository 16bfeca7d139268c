// Package config handles configuration loading and validation for
// weekplan.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in action names for TUI keybindings.
const (
	ActionToggleDone = "toggle-done"
	ActionMoveUp     = "move-up"
	ActionMoveDown   = "move-down"
	ActionUnpin      = "unpin"
	ActionSearch     = "search"
	ActionQuit       = "quit"
)

// defaultKeybindings provides built-in keybindings that users can
// override.
var defaultKeybindings = map[string]string{
	" ": ActionToggleDone,
	"K": ActionMoveUp,
	"J": ActionMoveDown,
	"p": ActionUnpin,
	"/": ActionSearch,
	"q": ActionQuit,
}

// Config holds the application configuration.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Reminders   ReminderConfig    `yaml:"reminders"`
	Keybindings map[string]string `yaml:"keybindings"`
	DataDir     string            `yaml:"-"` // set by caller, not from config file
}

// LogConfig controls logger construction.
type LogConfig struct {
	// Level is a zerolog level name; empty means warn.
	Level string `yaml:"level"`
	// File appends JSON logs to a path; empty logs to stderr.
	File string `yaml:"file"`
}

// ReminderConfig holds reminder defaults.
type ReminderConfig struct {
	// DefaultLead is the lead time in minutes applied by `new` when a
	// due time is given without an explicit lead.
	DefaultLead int `yaml:"default_lead"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: "warn",
		},
		Reminders: ReminderConfig{
			DefaultLead: 15,
		},
		Keybindings: map[string]string{},
	}
}

// Load reads configuration from the given path and sets the data
// directory. If configPath is empty or doesn't exist, returns
// defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration
// options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// mergeKeybindings merges user keybindings into defaults. User
// keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]string) map[string]string {
	result := make(map[string]string, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Reminders.DefaultLead < 0 {
		return fmt.Errorf("reminders.default_lead cannot be negative")
	}

	for key, action := range c.Keybindings {
		if !isValidAction(action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, action)
		}
	}

	return nil
}

func isValidAction(action string) bool {
	switch action {
	case ActionToggleDone, ActionMoveUp, ActionMoveDown, ActionUnpin, ActionSearch, ActionQuit:
		return true
	}
	return false
}

// KeyFor returns the first key bound to the given action. Used for
// help text; dispatch goes the other way through Keybindings.
func (c *Config) KeyFor(action string) string {
	for key, a := range c.Keybindings {
		if a == action {
			return key
		}
	}
	return ""
}
