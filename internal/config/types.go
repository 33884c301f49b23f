// Package config provides configuration loading and management for flowbot.
//
// Configuration is loaded using Viper, supporting YAML (or JSON) config files
// and environment variable overrides. The defaults work out of the box: an
// empty config file yields the demo board, a short thinking delay, and a
// console logger at info level.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [SessionConfig] controls chat pacing and highlight decay
//   - [SeedConfig] selects the initial board
//
// Configuration priority (highest to lowest):
//  1. Environment variables (FLOWBOT_ prefix, e.g. FLOWBOT_LOG_LEVEL)
//  2. Config file specified by FLOWBOT_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/flowbot/config.yaml
//     - macOS: ~/Library/Application Support/flowbot/config.yaml
//     - Windows: %APPDATA%\flowbot\config.yaml
//  4. ./flowbot.yaml
//  5. [DefaultConfig] defaults
package config

import (
	"time"

	"flowbot/internal/workflow"
)

// DefaultGreeting is the system message that opens every chat session.
const DefaultGreeting = "I'm Flowbot, your workflow copilot. Ask me to create workflows, add steps, or run them when you're ready."

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used
// throughout the application. Use [DefaultConfig] to get sensible defaults.
type Config struct {
	// Owner contains defaults for workflow ownership.
	Owner OwnerConfig `mapstructure:"owner"`

	// Session contains chat session pacing settings.
	Session SessionConfig `mapstructure:"session"`

	// Seed selects the board a session starts from.
	Seed SeedConfig `mapstructure:"seed"`

	// Output contains terminal rendering settings.
	Output OutputConfig `mapstructure:"output"`

	// Log contains logger settings.
	Log LogConfig `mapstructure:"log"`
}

// OwnerConfig contains workflow ownership defaults.
type OwnerConfig struct {
	// Default is the owner assigned to newly created workflows.
	// Default: "Unassigned"
	Default string `mapstructure:"default"`
}

// SessionConfig controls how a chat session paces and decorates turns.
type SessionConfig struct {
	// ThinkingDelay is the pause before each command is interpreted.
	// Set to 0 to answer immediately. Default: 160ms
	ThinkingDelay time.Duration `mapstructure:"thinking_delay"`

	// HighlightTTL is how long a highlighted workflow stays highlighted
	// before the board falls back to the selected workflow. Default: 1.8s
	HighlightTTL time.Duration `mapstructure:"highlight_ttl"`

	// Greeting is the system message shown when the session starts.
	Greeting string `mapstructure:"greeting"`
}

// SeedConfig selects the initial board.
type SeedConfig struct {
	// Path is a YAML board file to start from. When empty, Builtin decides.
	// FLOWBOT_SEED_PATH overrides this value.
	Path string `mapstructure:"path"`

	// Builtin starts from the demo board when no Path is set.
	// When false and no Path is set, the board starts empty. Default: true
	Builtin bool `mapstructure:"builtin"`
}

// OutputConfig contains terminal rendering settings.
type OutputConfig struct {
	// Width is the column width boards and replies are wrapped to.
	// Default: 80
	Width int `mapstructure:"width"`

	// Color enables ANSI styling. Default: true
	Color bool `mapstructure:"color"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: "info"
	Level string `mapstructure:"level"`

	// Format is "console" or "json". Default: "console"
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Owner: OwnerConfig{
			Default: workflow.DefaultOwner,
		},
		Session: SessionConfig{
			ThinkingDelay: 160 * time.Millisecond,
			HighlightTTL:  1800 * time.Millisecond,
			Greeting:      DefaultGreeting,
		},
		Seed: SeedConfig{
			Builtin: true,
		},
		Output: OutputConfig{
			Width: 80,
			Color: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
