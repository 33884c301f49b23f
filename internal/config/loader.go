package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FLOWBOT"

	// EnvConfigPath names an explicit config file.
	EnvConfigPath = "FLOWBOT_CONFIG_PATH"

	appName        = "flowbot"
	configFileName = "config.yaml"
	localFileName  = "flowbot.yaml"
)

// Loader handles Viper-based configuration loading.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a [Loader] with defaults and environment bindings in
// place.
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases for the settings people override most.
	_ = v.BindEnv("owner.default", "FLOWBOT_OWNER_DEFAULT", "FLOWBOT_OWNER")
	_ = v.BindEnv("seed.path", "FLOWBOT_SEED_PATH")

	return &Loader{v: v}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("owner.default", cfg.Owner.Default)
	v.SetDefault("session.thinking_delay", cfg.Session.ThinkingDelay)
	v.SetDefault("session.highlight_ttl", cfg.Session.HighlightTTL)
	v.SetDefault("session.greeting", cfg.Session.Greeting)
	v.SetDefault("seed.path", cfg.Seed.Path)
	v.SetDefault("seed.builtin", cfg.Seed.Builtin)
	v.SetDefault("output.width", cfg.Output.Width)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Load discovers and loads the configuration.
//
// It uses the file named by FLOWBOT_CONFIG_PATH if set, otherwise the first
// existing file among the user config path and ./flowbot.yaml. With no file
// at all, defaults plus environment overrides are returned.
func (l *Loader) Load() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return l.LoadFromFile(path)
	}

	var candidates []string
	if p, err := DefaultConfigPath(); err == nil {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, localFileName)

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return l.LoadFromFile(p)
		}
	}
	return l.unmarshal()
}

// LoadFromFile loads configuration from the given file. The format is
// inferred from the extension (yaml, yml, json, toml).
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if cfg.Output.Width <= 0 {
		return nil, fmt.Errorf("output.width must be positive, got %d", cfg.Output.Width)
	}
	if cfg.Session.ThinkingDelay < 0 || cfg.Session.HighlightTTL < 0 {
		return nil, fmt.Errorf("session durations must not be negative")
	}
	return &cfg, nil
}

// ConfigDir returns the platform-standard flowbot config directory.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// DefaultConfigPath returns the path of the user config file.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
