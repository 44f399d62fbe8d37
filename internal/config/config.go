// Package config provides configuration loading and management for todochat.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete todochat configuration
type Config struct {
	Data DataConfig `yaml:"data"`
	Chat ChatConfig `yaml:"chat"`
	UI   UIConfig   `yaml:"ui"`
	Log  LogConfig  `yaml:"log"`
}

// DataConfig configures where state is stored
type DataConfig struct {
	// Dir holds the state file and its lock (default: ~/.todochat)
	Dir string `yaml:"dir"`
}

// ChatConfig configures the chat view
type ChatConfig struct {
	// Users are the identities messages can be sent as; the first is the default
	Users []string `yaml:"users"`
	// DefaultRoom is joined when no room name is given
	DefaultRoom string `yaml:"default_room"`
}

// UIConfig configures terminal output
type UIConfig struct {
	// Theme is one of classic, neon, mono
	Theme string `yaml:"theme"`
	// Group splits list output into pending and done
	Group bool `yaml:"group"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

var (
	validThemes = []string{"classic", "neon", "mono"}
	validLevels = []string{"debug", "info", "warn", "error"}
)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: defaultDataDir(),
		},
		Chat: ChatConfig{
			Users:       []string{"User1", "User2"},
			DefaultRoom: "General",
		},
		UI: UIConfig{
			Theme: "classic",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todochat"
	}
	return filepath.Join(home, ".todochat")
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if len(c.Chat.Users) == 0 {
		return fmt.Errorf("chat.users must name at least one user")
	}
	for _, u := range c.Chat.Users {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("chat.users must not contain empty names")
		}
	}
	if strings.TrimSpace(c.Chat.DefaultRoom) == "" {
		return fmt.Errorf("chat.default_room is required")
	}
	if !contains(validThemes, c.UI.Theme) {
		return fmt.Errorf("ui.theme must be one of %s", strings.Join(validThemes, ", "))
	}
	if !contains(validLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %s", strings.Join(validLevels, ", "))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SlogLevel maps Log.Level to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Data.Dir != "" {
		c.Data.Dir = other.Data.Dir
	}

	if len(other.Chat.Users) > 0 {
		c.Chat.Users = other.Chat.Users
	}
	if other.Chat.DefaultRoom != "" {
		c.Chat.DefaultRoom = other.Chat.DefaultRoom
	}

	if other.UI.Theme != "" {
		c.UI.Theme = other.UI.Theme
	}
	if other.UI.Group {
		c.UI.Group = true
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
