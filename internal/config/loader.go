package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the config file looked up in the working directory
	ProjectConfigFile = "todochat.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/todochat"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
	home   func() (string, error)
	cwd    func() (string, error)
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, home: os.UserHomeDir, cwd: os.Getwd}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/todochat/config.yaml)
// 3. Project config (todochat.yaml in the working directory)
// 4. Explicit file (--config), if given
// Flags are merged on top by the caller.
func (l *Loader) Load(explicit string) (*Config, error) {
	config := DefaultConfig()

	if p := l.userConfigPath(); p != "" {
		l.mergeFile(config, p)
	}
	if p := l.projectConfigPath(); p != "" {
		l.mergeFile(config, p)
	}
	if explicit != "" {
		other, err := LoadFromFile(explicit)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", explicit))
		config.Merge(other)
	}

	return config, nil
}

func (l *Loader) mergeFile(config *Config, path string) {
	other, err := LoadFromFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load config", slog.String("path", path), slog.String("error", err.Error()))
		}
		return
	}
	l.logger.Debug("Loaded config", slog.String("path", path))
	config.Merge(other)
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() (string, error) {
	path := l.userConfigPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := DefaultConfig().SaveToFile(path); err != nil {
		return "", err
	}

	l.logger.Info("Created default user config", slog.String("path", path))
	return path, nil
}

func (l *Loader) userConfigPath() string {
	home, err := l.home()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

func (l *Loader) projectConfigPath() string {
	cwd, err := l.cwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ProjectConfigFile)
}
