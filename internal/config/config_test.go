package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"User1", "User2"}, cfg.Chat.Users)
	assert.Equal(t, "General", cfg.Chat.DefaultRoom)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Data.Dir)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "missing data dir", modify: func(c *Config) { c.Data.Dir = "" }, wantErr: true},
		{name: "no users", modify: func(c *Config) { c.Chat.Users = nil }, wantErr: true},
		{name: "blank user", modify: func(c *Config) { c.Chat.Users = []string{"User1", " "} }, wantErr: true},
		{name: "blank room", modify: func(c *Config) { c.Chat.DefaultRoom = "" }, wantErr: true},
		{name: "unknown theme", modify: func(c *Config) { c.UI.Theme = "disco" }, wantErr: true},
		{name: "unknown level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "upper case level", modify: func(c *Config) { c.Log.Level = "DEBUG" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
	} {
		cfg.Log.Level = in
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
data:
  dir: /tmp/todochat-test
chat:
  users: [alice, bob]
  default_room: lobby
ui:
  theme: neon
  group: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/todochat-test", cfg.Data.Dir)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Chat.Users)
	assert.Equal(t, "lobby", cfg.Chat.DefaultRoom)
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.True(t, cfg.UI.Group)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("chat: [unclosed"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.UI.Theme = "mono"

	require.NoError(t, cfg.SaveToFile(path))
	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{
		Chat: ChatConfig{DefaultRoom: "lobby"},
		UI:   UIConfig{Group: true},
	})

	assert.Equal(t, "lobby", cfg.Chat.DefaultRoom)
	assert.Equal(t, []string{"User1", "User2"}, cfg.Chat.Users, "zero values must not override")
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.True(t, cfg.UI.Group)

	cfg.Merge(nil)
	assert.Equal(t, "lobby", cfg.Chat.DefaultRoom)
}

func newTestLoader(t *testing.T) (*Loader, string, string, *bytes.Buffer) {
	t.Helper()
	home := t.TempDir()
	cwd := t.TempDir()
	var logs bytes.Buffer
	l := NewLoader(slog.New(slog.NewTextHandler(&logs, nil)))
	l.home = func() (string, error) { return home, nil }
	l.cwd = func() (string, error) { return cwd, nil }
	return l, home, cwd, &logs
}

func TestLoaderLayering(t *testing.T) {
	l, home, cwd, _ := newTestLoader(t)

	userPath := filepath.Join(home, UserConfigDir, UserConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0755))
	require.NoError(t, os.WriteFile(userPath, []byte("ui:\n  theme: neon\nchat:\n  default_room: user-room\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ProjectConfigFile), []byte("chat:\n  default_room: project-room\n"), 0644))

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("log:\n  level: debug\n"), 0644))

	cfg, err := l.Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.Equal(t, "project-room", cfg.Chat.DefaultRoom)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoaderWithoutFiles(t *testing.T) {
	l, _, _, logs := newTestLoader(t)

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Chat, cfg.Chat)
	assert.NotContains(t, logs.String(), "Failed to load config")
}

func TestLoaderWarnsOnBrokenLayer(t *testing.T) {
	l, _, cwd, logs := newTestLoader(t)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ProjectConfigFile), []byte("ui: [oops"), 0644))

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Contains(t, logs.String(), "Failed to load config")
}

func TestLoaderExplicitMissingFails(t *testing.T) {
	l, _, _, _ := newTestLoader(t)
	_, err := l.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	l, home, _, _ := newTestLoader(t)

	path, err := l.EnsureUserConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, UserConfigDir, UserConfigFile), path)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = l.EnsureUserConfig()
	require.NoError(t, err)
}
