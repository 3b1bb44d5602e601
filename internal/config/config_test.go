package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/focusline/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FOCUSLINE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Session.UserID)
	require.Equal(t, 3, cfg.Session.TransitionSeconds)
	require.Equal(t, 25, cfg.Session.PomodoroMinutes)
	require.True(t, cfg.Database.SeedDemo)
	require.NotEmpty(t, cfg.Database.Path)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/tmp/x.db"
seed_demo = false

[session]
user_id = "jask"
transition_seconds = 5
`), 0o644))
	t.Setenv("FOCUSLINE_CONFIG", path)
	t.Setenv("FOCUSLINE_SESSION_POMODORO_MINUTES", "50")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.db", cfg.Database.Path)
	require.False(t, cfg.Database.SeedDemo)
	require.Equal(t, "jask", cfg.Session.UserID)
	require.Equal(t, 5, cfg.Session.TransitionSeconds)
	require.Equal(t, 50, cfg.Session.PomodoroMinutes)
}

func TestLoadRejectsBadTimings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[session]
pomodoro_minutes = 0
`), 0o644))
	t.Setenv("FOCUSLINE_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "pomodoro_minutes")
}

func TestLoadShortcutsMissingFileIsFine(t *testing.T) {
	overrides, err := LoadShortcuts(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Nil(t, overrides)
}

func TestLoadShortcuts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[shortcut]]
id = "task.complete"
keys = ["x"]

[[shortcut]]
id = "lock.toggle"
keys = ["f2"]
`), 0o644))

	overrides, err := LoadShortcuts(path)
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	require.Equal(t, engine.Override{ID: "task.complete", Keys: []string{"x"}}, overrides[0])
}

func TestLoadShortcutsRejectsUnknownID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[shortcut]]
id = "task.explode"
keys = ["x"]
`), 0o644))

	_, err := LoadShortcuts(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown binding id")
}
