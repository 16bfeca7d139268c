package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 15, cfg.Reminders.DefaultLead)
	assert.Equal(t, ActionQuit, cfg.Keybindings["q"])
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/tmp/data")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
reminders:
  default_lead: 30
keybindings:
  "x": quit
`), 0o644))

	cfg, err := Load(path, "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Reminders.DefaultLead)
	assert.Equal(t, ActionQuit, cfg.Keybindings["x"])
	// Defaults survive unless the same key is overridden.
	assert.Equal(t, ActionUnpin, cfg.Keybindings["p"])
}

func TestLoadInvalid(t *testing.T) {
	t.Run("bad action", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("keybindings:\n  \"z\": explode\n"), 0o644))

		_, err := Load(path, "/tmp/data")
		assert.Error(t, err)
	})

	t.Run("negative lead", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("reminders:\n  default_lead: -5\n"), 0o644))

		_, err := Load(path, "/tmp/data")
		assert.Error(t, err)
	})

	t.Run("empty data dir", func(t *testing.T) {
		_, err := Load("", "")
		assert.Error(t, err)
	})
}

func TestKeyFor(t *testing.T) {
	cfg, err := Load("", "/tmp/data")
	require.NoError(t, err)
	assert.Equal(t, "p", cfg.KeyFor(ActionUnpin))
	assert.Empty(t, cfg.KeyFor("unknown"))
}
