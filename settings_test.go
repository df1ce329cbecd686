package portset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateSettings(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORTSET_SETTINGS", "")
	t.Setenv("PORTSET_CONFIG_PATH", "")
	t.Setenv("PORTSET_STATE_DIR", "")
	t.Setenv("PORTSET_ALLOW_MISSING", "")
}

func TestLoadSettingsDefaults(t *testing.T) {
	isolateSettings(t)

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigPath, s.ConfigPath)
	assert.False(t, s.AllowMissing)
	assert.Equal(t, "warn", s.LogLevel)
	assert.NotEmpty(t, s.StateDir)
}

func TestLoadSettingsFromYAML(t *testing.T) {
	isolateSettings(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("config_path: /etc/nginx/web.conf\nallow_missing: true\nlog_level: debug\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/nginx/web.conf", s.ConfigPath)
	assert.True(t, s.AllowMissing)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	isolateSettings(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("config_path: /from/yaml\n"), 0644))

	t.Setenv("PORTSET_SETTINGS", path)
	t.Setenv("PORTSET_CONFIG_PATH", "/from/env")
	t.Setenv("PORTSET_STATE_DIR", "/state")
	t.Setenv("PORTSET_ALLOW_MISSING", "true")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", s.ConfigPath)
	assert.Equal(t, "/state", s.StateDir)
	assert.True(t, s.AllowMissing)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		isolateSettings(t)
		_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		isolateSettings(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("config_path: [unterminated\n"), 0644))
		_, err := LoadSettings(path)
		assert.Error(t, err)
	})

	t.Run("bad bool env", func(t *testing.T) {
		isolateSettings(t)
		t.Setenv("PORTSET_ALLOW_MISSING", "maybe")
		_, err := LoadSettings("")
		assert.Error(t, err)
	})
}
