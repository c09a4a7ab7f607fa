package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/testdrop/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testdrop.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "off", cfg.Log.Level)
	assert.False(t, cfg.Track.Callers)
	assert.Contains(t, DefaultsContent(), "[track]")
}

func TestLoadFrom(t *testing.T) {
	t.Run("file_overrides_defaults", func(t *testing.T) {
		path := writeConfig(t, `
[log]
level = "debug"

[track]
callers = true
`)
		cfg, err := LoadFrom(path, nil)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Track.Callers)
	})

	t.Run("partial_file_keeps_other_defaults", func(t *testing.T) {
		path := writeConfig(t, `
[track]
callers = true
`)
		cfg, err := LoadFrom(path, nil)
		require.NoError(t, err)

		assert.Equal(t, "off", cfg.Log.Level)
		assert.True(t, cfg.Track.Callers)
	})

	t.Run("environment_overrides_file", func(t *testing.T) {
		path := writeConfig(t, `
[log]
level = "debug"
`)
		t.Setenv("TESTDROP_LOG_LEVEL", "error")
		t.Setenv("TESTDROP_TRACK_CALLERS", "true")

		cfg, err := LoadFrom(path, nil)
		require.NoError(t, err)

		assert.Equal(t, "error", cfg.Log.Level)
		assert.True(t, cfg.Track.Callers)
	})

	t.Run("overrides_win", func(t *testing.T) {
		t.Setenv("TESTDROP_TRACK_CALLERS", "true")

		cfg, err := LoadFrom("", map[string]interface{}{
			"track.callers": false,
			"log.level":     "info",
		})
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Track.Callers)
	})

	t.Run("missing_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.toml")

		_, err := LoadFrom(path, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		assert.Equal(t, path, errors.GetErrorDetails(err)["path"])
	})

	t.Run("invalid_toml", func(t *testing.T) {
		path := writeConfig(t, `[log
level = `)

		_, err := LoadFrom(path, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("invalid_level", func(t *testing.T) {
		path := writeConfig(t, `
[log]
level = "shouting"
`)
		_, err := LoadFrom(path, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		assert.Equal(t, "shouting", errors.GetErrorDetails(err)["level"])
	})
}

func TestLoad_UsesConfigFileFromEnvironment(t *testing.T) {
	path := writeConfig(t, `
[track]
callers = true
`)
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Track.Callers)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("TESTDROP_LOG_LEVEL"))
	assert.Equal(t, "track.callers", envKey("TESTDROP_TRACK_CALLERS"))
}
