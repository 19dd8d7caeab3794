package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okarlsson/gosh/internal/config"
)

func TestConfigPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := config.ConfigPath()
	assert.NoError(t, err)
	assert.Contains(t, path, ".gosh/config.yaml")
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultHistorySize, cfg.HistorySize)
	assert.Empty(t, cfg.Aliases)
}

func TestSaveAndLoad_Roundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := config.Default()
	cfg.HistorySize = 42
	cfg.Aliases = map[string]string{"ll": "ls -la"}
	require.NoError(t, config.Save(cfg))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.HistorySize)
	assert.Equal(t, "ls -la", loaded.Aliases["ll"])
}

func TestLoad_RepairsNonPositiveHistorySize(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := config.Default()
	cfg.HistorySize = 0
	require.NoError(t, config.Save(cfg))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultHistorySize, loaded.HistorySize)
}
