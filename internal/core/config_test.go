package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(TokenEnv, "")

	config, err := ReadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "rpcdeck", "profiles.db"), config.DBPath)
	assert.Equal(t, "dracula", config.HighlightStyle)
	assert.False(t, config.StrictValidation)
}

func TestWriteAndReadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(TokenEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	err := WriteConfig(path, Config{Version: 1, GitHubToken: "abc", StrictValidation: true, HighlightStyle: "monokai"})
	require.NoError(t, err)

	config, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", config.GitHubToken)
	assert.True(t, config.StrictValidation)
	assert.Equal(t, "monokai", config.HighlightStyle)
	assert.NotEmpty(t, config.DBPath)

	t.Setenv(TokenEnv, "from-env")
	config, err = ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.GitHubToken)
}

func TestReadConfigInvalidJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := ReadConfig(path)
	assert.Error(t, err)
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rpcdeck.log")
	logger, err := NewLogger(path, true)
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	assert.NotNil(t, OrNop(nil))
}
