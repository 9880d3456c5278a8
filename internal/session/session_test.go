package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Equal(t, DefaultHistoryFile, cfg.HistoryFile)
	_, forced := cfg.ColorForced()
	assert.False(t, forced)
}

func TestLoad_OverridesMergeOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tarnishrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \">> \"\ncolor: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ">> ", cfg.Prompt)
	// Fields the file leaves out keep their defaults.
	assert.Equal(t, DefaultHistoryFile, cfg.HistoryFile)
	assert.Equal(t, DefaultBanner, cfg.Banner)

	enabled, forced := cfg.ColorForced()
	assert.True(t, forced)
	assert.False(t, enabled)
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tarnishrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("banner: [unclosed"), 0o644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
}
