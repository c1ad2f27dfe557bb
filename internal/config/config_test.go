package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.DebounceMs)
	assert.Equal(t, 10, cfg.ScanPollMs)
	assert.Equal(t, 100, cfg.MaxResults)
	assert.Equal(t, 1000, cfg.MaxQueryLength)
	assert.Equal(t, 50, cfg.PreviewCacheSize)
	assert.Equal(t, 400, cfg.MaxPreviewLines)
	assert.Equal(t, int64(1<<20), cfg.MaxPreviewBytes)
	assert.True(t, cfg.ShowGitStatus)
}

func TestValidateFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultDebounceMs, cfg.DebounceMs)
	assert.Equal(t, DefaultScanPollMs, cfg.ScanPollMs)
	assert.Equal(t, DefaultMaxResults, cfg.MaxResults)
	assert.Equal(t, DefaultMaxQueryLength, cfg.MaxQueryLength)
	assert.Equal(t, DefaultPreviewCacheSize, cfg.PreviewCacheSize)
	assert.Equal(t, DefaultMaxPreviewLines, cfg.MaxPreviewLines)
	assert.Equal(t, int64(DefaultMaxPreviewBytes), cfg.MaxPreviewBytes)
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := &Config{DebounceMs: 250, MaxResults: 5}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 250, cfg.DebounceMs)
	assert.Equal(t, 5, cfg.MaxResults)
}

func TestValidateRejectsNegativeIntervals(t *testing.T) {
	assert.Error(t, (&Config{DebounceMs: -1}).Validate())
	assert.Error(t, (&Config{ScanPollMs: -5}).Validate())
}

func TestIntervals(t *testing.T) {
	cfg := &Config{DebounceMs: 25, ScanPollMs: 40}

	assert.Equal(t, 25*time.Millisecond, cfg.DebounceInterval())
	assert.Equal(t, 40*time.Millisecond, cfg.ScanPollInterval())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewService()

	cfg := DefaultConfig()
	cfg.DebounceMs = 42
	cfg.ShowGitStatus = false

	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 42, loaded.DebounceMs)
	assert.False(t, loaded.ShowGitStatus)
	assert.Equal(t, cfg.MaxResults, loaded.MaxResults)
}

func TestLoadFromMissingPath(t *testing.T) {
	svc := NewService()
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("debounce_ms = [broken"), 0644))

	svc := NewService()
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("debounce_ms = -10"), 0644))

	svc := NewService()
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}
