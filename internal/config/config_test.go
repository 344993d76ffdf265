package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"job": "posting.txt",
		"max_attempts": 5,
		"highlight_count": 4,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "posting.txt", cfg.Job)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 4, cfg.HighlightCount)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_JobAndJobURLMutuallyExclusive(t *testing.T) {
	cfg := &Config{Job: "posting.txt", JobURL: "https://example.com/job"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_MaxAttemptsRange(t *testing.T) {
	assert.Error(t, (&Config{MaxAttempts: 11}).Validate())
	assert.NoError(t, (&Config{MaxAttempts: 3}).Validate())
}

func TestValidate_InvalidURL(t *testing.T) {
	err := (&Config{JobURL: "not a url"}).Validate()
	require.Error(t, err)
}

func TestValidate_ZeroValueIsValid(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
}

func TestMergeWithDefaults_FillsOnlyUnset(t *testing.T) {
	cfg := Config{Job: "mine.txt", MaxAttempts: 5}
	defaults := Config{Job: "default.txt", Library: "library.json", MaxAttempts: 3, HighlightCount: 5}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine.txt", merged.Job, "explicit values win")
	assert.Equal(t, 5, merged.MaxAttempts)
	assert.Equal(t, "library.json", merged.Library, "unset values fall back to defaults")
	assert.Equal(t, 5, merged.HighlightCount)
}

func TestMergeWithDefaults_DoesNotMutateReceiver(t *testing.T) {
	cfg := Config{}
	_ = cfg.MergeWithDefaults(Config{Library: "library.json"})

	assert.Empty(t, cfg.Library)
}
