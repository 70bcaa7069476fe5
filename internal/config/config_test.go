package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config and data directories at temp space so tests never
// touch the real home directory.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("NEURALADAPT_DB", "")
}

func TestDefault(t *testing.T) {
	isolate(t)
	cfg := Default()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "gpt-4o-mini", cfg.Analysis.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Analysis.BaseURL)
	assert.Equal(t, 5, cfg.Analysis.EntriesPerRun)
	assert.Equal(t, 3, cfg.Analysis.LookbackDays)
	assert.Equal(t, 7, cfg.Analysis.AggregateDays)
	assert.Equal(t, 24, cfg.Analysis.DedupWindowHrs)
	assert.Equal(t, "0 6 * * *", cfg.Analyzer.Schedule)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.NotEmpty(t, cfg.Artifacts.Dir)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Analysis.Model = "gpt-4o"
	cfg.Analyzer.Schedule = "30 7 * * *"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", loaded.Analysis.Model)
	assert.Equal(t, "30 7 * * *", loaded.Analyzer.Schedule)
	assert.Equal(t, cfg.Database.Path, loaded.Database.Path)
}

func TestLoadMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	isolate(t)
	cfg := LoadOrDefault()
	assert.Equal(t, Default().Analysis.Model, cfg.Analysis.Model)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NEURALADAPT_DB", "/tmp/override.db")

	require.NoError(t, Default().Save())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Analysis.APIKey)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}
