package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Version   int             `toml:"version"`
	Database  DatabaseConfig  `toml:"database"`
	Analysis  AnalysisConfig  `toml:"analysis"`
	Analyzer  AnalyzerConfig  `toml:"analyzer"`
	Artifacts ArtifactsConfig `toml:"artifacts"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type AnalysisConfig struct {
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	BaseURL        string `toml:"base_url"`
	MaxDailyCents  int    `toml:"max_daily_cents"`
	EntriesPerRun  int    `toml:"entries_per_run"`
	LookbackDays   int    `toml:"lookback_days"`
	AggregateDays  int    `toml:"aggregate_days"`
	DedupWindowHrs int    `toml:"dedup_window_hours"`
}

type AnalyzerConfig struct {
	Schedule string `toml:"schedule"`
	Timezone string `toml:"timezone"`
}

type ArtifactsConfig struct {
	Dir string `toml:"dir"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	dataDir, _ := DataDir()
	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Path: filepath.Join(dataDir, "neuraladapt.db"),
		},
		Analysis: AnalysisConfig{
			Model:          "gpt-4o-mini",
			BaseURL:        "https://api.openai.com/v1",
			MaxDailyCents:  50,
			EntriesPerRun:  5,
			LookbackDays:   3,
			AggregateDays:  7,
			DedupWindowHrs: 24,
		},
		Analyzer: AnalyzerConfig{
			Schedule: "0 6 * * *",
			Timezone: "Local",
		},
		Artifacts: ArtifactsConfig{
			Dir: filepath.Join(dataDir, "artifacts"),
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "neuraladapt"), nil
}

// DataDir returns the directory for the database and generated artifacts
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".neuraladapt"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from disk and applies environment overrides
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return &cfg, nil
}

// LoadOrDefault returns the on-disk config, falling back to defaults when the
// file does not exist yet.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = Default()
		cfg.applyEnv()
	}
	return cfg
}

// applyEnv overrides secrets and paths from the environment. The API key in
// particular is usually supplied via env rather than written to disk.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Analysis.APIKey = v
	}
	if v := os.Getenv("NEURALADAPT_DB"); v != "" {
		c.Database.Path = v
	}
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
