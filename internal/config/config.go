package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultParallelism bounds concurrent node mutations per batch.
const DefaultParallelism = 4

// Config represents the flat autofix configuration.
type Config struct {
	Version          string `json:"version"`
	DatabasePath     string `json:"database_path,omitempty"`      // defaults to ~/.autofix/autofix.db
	DesignAPIBaseURL string `json:"design_api_base_url"`          // node inspect/mutate endpoint
	ScoreAPIBaseURL  string `json:"score_api_base_url,omitempty"` // defaults to the design API URL
	ActorID          string `json:"actor_id,omitempty"`           // attributed on history records
	Parallelism      int    `json:"parallelism,omitempty"`        // concurrent mutations per batch
}

// LoadConfig reads .autofix/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".autofix", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// SaveConfig writes config.json to directory.
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".autofix")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .autofix dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the config written by `autofix init`.
func DefaultConfig(designAPIBaseURL string) *Config {
	cfg := &Config{
		Version:          "1",
		DesignAPIBaseURL: designAPIBaseURL,
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.ScoreAPIBaseURL == "" {
		cfg.ScoreAPIBaseURL = cfg.DesignAPIBaseURL
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = DefaultParallelism
	}
}
