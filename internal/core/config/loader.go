package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file. Absent keys keep the
// defaults from Default().
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Sync.MinIntervalMs > cfg.Sync.MaxIntervalMs {
		return nil, fmt.Errorf("sync: min_interval_ms %d exceeds max_interval_ms %d",
			cfg.Sync.MinIntervalMs, cfg.Sync.MaxIntervalMs)
	}

	return &cfg, nil
}
