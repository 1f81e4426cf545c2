package config

import (
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Integration IntegrationConfig `yaml:"integration"`
	Sync        SyncConfig        `yaml:"sync"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// IntegrationConfig holds retry behavior for outbound record-system calls.
type IntegrationConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	LogRequests bool          `yaml:"log_requests"`
}

// SyncConfig holds adaptive resync interval settings. Interval values
// are milliseconds.
type SyncConfig struct {
	AdaptiveEnabled bool                          `yaml:"adaptive_enabled"`
	MinIntervalMs   int64                         `yaml:"min_interval_ms"`
	MaxIntervalMs   int64                         `yaml:"max_interval_ms"`
	BaseIntervals   map[string]int64              `yaml:"base_intervals"` // keyed by criticality level
	Criticality     map[string]domain.Criticality `yaml:"criticality"`    // category -> level overrides
}

// Default returns the configuration used when keys are absent from the
// config file.
func Default() AppConfig {
	return AppConfig{
		Server:  ServerConfig{Port: 8080},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Integration: IntegrationConfig{
			MaxAttempts: 3,
			BaseDelay:   1 * time.Second,
			LogRequests: true,
		},
		Sync: SyncConfig{
			AdaptiveEnabled: true,
			MinIntervalMs:   30_000,     // 30s
			MaxIntervalMs:   86_400_000, // 24h
			BaseIntervals: map[string]int64{
				string(domain.CriticalityCritical):     300_000,    // 5m
				string(domain.CriticalityDefault):      3_600_000,  // 1h
				string(domain.CriticalityNonEssential): 86_400_000, // 24h
			},
		},
	}
}
