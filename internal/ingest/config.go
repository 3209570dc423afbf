// Package ingest runs the collector: an HTTP server that authenticates,
// validates, and stores incoming telemetry records.
package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds collector server configuration.
type Config struct {
	Listen string `yaml:"listen"`
	Token  string `yaml:"token"`
	DBPath string `yaml:"db_path"`
}

// DefaultConfig returns a local-only collector setup.
func DefaultConfig() *Config {
	return &Config{
		Listen: "127.0.0.1:8787",
		DBPath: "hippo-events.db",
	}
}

// LoadConfig reads collector configuration from a YAML file. A missing
// file returns defaults; invalid YAML is an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read collector config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse collector config: %w", err)
	}
	return cfg, nil
}
