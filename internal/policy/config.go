// Package policy holds the immutable engine configuration: endpoint,
// size bounds, snapshot and logging switches. Built once, shared
// read-only across invocations.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the recognized options.
const (
	DefaultMaxTextLength = 500
	DefaultTimeoutMs     = 3000
)

// Policy is the engine configuration. Zero values are filled in by
// Normalize; a Policy is never mutated after construction.
type Policy struct {
	Endpoint         string   `yaml:"endpoint"`
	Token            string   `yaml:"token"`
	MaxTextLength    int      `yaml:"max_text_length"`
	TimeoutMs        int      `yaml:"timeout_ms"`
	IncludeRawUpdate bool     `yaml:"include_raw_update"`
	Log              bool     `yaml:"log"`
	ExtraMediaKeys   []string `yaml:"extra_media_keys"`
}

// Default returns a Policy carrying the documented defaults.
func Default() *Policy {
	return &Policy{
		MaxTextLength: DefaultMaxTextLength,
		TimeoutMs:     DefaultTimeoutMs,
	}
}

// Normalize fills unset numeric fields with defaults.
func (p *Policy) Normalize() {
	if p.MaxTextLength <= 0 {
		p.MaxTextLength = DefaultMaxTextLength
	}
	if p.TimeoutMs <= 0 {
		p.TimeoutMs = DefaultTimeoutMs
	}
}

// Timeout returns the delivery timeout as a duration.
func (p *Policy) Timeout() time.Duration {
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

// Load reads a Policy from a YAML file. An empty path falls back to
// ~/.hippo/policy.yaml. A missing file returns defaults; invalid YAML
// is an error.
func Load(path string) (*Policy, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".hippo", "policy.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read policy config: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy config: %w", err)
	}
	p.Normalize()
	return &p, nil
}

// Save writes the Policy as YAML, creating parent directories.
func (p *Policy) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal policy config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write policy config: %w", err)
	}
	return nil
}
