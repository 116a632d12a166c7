// Package config provides configuration management for the sqlconnect CLI.
//
// This package extends the shared target configuration from internal/config
// with CLI-specific fields and the koanf-based loader.
package config

import (
	"fmt"
	"sort"

	sharedcfg "github.com/leapstack-labs/sqlconnect/internal/config"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = sharedcfg.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	// Target names the entry of Targets that commands connect to
	Target    string                   `koanf:"target"`
	Targets   map[string]*TargetConfig `koanf:"targets"`
	Output    string                   `koanf:"output"` // table|json|yaml
	Verbose   bool                     `koanf:"verbose"`
	BatchSize int                      `koanf:"batch_size"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultOutput    = sharedcfg.DefaultOutput
	DefaultBatchSize = sharedcfg.DefaultBatchSize
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (want table, json or yaml)", c.Output)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	return nil
}

// TargetNames returns the configured target names (sorted).
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveTarget returns the selected target, validated.
// When no target is selected and exactly one is configured, that one is used.
func (c *Config) ActiveTarget() (*TargetConfig, error) {
	name := c.Target
	if name == "" {
		if len(c.Targets) != 1 {
			return nil, fmt.Errorf("no target selected\nAvailable targets: %v\nHint: Use --target or set target in sqlconnect.yaml", c.TargetNames())
		}
		name = c.TargetNames()[0]
	}

	t, ok := c.Targets[name]
	if !ok || t == nil {
		return nil, fmt.Errorf("unknown target %q\nAvailable targets: %v", name, c.TargetNames())
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", name, err)
	}
	return t, nil
}
