// Package config provides shared configuration types for sqlconnect.
// This package is decoupled from CLI concerns so library callers can
// describe a connection target the same way the CLI does.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // informix, postgres, sqlserver

	// Driver overrides the database/sql driver name (informix only)
	Driver string `koanf:"driver"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Schema   string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g., informix locale and codeset)
	Params map[string]any `koanf:"params"`
}

// DefaultSchemaForType returns the default schema for a database type.
// Types whose dialect has no default schema (informix) return "".
func DefaultSchemaForType(dbType string) string {
	if d, err := dialect.Lookup(dbType); err == nil {
		return d.DefaultSchema()
	}
	return ""
}

// Validate checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("invalid port %d", t.Port)
	}

	return nil
}

// ToAdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) ToAdapterConfig() core.AdapterConfig {
	return core.AdapterConfig{
		Type:     strings.ToLower(t.Type),
		Driver:   t.Driver,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
}
