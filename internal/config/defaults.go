package config

import (
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
)

// Default configuration values.
const (
	DefaultBatchSize = 1000
	DefaultOutput    = "table"
)

// defaultPorts maps target types to their conventional listener port.
var defaultPorts = map[string]int{
	"informix":  9088,
	"postgres":  5432,
	"sqlserver": 1433,
}

// DefaultPortForType returns the conventional port for a database type, or 0.
func DefaultPortForType(dbType string) int {
	return defaultPorts[strings.ToLower(dbType)]
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}

	t.Type = strings.ToLower(t.Type)
	if name, ok := adapter.Resolve(t.Type); ok {
		t.Type = name
	}

	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}
	if t.Port == 0 {
		t.Port = DefaultPortForType(t.Type)
	}
	if t.Host == "" {
		t.Host = "localhost"
	}
}
