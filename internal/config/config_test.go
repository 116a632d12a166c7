package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlconnect/pkg/core"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/informix"
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/sqlserver"
)

func TestTargetConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		target    TargetConfig
		errSubstr string
	}{
		{name: "empty type", target: TargetConfig{}, errSubstr: "target type is required"},
		{name: "postgres", target: TargetConfig{Type: "postgres"}},
		{name: "sqlserver uppercase", target: TargetConfig{Type: "SQLServer"}},
		{name: "informix", target: TargetConfig{Type: "informix", Port: 9088}},
		{name: "unknown type", target: TargetConfig{Type: "oracle"}, errSubstr: "unknown adapter type"},
		{name: "bad port", target: TargetConfig{Type: "postgres", Port: 70000}, errSubstr: "invalid port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errSubstr)
		})
	}
}

func TestTargetConfig_Validate_ListsAvailable(t *testing.T) {
	err := (&TargetConfig{Type: "oracle"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "informix")
	assert.Contains(t, err.Error(), "sqlconnect.yaml")
}

func TestApplyTargetDefaults(t *testing.T) {
	tests := []struct {
		name   string
		target TargetConfig
		want   TargetConfig
	}{
		{
			name:   "postgres",
			target: TargetConfig{Type: "Postgres"},
			want:   TargetConfig{Type: "postgres", Host: "localhost", Port: 5432, Schema: "public"},
		},
		{
			name:   "sqlserver",
			target: TargetConfig{Type: "sqlserver", Host: "db1"},
			want:   TargetConfig{Type: "sqlserver", Host: "db1", Port: 1433, Schema: "dbo"},
		},
		{
			name:   "informix keeps explicit values",
			target: TargetConfig{Type: "informix", Port: 9089, Schema: "informix"},
			want:   TargetConfig{Type: "informix", Host: "localhost", Port: 9089, Schema: "informix"},
		},
		{
			name:   "dialect alias resolves to adapter name",
			target: TargetConfig{Type: "pg"},
			want:   TargetConfig{Type: "postgres", Host: "localhost", Port: 5432, Schema: "public"},
		},
		{
			name:   "unknown type",
			target: TargetConfig{Type: "oracle"},
			want:   TargetConfig{Type: "oracle", Host: "localhost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.target
			ApplyTargetDefaults(&got)
			assert.Equal(t, tt.want, got)
		})
	}

	ApplyTargetDefaults(nil)
}

func TestToAdapterConfig(t *testing.T) {
	target := TargetConfig{
		Type:     "SQLServer",
		Host:     "db1",
		Port:     1433,
		Database: "sales",
		User:     "etl",
		Password: "secret",
		Schema:   "dbo",
		Options:  map[string]string{"log": "1"},
		Params:   map[string]any{"encrypt": "disable"},
	}

	assert.Equal(t, core.AdapterConfig{
		Type:     "sqlserver",
		Host:     "db1",
		Port:     1433,
		Database: "sales",
		Username: "etl",
		Password: "secret",
		Schema:   "dbo",
		Options:  map[string]string{"log": "1"},
		Params:   map[string]any{"encrypt": "disable"},
	}, target.ToAdapterConfig())
}
