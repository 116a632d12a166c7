package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/informix"
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/sqlserver"
)

func TestBuiltinAdaptersRegistered(t *testing.T) {
	names := adapter.ListAdapters()
	for _, name := range []string{"informix", "postgres", "sqlserver"} {
		assert.Contains(t, names, name)
		assert.True(t, adapter.IsRegistered(name))
	}
}

func TestResolve_DialectAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"postgres", "postgres", true},
		{"PostgreSQL", "postgres", true},
		{"pg", "postgres", true},
		{"mssql", "sqlserver", true},
		{" ifx ", "informix", true},
		{"oracle", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := adapter.Resolve(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewAdapter_Alias(t *testing.T) {
	a, err := adapter.NewAdapter(adapter.Config{Type: "mssql"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlserver", a.Dialect().Name())
}
