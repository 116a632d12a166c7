package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlconnect/internal/cli/config"
	"github.com/leapstack-labs/sqlconnect/internal/testutil"
	"github.com/leapstack-labs/sqlconnect/pkg/query"
)

func TestCompileGolden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"compile_orders_postgres", []string{"testdata/queries/orders.json", "--dialect", "postgres"}},
		{"compile_orders_sqlserver_bind", []string{"testdata/queries/orders.json", "-d", "mssql", "--bind"}},
		{"compile_right_join_postgres", []string{"testdata/queries/right_join.yaml", "--dialect", "postgres"}},
		{"compile_right_join_informix", []string{"testdata/queries/right_join.yaml", "--dialect", "informix"}},
		{"compile_between_sqlserver_preview", []string{"testdata/queries/between.toml", "--dialect", "sqlserver", "--preview", "10"}},
		{"compile_between_informix_bind", []string{"testdata/queries/between.toml", "--dialect", "informix", "--bind"}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCommand(t, NewCompileCommand(), nil, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestCompile_DialectFromTarget(t *testing.T) {
	cfg := singleTarget("erp", &config.TargetConfig{Type: "informix"})

	out, _, err := runCommand(t, NewCompileCommand(), cfg, "testdata/queries/right_join.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "RIGHT JOIN customers")
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{"no dialect or target", []string{"testdata/queries/orders.json"}, "no dialect given"},
		{"unknown dialect", []string{"testdata/queries/orders.json", "-d", "oracle"}, "unknown dialect"},
		{"missing file", []string{"testdata/queries/nope.json", "-d", "postgres"}, "read query file"},
		{"watch needs file", []string{"-d", "postgres", "--watch"}, "--watch needs a query file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, NewCompileCommand(), nil, tt.args...)
			assert.ErrorContains(t, err, tt.errSubstr)
		})
	}

	_, _, err := runCommand(t, NewCompileCommand(), nil, "testdata/queries/invalid.json", "-d", "postgres")
	assert.ErrorIs(t, err, query.ErrValidation)
}

func TestSniffFormat(t *testing.T) {
	assert.Equal(t, ".json", sniffFormat([]byte(`  {"baseTable": "t"}`)))
	assert.Equal(t, ".toml", sniffFormat([]byte(`baseTable = "t"`)))
	assert.Equal(t, ".yaml", sniffFormat([]byte("baseTable: t\n")))
}

func TestWatchRecompiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseTable: first\n"), 0o600))

	opts := &CompileOptions{}
	d, err := resolveDialect(&CommandContext{Cfg: &config.Config{}}, "postgres")
	require.NoError(t, err)

	out := new(testutil.LogBuffer)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, slog.New(slog.DiscardHandler), func() {
			_ = compileFile(out, d, path, opts)
		})
	}()

	require.Eventually(t, func() bool {
		return out.String() != ""
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), "FROM first;")

	require.NoError(t, os.WriteFile(path, []byte("baseTable: second\n"), 0o600))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "FROM second;")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
