package commands

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlconnect/internal/cli/config"
	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	"github.com/leapstack-labs/sqlconnect/pkg/adapters/postgres"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
	ifxdialect "github.com/leapstack-labs/sqlconnect/pkg/dialects/informix"
	pgdialect "github.com/leapstack-labs/sqlconnect/pkg/dialects/postgres"
	mssqldialect "github.com/leapstack-labs/sqlconnect/pkg/dialects/sqlserver"

	// Register the real adapters for version and validation output
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/informix"
	_ "github.com/leapstack-labs/sqlconnect/pkg/adapters/sqlserver"
)

// mockDBs maps a target database name to the sqlmock DB the mock adapters hand out.
var mockDBs sync.Map

// mockAdapter is a postgres adapter that reports another dialect and
// connects to a sqlmock DB instead of a server.
type mockAdapter struct {
	*postgres.Adapter
	dialect *dialect.Dialect
}

func (m *mockAdapter) Dialect() *dialect.Dialect { return m.dialect }

func (m *mockAdapter) Connect(_ context.Context, cfg adapter.Config) error {
	db, ok := mockDBs.Load(cfg.Database)
	if !ok {
		return sql.ErrConnDone
	}
	m.DB = db.(*sql.DB)
	m.Cfg = cfg
	return nil
}

func init() {
	for name, d := range map[string]*dialect.Dialect{
		"mock-informix":  ifxdialect.Informix,
		"mock-postgres":  pgdialect.Postgres,
		"mock-sqlserver": mssqldialect.SQLServer,
	} {
		adapter.Register(name, func(logger *slog.Logger) adapter.Adapter {
			return &mockAdapter{Adapter: postgres.New(logger), dialect: d}
		})
	}
}

// newMockTarget registers a sqlmock DB under database and returns a target using it.
func newMockTarget(t *testing.T, typ, database, schema string) (*config.TargetConfig, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mockDBs.Store(database, db)
	t.Cleanup(func() {
		mockDBs.Delete(database)
		_ = db.Close()
	})
	return &config.TargetConfig{Type: typ, Database: database, Schema: schema}, mock
}

// runCommand executes cmd with args under cfg and returns stdout and stderr.
func runCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{Output: "table", BatchSize: 1000}
	}
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	ctx := config.WithLogger(config.WithConfig(context.Background(), cfg), slog.New(slog.DiscardHandler))
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func singleTarget(name string, t *config.TargetConfig) *config.Config {
	return &config.Config{
		Target:    name,
		Targets:   map[string]*config.TargetConfig{name: t},
		Output:    "table",
		BatchSize: 1000,
	}
}
