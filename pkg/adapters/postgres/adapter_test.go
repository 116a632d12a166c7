package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: adapter.Config{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin",
		},
		{
			name: "defaults",
			config: adapter.Config{
				Database: "mydb",
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
		{
			name: "password with spaces and schema",
			config: adapter.Config{
				Host:     "db.example.com",
				Port:     5433,
				Database: "analytics",
				Username: "analyst",
				Password: "it's secret",
				Schema:   "cdc",
			},
			expected: `host=db.example.com port=5433 dbname=analytics sslmode=disable user=analyst password='it\'s secret' search_path=cdc`,
		},
		{
			name: "application name",
			config: adapter.Config{
				Database: "mydb",
				Options:  map[string]string{"application_name": "sqlconnect"},
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable application_name=sqlconnect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildPostgresDSN(tt.config)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestNew(t *testing.T) {
	adp := New(nil)

	assert.NotNil(t, adp, "New() should return non-nil adapter")
	assert.Nil(t, adp.DB, "DB should be nil before Connect")
	assert.False(t, adp.IsConnected(), "should not be connected initially")
	assert.Equal(t, core.DialectPostgres, adp.Dialect().Kind(), "dialect should be postgres")
}

func TestAdapter_NotConnected(t *testing.T) {
	tests := []struct {
		name      string
		operation func(ctx context.Context, adp *Adapter) error
	}{
		{
			name: "exec without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				return adp.Exec(ctx, "SELECT 1")
			},
		},
		{
			name: "query without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Execute(ctx, "SELECT 1")
				return err
			},
		},
		{
			name: "ensure schema without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				return adp.EnsureSchema(ctx, "cdc")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.operation(context.Background(), New(nil))
			require.Error(t, err)
			assert.ErrorIs(t, err, adapter.ErrNotConnected)
		})
	}
}

func TestAdapter_Registry(t *testing.T) {
	assert.True(t, adapter.IsRegistered("postgres"), "postgres adapter should be registered")

	factory, ok := adapter.Get("postgres")
	require.True(t, ok, "should be able to get postgres factory")

	pg, ok := factory(nil).(*Adapter)
	assert.True(t, ok, "factory should return *Adapter")
	assert.NotNil(t, pg)
}

func TestAdapter_Close(t *testing.T) {
	// Close should not error even without connection
	adp := New(nil)
	assert.NoError(t, adp.Close())
}

func strPtr(s string) *string { return &s }

func TestColumnDefs(t *testing.T) {
	cols := []core.ColumnDescriptor{
		{Name: "order_num", NativeType: "262", Length: 4, IsPrimaryKey: true},
		{Name: "status", NativeType: "13", Length: 20, Nullable: true, Default: strPtr("new")},
		{Name: "qty", NativeType: "1", Length: 2, Nullable: true, Default: strPtr("0")},
	}

	defs := ColumnDefs(core.DialectInformix, cols)
	require.Len(t, defs, 3)

	assert.Equal(t, ColumnDef{Name: "order_num", Type: "SERIAL", NotNull: true, PrimaryKey: true}, defs[0])
	assert.Equal(t, "VARCHAR(20)", defs[1].Type)
	assert.Equal(t, "'new'", *defs[1].Default)
	assert.False(t, defs[1].NotNull)
	assert.Equal(t, "0", *defs[2].Default)
}

func TestBuildCreateTable(t *testing.T) {
	defs := []ColumnDef{
		{Name: "id", Type: "INTEGER", NotNull: true, PrimaryKey: true},
		{Name: "region", Type: "CHAR(2)", NotNull: true, PrimaryKey: true},
		{Name: "name", Type: "VARCHAR(40)", Default: strPtr("'unknown'")},
		{Name: `odd"name`, Type: "TEXT"},
	}

	want := `CREATE TABLE IF NOT EXISTS "sales"."customers" (
  "id" INTEGER NOT NULL,
  "region" CHAR(2) NOT NULL,
  "name" VARCHAR(40) DEFAULT 'unknown',
  "odd""name" TEXT,
  PRIMARY KEY ("id", "region")
);`
	assert.Equal(t, want, BuildCreateTable("sales", "customers", defs))

	assert.Equal(t, "CREATE TABLE IF NOT EXISTS \"public\".\"t\" (\n  \"a\" TEXT\n);",
		BuildCreateTable("", "t", []ColumnDef{{Name: "a", Type: "TEXT"}}))
}

func TestEnsureSchemaAndTable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	defs := []ColumnDef{{Name: "id", Type: "INTEGER", NotNull: true, PrimaryKey: true}}
	mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS "cdc"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(BuildCreateTable("cdc", "orders", defs)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(BuildCreateTable("cdc", "broken", defs)).WillReturnError(assert.AnError)

	adp := New(nil)
	adp.DB = db
	ctx := context.Background()

	require.NoError(t, adp.EnsureSchema(ctx, "cdc"))
	require.NoError(t, adp.EnsureTable(ctx, "cdc", "orders", defs))

	err = adp.EnsureTable(ctx, "cdc", "broken", defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure table cdc.broken")
	assert.NoError(t, mock.ExpectationsWereMet())
}
