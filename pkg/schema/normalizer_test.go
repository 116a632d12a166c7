package schema_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlconnect/internal/testutil"
	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialects/informix"
	"github.com/leapstack-labs/sqlconnect/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlconnect/pkg/dialects/sqlserver"
	"github.com/leapstack-labs/sqlconnect/pkg/schema"
)

var columnHeader = []string{"position", "name", "native_type", "length", "nullable", "default"}
var keyHeader = []string{"is_primary_key", "is_foreign_key", "is_indexed"}

func newMock(t *testing.T) (*adapter.BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &adapter.BaseSQLAdapter{DB: db}, mock
}

func strPtr(s string) *string { return &s }

func TestListTables(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("sales").
		WillReturnRows(sqlmock.NewRows([]string{"table_schema", "table_name"}).
			AddRow("sales", "orders").
			AddRow("sales", "customers")).
		RowsWillBeClosed()

	n := schema.New(conn, postgres.Postgres, schema.WithSchema("sales"))
	tables, err := n.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.TableName{
		{Schema: "sales", Name: "orders"},
		{Schema: "sales", Name: "customers"},
	}, tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTables_Error(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery("systables").WillReturnError(assert.AnError)

	_, err := schema.New(conn, informix.Informix).ListTables(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDescribeTable_Postgres(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs("public", "orders").
		WillReturnRows(sqlmock.NewRows(columnHeader).
			AddRow(int64(1), "id", "integer", int64(0), int64(0), nil).
			AddRow(int64(2), "note", "character varying", int64(255), int64(1), "'n/a'::character varying").
			AddRow(int64(3), "tags", "_text", int64(0), int64(1), nil)).
		RowsWillBeClosed()
	mock.ExpectQuery("pg_index").WithArgs("public", "orders", "id").
		WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(1), int64(0), int64(1))).
		RowsWillBeClosed()
	mock.ExpectQuery("pg_index").WithArgs("public", "orders", "note").
		WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(0), int64(2), int64(0))).
		RowsWillBeClosed()
	mock.ExpectQuery("pg_index").WithArgs("public", "orders", "tags").
		WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(0), int64(0), int64(0))).
		RowsWillBeClosed()

	cols, err := schema.New(conn, postgres.Postgres).DescribeTable(context.Background(), core.TableName{Name: "orders"})
	require.NoError(t, err)

	assert.Equal(t, []core.ColumnDescriptor{
		{
			Position: 1, Name: "id", NativeType: "integer", CanonicalType: core.TypeNumber,
			IsPrimaryKey: true, IsIndexed: true,
		},
		{
			Position: 2, Name: "note", NativeType: "character varying", CanonicalType: core.TypeString,
			Length: 255, Nullable: true, IsForeignKey: true, Default: strPtr("'n/a'::character varying"),
		},
		{
			Position: 3, Name: "tags", NativeType: "_text", CanonicalType: core.TypeList, Nullable: true,
		},
	}, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDescribeTable_InformixTypeCodes(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery("syscolumns").
		WithArgs("orders", "informix").
		WillReturnRows(sqlmock.NewRows(columnHeader).
			AddRow(int64(1), "order_num", int64(262), int64(4), int64(0), nil).
			AddRow(int64(2), "order_date", int64(7), int64(4), int64(1), nil))
	mock.ExpectQuery("sysconstraints").
		WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(1), int64(0), int64(1)))
	mock.ExpectQuery("sysconstraints").
		WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(0), int64(0), int64(0)))

	cols, err := schema.New(conn, informix.Informix).
		DescribeTable(context.Background(), core.TableName{Schema: "informix", Name: "orders"})
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, "262", cols[0].NativeType)
	assert.Equal(t, core.TypeNumber, cols[0].CanonicalType)
	assert.True(t, cols[0].IsPrimaryKey)
	assert.Equal(t, core.TypeDate, cols[1].CanonicalType)
	assert.True(t, cols[1].Nullable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDescribeTable_SkipsFailingColumn(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "key query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("sys.foreign_key_columns").WithArgs("dbo", "orders", "b").
					WillReturnError(assert.AnError)
			},
		},
		{
			name: "key row fails to scan",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("sys.foreign_key_columns").WithArgs("dbo", "orders", "b").
					WillReturnRows(sqlmock.NewRows(keyHeader).AddRow("yes", int64(0), int64(0))).
					RowsWillBeClosed()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			mock.ExpectQuery("sys.columns").WithArgs("dbo", "orders").
				WillReturnRows(sqlmock.NewRows(columnHeader).
					AddRow(int64(1), "a", "int", int64(4), int64(0), nil).
					AddRow(int64(2), "b", "nvarchar", int64(-1), int64(1), nil).
					AddRow(int64(3), "c", "datetime2", int64(8), int64(1), "(getdate())"))
			mock.ExpectQuery("sys.foreign_key_columns").WithArgs("dbo", "orders", "a").
				WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(1), int64(0), int64(1)))
			tt.setup(mock)
			mock.ExpectQuery("sys.foreign_key_columns").WithArgs("dbo", "orders", "c").
				WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(0), int64(0), int64(0)))

			logger, logs := testutil.NewCaptureLogger()
			cols, err := schema.New(conn, sqlserver.SQLServer, schema.WithLogger(logger)).
				DescribeTable(context.Background(), core.TableName{Name: "orders"})
			require.NoError(t, err)

			require.Len(t, cols, 2)
			assert.Equal(t, "a", cols[0].Name)
			assert.Equal(t, "c", cols[1].Name)
			assert.Equal(t, core.TypeDateTime, cols[1].CanonicalType)
			assert.Equal(t, "(getdate())", *cols[1].Default)

			lines := logs.Lines()
			require.Len(t, lines, 1)
			assert.Contains(t, lines[0], "skipping column")
			assert.Contains(t, lines[0], "column=b")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDescribeTable_NotFound(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery("information_schema.columns").WillReturnRows(sqlmock.NewRows(columnHeader))

	_, err := schema.New(conn, postgres.Postgres).DescribeTable(context.Background(), core.TableName{Name: "missing"})
	assert.ErrorIs(t, err, schema.ErrTableNotFound)
}

func TestDescribeTable_ColumnsQueryError(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery("information_schema.columns").WillReturnError(assert.AnError)

	_, err := schema.New(conn, postgres.Postgres).DescribeTable(context.Background(), core.TableName{Name: "orders"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDescribeAll_SkipsFailingTable(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery("information_schema.tables").
		WillReturnRows(sqlmock.NewRows([]string{"table_schema", "table_name"}).
			AddRow("public", "good").
			AddRow("public", "bad"))
	mock.ExpectQuery("information_schema.columns").WithArgs("public", "good").
		WillReturnRows(sqlmock.NewRows(columnHeader).AddRow(int64(1), "id", "bigint", int64(0), int64(0), nil))
	mock.ExpectQuery("pg_index").WithArgs("public", "good", "id").
		WillReturnRows(sqlmock.NewRows(keyHeader).AddRow(int64(1), int64(0), int64(1)))
	mock.ExpectQuery("information_schema.columns").WithArgs("public", "bad").
		WillReturnError(assert.AnError)

	logger, logs := testutil.NewCaptureLogger()
	n := schema.New(conn, postgres.Postgres, schema.WithLogger(logger), schema.WithConcurrency(1))
	all, err := n.DescribeAll(context.Background())
	require.NoError(t, err)

	require.Contains(t, all, "public.good")
	assert.NotContains(t, all, "public.bad")
	assert.True(t, all["public.good"][0].IsPrimaryKey)
	assert.Contains(t, logs.String(), "table=public.bad")
	assert.NoError(t, mock.ExpectationsWereMet())
}
