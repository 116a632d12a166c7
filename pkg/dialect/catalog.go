package dialect

import "github.com/leapstack-labs/sqlconnect/pkg/core"

// Catalog builds a dialect's introspection queries. Arguments are bound
// with the dialect's placeholder style.
//
// ListTables rows: schema, name.
// Columns rows: position, name, native_type, length, nullable, default.
// ColumnKeys rows (one): is_primary_key, is_foreign_key, is_indexed as counts.
type Catalog interface {
	ListTables(schema string) (string, []any)
	Columns(table core.TableName) (string, []any)
	ColumnKeys(table core.TableName, column string) (string, []any)
}
