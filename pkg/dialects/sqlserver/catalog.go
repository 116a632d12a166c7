package sqlserver

import (
	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// Catalog reads the sys.* catalog views.
type Catalog struct{}

const objectID = "OBJECT_ID(QUOTENAME(@p1) + '.' + QUOTENAME(@p2))"

// ListTables lists the tables of a schema, or of every schema.
func (Catalog) ListTables(schema string) (string, []any) {
	q := `SELECT s.name, t.name
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id`
	if schema == "" {
		return q + "\nORDER BY s.name, t.name", nil
	}
	return q + "\nWHERE s.name = @p1\nORDER BY t.name", []any{schema}
}

// Columns lists the columns of a table. Length is the storage length in
// bytes, -1 for MAX types.
func (Catalog) Columns(table core.TableName) (string, []any) {
	return `SELECT c.column_id,
       c.name,
       ty.name,
       c.max_length,
       CAST(c.is_nullable AS INT),
       OBJECT_DEFINITION(c.default_object_id)
FROM sys.columns c
JOIN sys.types ty ON ty.user_type_id = c.user_type_id
WHERE c.object_id = ` + objectID + `
ORDER BY c.column_id`, []any{schemaOf(table), table.Name}
}

// ColumnKeys counts the primary key, foreign key and index memberships of a column.
func (Catalog) ColumnKeys(table core.TableName, column string) (string, []any) {
	return `SELECT
  (SELECT COUNT(*)
   FROM sys.indexes i
   JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
   JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
   WHERE i.is_primary_key = 1 AND i.object_id = ` + objectID + ` AND c.name = @p3) AS is_primary_key,
  (SELECT COUNT(*)
   FROM sys.foreign_key_columns fk
   JOIN sys.columns c ON c.object_id = fk.parent_object_id AND c.column_id = fk.parent_column_id
   WHERE fk.parent_object_id = ` + objectID + ` AND c.name = @p3) AS is_foreign_key,
  (SELECT COUNT(*)
   FROM sys.index_columns ic
   JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
   WHERE ic.object_id = ` + objectID + ` AND c.name = @p3) AS is_indexed`,
		[]any{schemaOf(table), table.Name, column}
}

func schemaOf(t core.TableName) string {
	if t.Schema == "" {
		return Config.DefaultSchema
	}
	return t.Schema
}
