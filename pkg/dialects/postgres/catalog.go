package postgres

import (
	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// Catalog reads information_schema and pg_index.
type Catalog struct{}

// ListTables lists base tables of a schema, or of every user schema.
func (Catalog) ListTables(schema string) (string, []any) {
	if schema == "" {
		return `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE' AND table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_schema, table_name`, nil
	}
	return `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE' AND table_schema = $1
ORDER BY table_name`, []any{schema}
}

// Columns lists the columns of a table. Array columns report their udt
// name (_int4, _text) so they map to list.
func (Catalog) Columns(table core.TableName) (string, []any) {
	return `SELECT c.ordinal_position,
       c.column_name,
       CASE WHEN c.data_type = 'ARRAY' THEN c.udt_name ELSE c.data_type END,
       COALESCE(c.character_maximum_length, 0),
       CASE WHEN c.is_nullable = 'YES' THEN 1 ELSE 0 END,
       c.column_default
FROM information_schema.columns c
WHERE c.table_schema = $1 AND c.table_name = $2
ORDER BY c.ordinal_position`, []any{schemaOf(table), table.Name}
}

// ColumnKeys counts the primary key, foreign key and index memberships of a column.
func (Catalog) ColumnKeys(table core.TableName, column string) (string, []any) {
	return `SELECT
  (SELECT COUNT(*)
   FROM information_schema.table_constraints tc
   JOIN information_schema.key_column_usage kcu
     ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
   WHERE tc.constraint_type = 'PRIMARY KEY'
     AND kcu.table_schema = $1::text AND kcu.table_name = $2::text AND kcu.column_name = $3::text) AS is_primary_key,
  (SELECT COUNT(*)
   FROM information_schema.table_constraints tc
   JOIN information_schema.key_column_usage kcu
     ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
   WHERE tc.constraint_type = 'FOREIGN KEY'
     AND kcu.table_schema = $1::text AND kcu.table_name = $2::text AND kcu.column_name = $3::text) AS is_foreign_key,
  (SELECT COUNT(*)
   FROM pg_index i
   JOIN pg_class t ON t.oid = i.indrelid
   JOIN pg_namespace n ON n.oid = t.relnamespace
   JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(i.indkey)
   WHERE n.nspname = $1::text AND t.relname = $2::text AND a.attname = $3::text) AS is_indexed`,
		[]any{schemaOf(table), table.Name, column}
}

func schemaOf(t core.TableName) string {
	if t.Schema == "" {
		return Config.DefaultSchema
	}
	return t.Schema
}
