package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/sqlconnect/pkg/catalog"
	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
	pgdialect "github.com/leapstack-labs/sqlconnect/pkg/dialects/postgres"
)

// ColumnDef is one column of a CREATE TABLE statement.
type ColumnDef struct {
	Name       string
	Type       string  // Postgres type, sized when applicable
	NotNull    bool
	Default    *string // SQL expression, emitted as is
	PrimaryKey bool
}

// ColumnDefs converts columns described in the source dialect into Postgres
// column definitions for replication. Textual defaults are quoted; numeric
// defaults are kept bare.
func ColumnDefs(source core.Dialect, cols []core.ColumnDescriptor) []ColumnDef {
	defs := make([]ColumnDef, 0, len(cols))
	for _, c := range cols {
		typ := catalog.ToPostgresDDL(source, c.NativeType)
		if (typ == "VARCHAR" || typ == "CHAR") && c.Length > 0 {
			typ = fmt.Sprintf("%s(%d)", typ, c.Length)
		}
		def := ColumnDef{
			Name:       c.Name,
			Type:       typ,
			NotNull:    !c.Nullable,
			PrimaryKey: c.IsPrimaryKey,
		}
		if c.Default != nil {
			expr := defaultExpr(*c.Default)
			def.Default = &expr
		}
		defs = append(defs, def)
	}
	return defs
}

func defaultExpr(v string) string {
	v = strings.TrimSpace(v)
	if _, err := decimal.NewFromString(v); err == nil {
		return v
	}
	return dialect.QuoteString(v)
}

// BuildCreateTable returns an idempotent CREATE TABLE statement with quoted
// identifiers and a table-level PRIMARY KEY constraint.
func BuildCreateTable(schema, table string, cols []ColumnDef) string {
	if schema == "" {
		schema = pgdialect.Config.DefaultSchema
	}
	q := pgdialect.Postgres.QuoteIdentifier

	parts := make([]string, 0, len(cols)+1)
	var keys []string
	for _, c := range cols {
		col := q(c.Name) + " " + c.Type
		if c.NotNull {
			col += " NOT NULL"
		}
		if c.Default != nil {
			col += " DEFAULT " + *c.Default
		}
		parts = append(parts, col)
		if c.PrimaryKey {
			keys = append(keys, q(c.Name))
		}
	}
	if len(keys) > 0 {
		parts = append(parts, "PRIMARY KEY ("+strings.Join(keys, ", ")+")")
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (\n  %s\n);",
		q(schema), q(table), strings.Join(parts, ",\n  "))
}

// EnsureSchema creates schema when it does not exist.
func (a *Adapter) EnsureSchema(ctx context.Context, schema string) error {
	if err := a.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgdialect.Postgres.QuoteIdentifier(schema)); err != nil {
		return fmt.Errorf("ensure schema %s: %w", schema, err)
	}
	a.Logger.Info("schema created or already exists", "schema", schema)
	return nil
}

// EnsureTable creates the table described by cols when it does not exist.
func (a *Adapter) EnsureTable(ctx context.Context, schema, table string, cols []ColumnDef) error {
	if err := a.Exec(ctx, BuildCreateTable(schema, table, cols)); err != nil {
		return fmt.Errorf("ensure table %s.%s: %w", schema, table, err)
	}
	a.Logger.Info("table created or already exists", "schema", schema, "table", table)
	return nil
}
