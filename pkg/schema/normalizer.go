// Package schema describes database tables in the canonical column shape.
//
// A Normalizer runs the dialect's catalog queries through a
// core.Connection and maps each native column type through pkg/catalog.
// Key and index membership is resolved per column; a column whose lookup
// fails is logged and left out, never failing the table.
package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlconnect/pkg/catalog"
	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

var (
	// ErrTableNotFound is returned when the catalog reports no columns for a table.
	ErrTableNotFound = errors.New("table not found")
	// ErrNoCatalog is returned for a dialect without catalog queries.
	ErrNoCatalog = errors.New("dialect has no catalog queries")
)

// DefaultConcurrency bounds the tables described at once by DescribeAll.
const DefaultConcurrency = 4

// Normalizer introspects one database.
type Normalizer struct {
	conn        core.Connection
	dialect     *dialect.Dialect
	logger      *slog.Logger
	schema      string
	concurrency int
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for skipped tables and columns.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithSchema restricts ListTables and DescribeAll to one schema (owner on Informix).
func WithSchema(schema string) Option {
	return func(n *Normalizer) {
		n.schema = schema
	}
}

// WithConcurrency sets how many tables DescribeAll describes at once.
func WithConcurrency(limit int) Option {
	return func(n *Normalizer) {
		if limit > 0 {
			n.concurrency = limit
		}
	}
}

// New returns a Normalizer reading through conn in dialect d.
func New(conn core.Connection, d *dialect.Dialect, opts ...Option) *Normalizer {
	n := &Normalizer{
		conn:        conn,
		dialect:     d,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) catalog() (dialect.Catalog, error) {
	c := n.dialect.Catalog()
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCatalog, n.dialect.Name())
	}
	return c, nil
}

// ListTables returns the user tables of the database.
func (n *Normalizer) ListTables(ctx context.Context) ([]core.TableName, error) {
	c, err := n.catalog()
	if err != nil {
		return nil, err
	}
	q, args := c.ListTables(n.schema)
	rows, err := n.conn.Execute(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []core.TableName
	for rows.Next() {
		var schema sql.NullString
		var name string
		if err := rows.Scan(&schema, &name); err != nil {
			return nil, err
		}
		tables = append(tables, core.TableName{Schema: schema.String, Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// DescribeTable returns the columns of table in ordinal order.
func (n *Normalizer) DescribeTable(ctx context.Context, table core.TableName) ([]core.ColumnDescriptor, error) {
	c, err := n.catalog()
	if err != nil {
		return nil, err
	}
	cols, err := n.columns(ctx, c, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	out := make([]core.ColumnDescriptor, 0, len(cols))
	for _, col := range cols {
		if err := n.keys(ctx, c, table, &col); err != nil {
			n.logger.Warn("skipping column",
				"table", table.String(),
				"column", col.Name,
				"error", err)
			continue
		}
		out = append(out, col)
	}
	return out, nil
}

// columns reads the column listing. Rows that fail to scan are skipped.
func (n *Normalizer) columns(ctx context.Context, c dialect.Catalog, table core.TableName) ([]core.ColumnDescriptor, error) {
	q, args := c.Columns(table)
	rows, err := n.conn.Execute(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cols []core.ColumnDescriptor
	for rows.Next() {
		var (
			col      core.ColumnDescriptor
			length   sql.NullInt64
			nullable sql.NullInt64
			def      sql.NullString
		)
		if err := rows.Scan(&col.Position, &col.Name, &col.NativeType, &length, &nullable, &def); err != nil {
			n.logger.Warn("skipping column", "table", table.String(), "error", err)
			continue
		}
		col.CanonicalType = catalog.ToCanonical(n.dialect.Kind(), col.NativeType)
		col.Length = int(length.Int64)
		col.Nullable = nullable.Int64 != 0
		if def.Valid {
			col.Default = &def.String
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// keys fills the key and index flags of col.
func (n *Normalizer) keys(ctx context.Context, c dialect.Catalog, table core.TableName, col *core.ColumnDescriptor) error {
	q, args := c.ColumnKeys(table, col.Name)
	rows, err := n.conn.Execute(ctx, q, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return nil
	}
	var pk, fk, idx sql.NullInt64
	if err := rows.Scan(&pk, &fk, &idx); err != nil {
		return err
	}
	col.IsPrimaryKey = pk.Int64 > 0
	col.IsForeignKey = fk.Int64 > 0
	col.IsIndexed = idx.Int64 > 0
	return rows.Err()
}

// DescribeAll describes every table ListTables returns, keyed by
// schema-qualified name. A table that fails is logged and left out.
func (n *Normalizer) DescribeAll(ctx context.Context) (map[string][]core.ColumnDescriptor, error) {
	tables, err := n.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	out := make(map[string][]core.ColumnDescriptor, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.concurrency)
	for _, table := range tables {
		g.Go(func() error {
			cols, err := n.DescribeTable(gctx, table)
			if err != nil {
				n.logger.Warn("skipping table", "table", table.String(), "error", err)
				return nil
			}
			mu.Lock()
			out[table.String()] = cols
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
