// Package adapter provides the database adapter contract for sqlconnect.
//
// An adapter owns connection setup, credentials and pooling for one
// database engine and exposes it as a core.Connection, which is all the
// query, extract and schema packages need. Concrete adapters live in
// pkg/adapters/ subdirectories and register a factory from init().
package adapter

import (
	"context"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	core.Connection
	core.Sessioner

	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error

	// Exec executes a SQL statement that doesn't return rows (e.g., CREATE, DECLARE).
	Exec(ctx context.Context, sql string, args ...any) error

	// Dialect returns the SQL dialect spoken by the database.
	Dialect() *dialect.Dialect
}
