package core

import (
	"context"
	"database/sql"
)

// Connection is the capability the core needs from a database: run a SQL
// string and hand back its rows. Implementations own connection setup,
// credentials and pooling.
type Connection interface {
	// Execute runs a statement that returns rows. The caller closes the rows.
	Execute(ctx context.Context, query string, args ...any) (*Rows, error)

	// Close releases the connection.
	Close() error
}

// Session is a Connection pinned to one physical database session, so
// session state such as a declared cursor survives between statements.
type Session interface {
	Connection

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, query string, args ...any) error
}

// Sessioner is implemented by connections that can hand out a pinned Session.
type Sessioner interface {
	Session(ctx context.Context) (Session, error)
}

// ValueDecoder is implemented by connections whose driver hands back raw
// bytes that need converting before they leave the core (e.g. a legacy
// engine returning values in its locale codeset).
type ValueDecoder interface {
	DecodeValue(v any) any
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}

// Row is a single result row keyed by column name.
type Row map[string]any

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Driver   string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}
