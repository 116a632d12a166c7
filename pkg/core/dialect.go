package core

import (
	"fmt"
	"strings"
)

// Dialect identifies one of the supported SQL engines.
type Dialect int

const (
	// DialectUnknown is the zero value and never compiles.
	DialectUnknown Dialect = iota
	// DialectInformix is the legacy engine (SKIP/FIRST pagination, MATCHES, collection literals).
	DialectInformix
	// DialectPostgres is the standards-leaning engine (OFFSET/LIMIT, ~ regex, arrays).
	DialectPostgres
	// DialectSQLServer is the Windows-oriented engine (OFFSET/FETCH, TOP, bit booleans).
	DialectSQLServer
)

// Dialects lists every supported dialect in a stable order.
var Dialects = []Dialect{DialectInformix, DialectPostgres, DialectSQLServer}

// String returns the connector-type tag of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectInformix:
		return "informix"
	case DialectPostgres:
		return "postgres"
	case DialectSQLServer:
		return "sqlserver"
	default:
		return "unknown"
	}
}

// ParseDialect converts a connector-type tag to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "informix", "ifx":
		return DialectInformix, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	case "sqlserver", "mssql", "sql_server":
		return DialectSQLServer, nil
	default:
		return DialectUnknown, fmt.Errorf("unknown dialect %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := ParseDialect(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (Informix via ODBC).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAtP uses @p1, @p2, etc. for parameters (SQL Server).
	PlaceholderAtP
)

// Format returns the placeholder for the n-th (1-based) parameter.
func (p PlaceholderStyle) Format(n int) string {
	switch p {
	case PlaceholderDollar:
		return fmt.Sprintf("$%d", n)
	case PlaceholderAtP:
		return fmt.Sprintf("@p%d", n)
	default:
		return "?"
	}
}
