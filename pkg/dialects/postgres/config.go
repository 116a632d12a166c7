// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import (
	"time"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// Config is the PostgreSQL dialect configuration.
// This is pure data - the shared compiler in pkg/dialect reads it.
var Config = dialect.Config{
	Name:          "postgres",
	Kind:          core.DialectPostgres,
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Identifiers: dialect.Identifiers{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},

	DateLiteral:     "DATE %s",
	DateTimeLiteral: "TIMESTAMP %s",
	DateParam:       "CAST(%s AS DATE)",
	DateTimeParam:   "CAST(%s AS TIMESTAMP)",
	TrueLiteral:     "TRUE",
	FalseLiteral:    "FALSE",
	Collections:     dialect.CollectionArray,
	CollectionCast:  "%s::TEXT",

	RegexMatch:      "%s ~ %s",
	RegexNotMatch:   "%s !~ %s",
	ListContains:    "%[2]s = ANY(%[1]s)",
	ListNotContains: "NOT (%[2]s = ANY(%[1]s))",

	// RIGHT joins are emitted as LEFT joins with the sides swapped.
	NativeRightJoin: false,
	YearPart:        "EXTRACT(YEAR FROM %s)",
	MonthPart:       "EXTRACT(MONTH FROM %s)",

	Paging:             dialect.PagingOffsetLimit,
	Preview:            "SELECT * FROM (%s) AS preview LIMIT %d",
	WatermarkLiteral:   "TIMESTAMP '%s'",
	WatermarkLayout:    "2006-01-02 15:04:05.000000",
	WatermarkPrecision: time.Microsecond,
	DefaultDelta:       dialect.StrategyDistinctOn,
	SupportsDistinctOn: true,
	ServerCursor:       true,
}
