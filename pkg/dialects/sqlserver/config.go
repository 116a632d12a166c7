// Package sqlserver provides the Microsoft SQL Server dialect definition.
package sqlserver

import (
	"time"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// Config is the SQL Server dialect configuration. Collections have no
// native type and are stored as JSON array text.
var Config = dialect.Config{
	Name:          "sqlserver",
	Kind:          core.DialectSQLServer,
	DefaultSchema: "dbo",
	Placeholder:   core.PlaceholderAtP,
	Identifiers: dialect.Identifiers{
		Quote:    "[",
		QuoteEnd: "]",
		Escape:   "]]",
	},

	DateLiteral:     "CAST(%s AS DATE)",
	DateTimeLiteral: "CAST(%s AS DATETIME2)",
	TrueLiteral:     "1",
	FalseLiteral:    "0",
	Collections:     dialect.CollectionJSON,
	CollectionCast:  "CAST(%s AS NVARCHAR(MAX))",

	RegexMatch:      "REGEXP_LIKE(%s, %s)",
	RegexNotMatch:   "NOT REGEXP_LIKE(%s, %s)",
	ListContains:    "%[2]s IN (SELECT value FROM OPENJSON(%[1]s))",
	ListNotContains: "%[2]s NOT IN (SELECT value FROM OPENJSON(%[1]s))",

	NativeRightJoin: true,
	YearPart:        "DATEPART(YEAR, %s)",
	MonthPart:       "DATEPART(MONTH, %s)",
	DayDiff:         "DATEDIFF(DAY, %[2]s, %[1]s)",

	Paging:             dialect.PagingOffsetFetch,
	Preview:            "SELECT TOP %[2]d * FROM (%[1]s) AS preview",
	WatermarkLiteral:   "CAST('%s' AS DATETIME2(7))",
	WatermarkLayout:    "2006-01-02 15:04:05.0000000",
	WatermarkPrecision: 100 * time.Nanosecond,
	DefaultDelta:       dialect.StrategyWindow,
}
