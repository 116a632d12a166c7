// Package informix provides the Informix SQL dialect definition.
package informix

import (
	"time"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// Config is the Informix dialect configuration.
var Config = dialect.Config{
	Name:        "informix",
	Kind:        core.DialectInformix,
	Placeholder: core.PlaceholderQuestion,

	DateLiteral:     "TO_DATE(%s, '%%Y-%%m-%%d')",
	DateTimeLiteral: "CAST(%s AS DATETIME YEAR TO SECOND)",
	TrueLiteral:     "'t'",
	FalseLiteral:    "'f'",
	Collections:     dialect.CollectionBraces,
	CollectionCast:  "%s::LVARCHAR",

	RegexMatch:      "%s MATCHES %s",
	RegexNotMatch:   "%s NOT MATCHES %s",
	ListContains:    "%[2]s IN %[1]s",
	ListNotContains: "%[2]s NOT IN %[1]s",

	NativeRightJoin: true,
	YearPart:        "YEAR(%s)",
	MonthPart:       "MONTH(%s)",

	Paging:             dialect.PagingSkipFirst,
	Preview:            "SELECT FIRST %[2]d * FROM (%[1]s)",
	WatermarkLiteral:   "DATETIME(%s) YEAR TO FRACTION(3)",
	WatermarkLayout:    "2006-01-02 15:04:05.000",
	WatermarkPrecision: time.Millisecond,
	DefaultDelta:       dialect.StrategyWindow,
}
