// Package catalog maps each dialect's native column-type vocabulary onto the
// canonical type system and back into dialect DDL.
//
// The mapping tables are constant data: Informix type codes are not
// sequential and some values were reused across server versions, so the
// tables are authoritative and must not be derived arithmetically beyond the
// documented NOT NULL flag strip.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// informixNotNullFlag is set on syscolumns.coltype for NOT NULL columns.
const informixNotNullFlag = 0x100

// ToCanonical maps a dialect-native type identifier to its canonical type.
// Informix identifiers are numeric coltype codes (decimal strings); Postgres
// and SQL Server identifiers are type names. Unmapped identifiers yield
// core.TypeUnknown.
func ToCanonical(d core.Dialect, native string) core.CanonicalType {
	switch d {
	case core.DialectInformix:
		code, err := strconv.Atoi(strings.TrimSpace(native))
		if err != nil {
			return core.TypeUnknown
		}
		return InformixCanonical(code)
	case core.DialectPostgres:
		return postgresCanonical(native)
	case core.DialectSQLServer:
		if t, ok := sqlServerToCanonical[normalizeName(native)]; ok {
			return t
		}
	}
	return core.TypeUnknown
}

// InformixCanonical maps a raw syscolumns.coltype code. Codes absent from
// the table are retried with the NOT NULL flag stripped.
func InformixCanonical(code int) core.CanonicalType {
	if t, ok := informixToCanonical[code]; ok {
		return t
	}
	if code&informixNotNullFlag != 0 {
		if t, ok := informixToCanonical[code&^informixNotNullFlag]; ok {
			return t
		}
	}
	return core.TypeUnknown
}

// ToDialectDDL returns the column type fragment used to declare a column of
// the canonical type in the dialect. A positive length sizes character types.
// The function is total: every dialect/type pair yields a non-empty fragment.
func ToDialectDDL(d core.Dialect, t core.CanonicalType, length int) string {
	switch d {
	case core.DialectInformix:
		return informixDDL(t, length)
	case core.DialectSQLServer:
		return sqlServerDDL(t, length)
	default:
		return postgresDDL(t, length)
	}
}

// ToPostgresDDL maps a source-native type identifier straight to the
// Postgres type used when replicating a table into Postgres.
func ToPostgresDDL(d core.Dialect, native string) string {
	switch d {
	case core.DialectInformix:
		code, err := strconv.Atoi(strings.TrimSpace(native))
		if err != nil {
			return "TEXT"
		}
		if t, ok := informixToPostgres[code%256]; ok {
			return t
		}
		return "TEXT"
	case core.DialectSQLServer:
		if t, ok := sqlServerToPostgres[normalizeName(native)]; ok {
			return t
		}
		return "TEXT"
	case core.DialectPostgres:
		if strings.TrimSpace(native) == "" {
			return "TEXT"
		}
		return strings.ToUpper(strings.TrimSpace(native))
	}
	return "TEXT"
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sized(base string, length int) string {
	return fmt.Sprintf("%s(%d)", base, length)
}
