package catalog

import "github.com/leapstack-labs/sqlconnect/pkg/core"

// informixToCanonical is keyed by raw syscolumns.coltype.
var informixToCanonical = map[int]core.CanonicalType{
	// Numeric
	1:   core.TypeNumber, // SMALLINT
	2:   core.TypeNumber, // INTEGER
	3:   core.TypeNumber, // FLOAT
	4:   core.TypeNumber, // SMALLFLOAT
	5:   core.TypeNumber, // DECIMAL
	6:   core.TypeNumber, // SERIAL
	8:   core.TypeNumber, // MONEY
	17:  core.TypeNumber, // INT8
	18:  core.TypeNumber, // SERIAL8
	25:  core.TypeNumber, // REFSERIAL
	26:  core.TypeNumber, // REFSERIAL8
	52:  core.TypeNumber, // BIGINT
	53:  core.TypeNumber, // BIGSERIAL
	262: core.TypeNumber, // DISTINCT type over a numeric base

	// Character
	0:    core.TypeString, // CHAR
	12:   core.TypeString, // TEXT
	13:   core.TypeString, // VARCHAR
	14:   core.TypeString, // INTERVAL, surfaced as text
	15:   core.TypeString, // NCHAR
	16:   core.TypeString, // NVARCHAR
	27:   core.TypeString, // LVARCHAR variant
	35:   core.TypeString, // IDSXML
	37:   core.TypeString, // IDSCHARSET
	40:   core.TypeString, // LVARCHAR
	42:   core.TypeString, // CLOB
	43:   core.TypeString, // LVARCHAR, client side only
	256:  core.TypeString, // IDSXML
	258:  core.TypeString, // IDSXML
	269:  core.TypeString, // VARCHAR NOT NULL
	2061: core.TypeString, // IDSSECURITYLABEL

	// Temporal
	7:   core.TypeDate,     // DATE
	10:  core.TypeDateTime, // DATETIME
	263: core.TypeDate,     // DATE variant

	// Boolean
	28: core.TypeBoolean,
	32: core.TypeBoolean, // older servers
	41: core.TypeBoolean,
	45: core.TypeBoolean,

	// Binary
	11: core.TypeBinary, // BYTE
	31: core.TypeBinary, // BLOB
	36: core.TypeBinary, // IDSBLOB

	// Collections
	19: core.TypeSet,      // SET
	20: core.TypeMultiSet, // MULTISET
	21: core.TypeList,     // LIST
	23: core.TypeList,     // COLLECTION

	// Composite rows
	22:   core.TypeRecord, // ROW, unnamed
	24:   core.TypeRecord, // ROW, opaque UDT
	4117: core.TypeRecord, // ROW, opaque composite
	4118: core.TypeRecord, // ROW, named

	9: core.TypeNull, // NULL, unspecified
}

// informixToPostgres is keyed by coltype % 256.
var informixToPostgres = map[int]string{
	1:  "SMALLINT",
	2:  "INTEGER",
	3:  "DOUBLE PRECISION",
	4:  "REAL",
	5:  "DECIMAL",
	6:  "SERIAL",
	8:  "NUMERIC",
	17: "BIGINT",
	18: "BIGSERIAL",
	25: "INTEGER",
	26: "BIGINT",
	52: "BIGINT",
	53: "BIGSERIAL",

	0:  "CHAR",
	12: "TEXT",
	13: "VARCHAR",
	15: "CHAR",
	16: "VARCHAR",
	27: "VARCHAR",
	35: "TEXT",
	37: "TEXT",
	40: "VARCHAR",
	42: "TEXT",
	43: "VARCHAR",

	7:  "DATE",
	10: "TIMESTAMP",
	14: "INTERVAL",

	28: "BOOLEAN",
	32: "BOOLEAN",
	41: "BOOLEAN",
	45: "BOOLEAN",

	11: "BYTEA",
	31: "BYTEA",
	36: "BYTEA",

	19: "TEXT[]",
	20: "TEXT[]",
	21: "TEXT[]",
	23: "JSONB",

	22: "JSONB",
	24: "JSONB",

	9: "TEXT",
}

func informixDDL(t core.CanonicalType, length int) string {
	switch t {
	case core.TypeString:
		if length > 0 && length <= 255 {
			return sized("VARCHAR", length)
		}
		if length > 255 {
			return sized("LVARCHAR", length)
		}
		return "LVARCHAR"
	case core.TypeNumber:
		return "DECIMAL(32)"
	case core.TypeBoolean:
		return "BOOLEAN"
	case core.TypeDate:
		return "DATE"
	case core.TypeDateTime:
		return "DATETIME YEAR TO FRACTION(3)"
	case core.TypeBinary:
		return "BYTE"
	case core.TypeList:
		return "LIST(LVARCHAR NOT NULL)"
	case core.TypeSet:
		return "SET(LVARCHAR NOT NULL)"
	case core.TypeMultiSet:
		return "MULTISET(LVARCHAR NOT NULL)"
	case core.TypeRecord:
		return "ROW(payload LVARCHAR)"
	default:
		return "LVARCHAR"
	}
}
