package catalog

import (
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// postgresToCanonical is keyed by information_schema.columns.data_type,
// with the common udt_name spellings alongside.
var postgresToCanonical = map[string]core.CanonicalType{
	"smallint":         core.TypeNumber,
	"integer":          core.TypeNumber,
	"bigint":           core.TypeNumber,
	"numeric":          core.TypeNumber,
	"decimal":          core.TypeNumber,
	"real":             core.TypeNumber,
	"double precision": core.TypeNumber,
	"smallserial":      core.TypeNumber,
	"serial":           core.TypeNumber,
	"bigserial":        core.TypeNumber,
	"int2":             core.TypeNumber,
	"int4":             core.TypeNumber,
	"int8":             core.TypeNumber,
	"float4":           core.TypeNumber,
	"float8":           core.TypeNumber,
	"money":            core.TypeString,

	"character varying": core.TypeString,
	"varchar":           core.TypeString,
	"character":         core.TypeString,
	"char":              core.TypeString,
	"bpchar":            core.TypeString,
	"text":              core.TypeString,
	"citext":            core.TypeString,
	"uuid":              core.TypeString,
	"xml":               core.TypeString,
	"USER-DEFINED":      core.TypeString,

	"boolean": core.TypeBoolean,
	"bool":    core.TypeBoolean,

	"date":                        core.TypeDate,
	"time":                        core.TypeString,
	"time without time zone":      core.TypeString,
	"time with time zone":         core.TypeString,
	"interval":                    core.TypeString,
	"timestamp":                   core.TypeDateTime,
	"timestamp without time zone": core.TypeDateTime,
	"timestamp with time zone":    core.TypeDateTime,
	"timestamptz":                 core.TypeDateTime,

	"bytea": core.TypeBinary,

	"json":  core.TypeRecord,
	"jsonb": core.TypeRecord,

	"ARRAY": core.TypeList,
}

func postgresCanonical(native string) core.CanonicalType {
	name := strings.TrimSpace(native)
	if t, ok := postgresToCanonical[name]; ok {
		return t
	}
	if t, ok := postgresToCanonical[strings.ToLower(name)]; ok {
		return t
	}
	// udt_name of an array type is its element type prefixed with "_".
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "[]") {
		return core.TypeList
	}
	return core.TypeUnknown
}

func postgresDDL(t core.CanonicalType, length int) string {
	switch t {
	case core.TypeString:
		if length > 0 {
			return sized("VARCHAR", length)
		}
		return "TEXT"
	case core.TypeNumber:
		return "NUMERIC"
	case core.TypeBoolean:
		return "BOOLEAN"
	case core.TypeDate:
		return "DATE"
	case core.TypeDateTime:
		return "TIMESTAMP"
	case core.TypeBinary:
		return "BYTEA"
	case core.TypeList, core.TypeSet, core.TypeMultiSet:
		return "TEXT[]"
	case core.TypeRecord:
		return "JSONB"
	default:
		return "TEXT"
	}
}
