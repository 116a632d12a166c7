package catalog

import "github.com/leapstack-labs/sqlconnect/pkg/core"

// sqlServerToCanonical is keyed by lower-cased sys.types names.
var sqlServerToCanonical = map[string]core.CanonicalType{
	"int":        core.TypeNumber,
	"bigint":     core.TypeNumber,
	"smallint":   core.TypeNumber,
	"tinyint":    core.TypeNumber,
	"decimal":    core.TypeNumber,
	"numeric":    core.TypeNumber,
	"float":      core.TypeNumber,
	"real":       core.TypeNumber,
	"money":      core.TypeNumber,
	"smallmoney": core.TypeNumber,

	"bit": core.TypeBoolean,

	"char":             core.TypeString,
	"nchar":            core.TypeString,
	"varchar":          core.TypeString,
	"nvarchar":         core.TypeString,
	"text":             core.TypeString,
	"ntext":            core.TypeString,
	"xml":              core.TypeString,
	"uniqueidentifier": core.TypeString,
	"sysname":          core.TypeString,

	"binary":     core.TypeBinary,
	"varbinary":  core.TypeBinary,
	"image":      core.TypeBinary,
	"rowversion": core.TypeBinary,
	"timestamp":  core.TypeBinary, // synonym of rowversion, not a temporal type

	"date":           core.TypeDate,
	"time":           core.TypeString,
	"datetime":       core.TypeDateTime,
	"datetime2":      core.TypeDateTime,
	"smalldatetime":  core.TypeDateTime,
	"datetimeoffset": core.TypeDateTime,

	// hierarchyid, geography, geometry and sql_variant stay unmapped.
}

var sqlServerToPostgres = map[string]string{
	"int":        "INTEGER",
	"integer":    "INTEGER",
	"bigint":     "BIGINT",
	"smallint":   "SMALLINT",
	"tinyint":    "SMALLINT",
	"decimal":    "NUMERIC",
	"numeric":    "NUMERIC",
	"money":      "MONEY",
	"smallmoney": "MONEY",
	"float":      "DOUBLE PRECISION",
	"real":       "REAL",

	"bit": "BOOLEAN",

	"char":     "CHAR",
	"nchar":    "CHAR",
	"varchar":  "VARCHAR",
	"nvarchar": "VARCHAR",
	"text":     "TEXT",
	"ntext":    "TEXT",
	"xml":      "XML",

	"binary":     "BYTEA",
	"varbinary":  "BYTEA",
	"image":      "BYTEA",
	"rowversion": "BYTEA",
	"timestamp":  "BYTEA",

	"uniqueidentifier": "UUID",
	"sql_variant":      "JSONB",
	"sysname":          "TEXT",

	"date":           "DATE",
	"time":           "TIME",
	"datetime":       "TIMESTAMP",
	"smalldatetime":  "TIMESTAMP",
	"datetime2":      "TIMESTAMP",
	"datetimeoffset": "TIMESTAMPTZ",

	"geometry":    "GEOMETRY",
	"geography":   "GEOGRAPHY",
	"hierarchyid": "LTREE",
}

func sqlServerDDL(t core.CanonicalType, length int) string {
	switch t {
	case core.TypeString:
		if length > 0 && length <= 4000 {
			return sized("NVARCHAR", length)
		}
		return "NVARCHAR(MAX)"
	case core.TypeNumber:
		return "DECIMAL(38, 10)"
	case core.TypeBoolean:
		return "BIT"
	case core.TypeDate:
		return "DATE"
	case core.TypeDateTime:
		return "DATETIME2"
	case core.TypeBinary:
		return "VARBINARY(MAX)"
	default:
		// Collections and records are stored as JSON text.
		return "NVARCHAR(MAX)"
	}
}
