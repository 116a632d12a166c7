package sqlserver

import (
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

func init() {
	dialect.Register(SQLServer)
}

var sqlServerReservedWords = []string{
	"add", "all", "alter", "and", "any", "as", "asc", "backup", "begin",
	"between", "by", "cascade", "case", "check", "column", "commit",
	"constraint", "create", "cross", "current", "cursor", "database",
	"default", "delete", "desc", "distinct", "drop", "else", "end", "exec",
	"exists", "fetch", "file", "for", "foreign", "from", "full", "function",
	"grant", "group", "having", "identity", "in", "index", "inner", "insert",
	"into", "is", "join", "key", "left", "like", "merge", "not", "null",
	"of", "offset", "on", "open", "or", "order", "outer", "percent", "plan",
	"primary", "procedure", "public", "references", "right", "rowcount",
	"rule", "schema", "select", "set", "table", "then", "to", "top", "tran",
	"trigger", "union", "unique", "update", "user", "values", "view",
	"when", "where", "while", "with",
}

// SQLServer is the SQL Server dialect.
var SQLServer = dialect.New(Config).
	WithCatalog(Catalog{}).
	WithReservedWords(sqlServerReservedWords...).
	Build()
