package informix

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// Catalog reads the systables family. The schema of a table is its owner.
type Catalog struct{}

// indexParts matches a column number against the key parts of an index;
// descending parts are stored negated.
var indexParts = func() string {
	parts := make([]string, 16)
	for i := range parts {
		parts[i] = fmt.Sprintf("ABS(i.part%d)", i+1)
	}
	return "c.colno IN (" + strings.Join(parts, ", ") + ")"
}()

// ListTables lists user tables, optionally of one owner.
func (Catalog) ListTables(owner string) (string, []any) {
	q := `SELECT TRIM(owner), TRIM(tabname)
FROM systables
WHERE tabtype = 'T' AND tabname NOT LIKE 'sys%'`
	if owner == "" {
		return q + "\nORDER BY 2", nil
	}
	return q + " AND owner = ?\nORDER BY 2", []any{owner}
}

// Columns lists the columns of a table. The native type is the raw
// coltype, NOT NULL flag included.
func (Catalog) Columns(table core.TableName) (string, []any) {
	q := `SELECT c.colno,
       TRIM(c.colname),
       c.coltype,
       c.collength,
       CASE WHEN BITAND(c.coltype, 256) = 256 THEN 0 ELSE 1 END,
       d.default
FROM systables t
JOIN syscolumns c ON c.tabid = t.tabid
LEFT OUTER JOIN sysdefaults d ON d.tabid = c.tabid AND d.colno = c.colno
WHERE t.tabname = ?`
	args := []any{table.Name}
	if table.Schema != "" {
		q += " AND t.owner = ?"
		args = append(args, table.Schema)
	}
	return q + "\nORDER BY c.colno", args
}

// ColumnKeys counts the primary key, foreign key and index memberships of a column.
func (Catalog) ColumnKeys(table core.TableName, column string) (string, []any) {
	q := `SELECT
  (SELECT COUNT(*)
   FROM sysconstraints k
   JOIN sysindexes i ON i.idxname = k.idxname AND i.tabid = k.tabid
   WHERE k.tabid = t.tabid AND k.constrtype = 'P' AND ` + indexParts + `) AS is_primary_key,
  (SELECT COUNT(*)
   FROM sysconstraints k
   JOIN sysreferences r ON r.constrid = k.constrid
   JOIN sysindexes i ON i.idxname = k.idxname AND i.tabid = k.tabid
   WHERE k.tabid = t.tabid AND k.constrtype = 'R' AND ` + indexParts + `) AS is_foreign_key,
  (SELECT COUNT(*)
   FROM sysindexes i
   WHERE i.tabid = t.tabid AND ` + indexParts + `) AS is_indexed
FROM systables t
JOIN syscolumns c ON c.tabid = t.tabid
WHERE t.tabname = ? AND c.colname = ?`
	args := []any{table.Name, column}
	if table.Schema != "" {
		q += " AND t.owner = ?"
		args = append(args, table.Schema)
	}
	return q, args
}
