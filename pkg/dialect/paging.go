package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/query"
)

// BatchSpec describes one bounded read of a table.
type BatchSpec struct {
	Table   string
	Columns []string // empty selects *
	OrderBy []string
	Offset  int
	Limit   int
}

var (
	// ErrInvalidLimit is returned for a non-positive batch size.
	ErrInvalidLimit = errors.New("limit must be positive")
	// ErrInvalidOffset is returned for a negative offset.
	ErrInvalidOffset = errors.New("offset must not be negative")
)

// BuildBatchQuery returns the SQL reading rows [Offset, Offset+Limit) of a
// table in the dialect's own pagination idiom.
func (d *Dialect) BuildBatchQuery(spec BatchSpec) (string, error) {
	if err := checkPage(spec.Offset, spec.Limit); err != nil {
		return "", err
	}
	if err := checkTable(spec.Table); err != nil {
		return "", err
	}
	if err := checkColumns(spec.Columns); err != nil {
		return "", err
	}
	if err := checkColumns(spec.OrderBy); err != nil {
		return "", err
	}

	cols := "*"
	if len(spec.Columns) > 0 {
		cols = strings.Join(d.quoteAll(spec.Columns), ", ")
	}
	return d.page(cols, "FROM "+d.QuoteName(spec.Table), d.quoteAll(spec.OrderBy), spec.Offset, spec.Limit), nil
}

// page assembles SELECT <cols> <from> [ORDER BY keys] with the paging idiom.
func (d *Dialect) page(cols, from string, orderBy []string, offset, limit int) string {
	order := ""
	if len(orderBy) > 0 {
		order = " ORDER BY " + strings.Join(orderBy, ", ")
	}

	switch d.cfg.Paging {
	case PagingSkipFirst:
		return fmt.Sprintf("SELECT SKIP %d FIRST %d %s %s%s", offset, limit, cols, from, order)
	case PagingOffsetFetch:
		if order == "" {
			order = " ORDER BY (SELECT NULL)"
		}
		return fmt.Sprintf("SELECT %s %s%s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", cols, from, order, offset, limit)
	default:
		return fmt.Sprintf("SELECT %s %s%s OFFSET %d LIMIT %d", cols, from, order, offset, limit)
	}
}

func checkPage(offset, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if offset < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}
	return nil
}

func checkTable(table string) error {
	if !query.ValidTable(table) {
		return &query.ValidationError{Path: "table", Msg: fmt.Sprintf("invalid table identifier %q", table)}
	}
	return nil
}

func checkColumns(cols []string) error {
	for _, c := range cols {
		if !query.ValidIdentifier(c) {
			return &query.ValidationError{Path: "column", Msg: fmt.Sprintf("invalid column identifier %q", c)}
		}
	}
	return nil
}
