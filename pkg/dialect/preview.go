package dialect

import (
	"fmt"
	"strings"
)

// Preview wraps an arbitrary SELECT so that at most rows rows come back.
// A trailing semicolon is dropped.
func (d *Dialect) Preview(sql string, rows int) string {
	sql = strings.TrimRight(strings.TrimSpace(sql), "; \n\t")
	return fmt.Sprintf(d.cfg.Preview, sql, rows)
}
