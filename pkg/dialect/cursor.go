package dialect

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CursorSpec is the plan for streaming a whole table forward-only in
// fixed-size chunks, without offset pagination.
//
// With a server cursor the reader runs Declare once, Fetch until it
// returns fewer than BatchSize rows, then Close; all three must run on the
// same session. Otherwise it runs Query once and chunks the rows
// client-side.
type CursorSpec struct {
	Name      string
	Declare   string
	Fetch     string
	Close     string
	Query     string
	BatchSize int
}

// ServerSide reports whether the scan uses a named server cursor.
func (s CursorSpec) ServerSide() bool {
	return s.Declare != ""
}

// BuildFullScanCursor plans a sequential scan of table in chunks of
// batchSize rows.
func (d *Dialect) BuildFullScanCursor(table string, batchSize int) (CursorSpec, error) {
	if err := checkPage(0, batchSize); err != nil {
		return CursorSpec{}, err
	}
	if err := checkTable(table); err != nil {
		return CursorSpec{}, err
	}

	scan := "SELECT * FROM " + d.QuoteName(table)
	spec := CursorSpec{Query: scan, BatchSize: batchSize}
	if !d.cfg.ServerCursor {
		return spec, nil
	}

	spec.Name = "sqlconnect_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	spec.Declare = fmt.Sprintf("DECLARE %s NO SCROLL CURSOR WITH HOLD FOR %s", spec.Name, scan)
	spec.Fetch = fmt.Sprintf("FETCH FORWARD %d FROM %s", batchSize, spec.Name)
	spec.Close = "CLOSE " + spec.Name
	return spec, nil
}
