package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// render writes v as JSON or YAML, or calls asTable for the table format.
func render(w io.Writer, format string, v any, asTable func(io.Writer)) error {
	switch format {
	case "json":
		return renderJSON(w, v)
	case "yaml":
		return renderYAML(w, v)
	default:
		asTable(w)
		return nil
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

func tablesTable(tables []core.TableName) func(io.Writer) {
	return func(w io.Writer) {
		if len(tables) == 0 {
			_, _ = fmt.Fprintln(w, "(0 tables)")
			return
		}
		t := newTable(w, "Schema", "Table")
		for _, tn := range tables {
			t.AppendRow(table.Row{tn.Schema, tn.Name})
		}
		t.Render()
	}
}

func columnsTable(cols []core.ColumnDescriptor) func(io.Writer) {
	return func(w io.Writer) {
		t := newTable(w, "#", "Column", "Native", "Type", "Length", "Null", "PK", "FK", "Idx", "Default")
		for _, c := range cols {
			def := ""
			if c.Default != nil {
				def = *c.Default
			}
			t.AppendRow(table.Row{
				c.Position, c.Name, c.NativeType, c.CanonicalType.String(), c.Length,
				flag(c.Nullable), flag(c.IsPrimaryKey), flag(c.IsForeignKey), flag(c.IsIndexed), def,
			})
		}
		t.Render()
	}
}

func flag(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// rowWriter writes rows as JSON lines.
type rowWriter struct {
	enc   *json.Encoder
	count int
}

func newRowWriter(w io.Writer) *rowWriter {
	return &rowWriter{enc: json.NewEncoder(w)}
}

func (r *rowWriter) write(rows []core.Row) error {
	for _, row := range rows {
		if err := r.enc.Encode(jsonRow(row)); err != nil {
			return err
		}
		r.count++
	}
	return nil
}

// jsonRow converts driver values that encoding/json would render poorly.
func jsonRow(row core.Row) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		switch val := v.(type) {
		case []byte:
			out[k] = string(val)
		case time.Time:
			out[k] = val.Format(time.RFC3339Nano)
		default:
			out[k] = val
		}
	}
	return out
}
