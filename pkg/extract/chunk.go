package extract

import (
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// Chunk is one bounded slice of a result set.
type Chunk struct {
	Columns []string
	Rows    []core.Row
}

// Len returns the number of rows in the chunk.
func (c *Chunk) Len() int {
	return len(c.Rows)
}

// Option configures a reader.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the reader's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// decoderOf returns the connection's value decoder, if it has one.
func decoderOf(conn core.Connection) core.ValueDecoder {
	if d, ok := conn.(core.ValueDecoder); ok {
		return d
	}
	return nil
}

// scanner turns database rows into core.Rows.
type scanner struct {
	decoder core.ValueDecoder
	drop    string // column removed from every row, matched case-insensitively
}

// columns returns the visible column names and, per result column, whether
// it is kept.
func (s scanner) columns(rows *core.Rows) ([]string, []bool, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	keep := make([]bool, len(names))
	visible := make([]string, 0, len(names))
	for i, n := range names {
		if s.drop != "" && strings.EqualFold(n, s.drop) {
			continue
		}
		keep[i] = true
		visible = append(visible, n)
	}
	return visible, keep, nil
}

// next scans the current row.
func (s scanner) next(rows *core.Rows, names []string, keep []bool) (core.Row, error) {
	vals := make([]any, len(keep))
	ptrs := make([]any, len(keep))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(core.Row, len(names))
	j := 0
	for i, v := range vals {
		if !keep[i] {
			continue
		}
		if s.decoder != nil {
			v = s.decoder.DecodeValue(v)
		}
		row[names[j]] = v
		j++
	}
	return row, nil
}

// readAll drains rows into a chunk and always closes them.
func (s scanner) readAll(rows *core.Rows) (*Chunk, error) {
	defer func() { _ = rows.Close() }()

	names, keep, err := s.columns(rows)
	if err != nil {
		return nil, err
	}
	chunk := &Chunk{Columns: names}
	for rows.Next() {
		row, err := s.next(rows, names, keep)
		if err != nil {
			return nil, err
		}
		chunk.Rows = append(chunk.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chunk, nil
}
