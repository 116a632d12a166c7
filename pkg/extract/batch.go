package extract

import (
	"context"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// BatchConfig describes a paged table read.
type BatchConfig struct {
	Table     string
	Columns   []string
	OrderBy   []string
	BatchSize int
	Offset    int // first row to read
}

// BatchReader pages through a table with the dialect's offset idiom.
// A page shorter than BatchSize ends the read.
type BatchReader struct {
	conn    core.Connection
	dialect *dialect.Dialect
	cfg     BatchConfig
	scan    scanner
	logger  *slog.Logger

	offset int
	done   bool
}

// NewBatchReader returns a reader over cfg.Table. The configuration is
// checked by building the first page's SQL.
func NewBatchReader(conn core.Connection, d *dialect.Dialect, cfg BatchConfig, opts ...Option) (*BatchReader, error) {
	r := &BatchReader{
		conn:    conn,
		dialect: d,
		cfg:     cfg,
		scan:    scanner{decoder: decoderOf(conn)},
		logger:  buildOptions(opts).logger,
		offset:  cfg.Offset,
	}
	if _, err := r.query(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *BatchReader) query() (string, error) {
	return r.dialect.BuildBatchQuery(dialect.BatchSpec{
		Table:   r.cfg.Table,
		Columns: r.cfg.Columns,
		OrderBy: r.cfg.OrderBy,
		Offset:  r.offset,
		Limit:   r.cfg.BatchSize,
	})
}

// Next returns the next page, or io.EOF when the table is exhausted.
func (r *BatchReader) Next(ctx context.Context) (*Chunk, error) {
	if r.done {
		return nil, io.EOF
	}
	sql, err := r.query()
	if err != nil {
		return nil, err
	}

	r.logger.Debug("reading batch", "table", r.cfg.Table, "offset", r.offset)
	rows, err := r.conn.Execute(ctx, sql)
	if err != nil {
		return nil, err
	}
	chunk, err := r.scan.readAll(rows)
	if err != nil {
		return nil, err
	}

	r.offset += chunk.Len()
	if chunk.Len() < r.cfg.BatchSize {
		r.done = true
	}
	if chunk.Len() == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

// Offset returns the offset of the next page.
func (r *BatchReader) Offset() int {
	return r.offset
}

// Reset restarts the read at the configured offset.
func (r *BatchReader) Reset() {
	r.offset = r.cfg.Offset
	r.done = false
}
