package extract

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// DeltaConfig describes an incremental read of a CDC change log.
type DeltaConfig struct {
	LogTable        string
	PrimaryKeys     []string
	TimestampColumn string // defaults to dialect.DefaultTimestampColumn
	TieBreak        string // orders rows sharing a key and timestamp; see dialect.DeltaSpec
	Watermark       time.Time
	BatchSize       int
	Strategy        dialect.DeltaStrategy
}

// DeltaReader returns, for every primary key, the newest change-log row
// whose timestamp is after the watermark. The watermark stays fixed while
// paging; Watermark reports the value to use for the next sync.
type DeltaReader struct {
	conn    core.Connection
	dialect *dialect.Dialect
	cfg     DeltaConfig
	scan    scanner
	logger  *slog.Logger

	offset int
	done   bool
	latest time.Time
}

// NewDeltaReader returns a reader over cfg.LogTable.
func NewDeltaReader(conn core.Connection, d *dialect.Dialect, cfg DeltaConfig, opts ...Option) (*DeltaReader, error) {
	if cfg.TimestampColumn == "" {
		cfg.TimestampColumn = dialect.DefaultTimestampColumn
	}
	scan := scanner{decoder: decoderOf(conn)}
	if d.ResolveDeltaStrategy(cfg.Strategy) == dialect.StrategyWindow {
		scan.drop = dialect.RankColumn
	}
	r := &DeltaReader{
		conn:    conn,
		dialect: d,
		cfg:     cfg,
		scan:    scan,
		logger:  buildOptions(opts).logger,
		latest:  cfg.Watermark,
	}
	if _, err := r.query(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DeltaReader) query() (string, error) {
	return r.dialect.BuildDeltaQuery(dialect.DeltaSpec{
		LogTable:        r.cfg.LogTable,
		PrimaryKeys:     r.cfg.PrimaryKeys,
		TimestampColumn: r.cfg.TimestampColumn,
		TieBreak:        r.cfg.TieBreak,
		Watermark:       r.cfg.Watermark,
		Offset:          r.offset,
		Limit:           r.cfg.BatchSize,
		Strategy:        r.cfg.Strategy,
	})
}

// Next returns the next page of changes, or io.EOF when there are no more.
func (r *DeltaReader) Next(ctx context.Context) (*Chunk, error) {
	if r.done {
		return nil, io.EOF
	}
	sql, err := r.query()
	if err != nil {
		return nil, err
	}

	r.logger.Debug("reading delta",
		"table", r.cfg.LogTable,
		"offset", r.offset,
		"watermark", r.cfg.Watermark)
	rows, err := r.conn.Execute(ctx, sql)
	if err != nil {
		return nil, err
	}
	chunk, err := r.scan.readAll(rows)
	if err != nil {
		return nil, err
	}

	for _, row := range chunk.Rows {
		r.observe(row)
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

func (r *DeltaReader) observe(row core.Row) {
	for name, v := range row {
		if !strings.EqualFold(name, r.cfg.TimestampColumn) {
			continue
		}
		if ts, ok := asTime(v); ok && ts.After(r.latest) {
			r.latest = ts
		}
		return
	}
}

// Watermark returns the newest change timestamp seen so far, or the
// configured watermark when no newer row has been read.
func (r *DeltaReader) Watermark() time.Time {
	return r.latest
}

// Reset restarts the read from the first page with the same watermark.
func (r *DeltaReader) Reset() {
	r.offset = 0
	r.done = false
	r.latest = r.cfg.Watermark
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func asTime(v any) (time.Time, bool) {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
