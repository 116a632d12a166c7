package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// ScanReader streams a whole table forward-only in chunks of BatchSize.
//
// When the dialect plans a server cursor and the connection can pin a
// session, the cursor is declared on that session and fetched chunk by
// chunk. Otherwise one sequential query is run and its rows are consumed
// client-side. Close releases whatever is still open.
type ScanReader struct {
	conn   core.Connection
	spec   dialect.CursorSpec
	scan   scanner
	logger *slog.Logger

	session core.Session
	rows    *core.Rows
	names   []string
	keep    []bool
	done    bool
}

// NewScanReader plans a full scan of table.
func NewScanReader(conn core.Connection, d *dialect.Dialect, table string, batchSize int, opts ...Option) (*ScanReader, error) {
	spec, err := d.BuildFullScanCursor(table, batchSize)
	if err != nil {
		return nil, err
	}
	return &ScanReader{
		conn:   conn,
		spec:   spec,
		scan:   scanner{decoder: decoderOf(conn)},
		logger: buildOptions(opts).logger,
	}, nil
}

// Next returns the next chunk, or io.EOF when the table is exhausted.
func (r *ScanReader) Next(ctx context.Context) (*Chunk, error) {
	if r.done {
		return nil, io.EOF
	}
	if s, ok := r.conn.(core.Sessioner); ok && r.spec.ServerSide() {
		return r.fetch(ctx, s)
	}
	return r.stream(ctx)
}

func (r *ScanReader) fetch(ctx context.Context, s core.Sessioner) (*Chunk, error) {
	if r.session == nil {
		session, err := s.Session(ctx)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("declaring cursor", "cursor", r.spec.Name)
		if err := session.Exec(ctx, r.spec.Declare); err != nil {
			_ = session.Close()
			return nil, err
		}
		r.session = session
	}

	rows, err := r.session.Execute(ctx, r.spec.Fetch)
	if err != nil {
		r.abort(ctx)
		return nil, err
	}
	chunk, err := r.scan.readAll(rows)
	if err != nil {
		r.abort(ctx)
		return nil, err
	}

	if chunk.Len() < r.spec.BatchSize {
		if err := r.Close(ctx); err != nil {
			return nil, err
		}
	}
	if chunk.Len() == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

func (r *ScanReader) stream(ctx context.Context) (*Chunk, error) {
	if r.rows == nil {
		rows, err := r.conn.Execute(ctx, r.spec.Query)
		if err != nil {
			return nil, err
		}
		names, keep, err := r.scan.columns(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		r.rows, r.names, r.keep = rows, names, keep
	}

	chunk := &Chunk{Columns: r.names}
	for chunk.Len() < r.spec.BatchSize && r.rows.Next() {
		row, err := r.scan.next(r.rows, r.names, r.keep)
		if err != nil {
			r.abort(ctx)
			return nil, err
		}
		chunk.Rows = append(chunk.Rows, row)
	}

	if chunk.Len() < r.spec.BatchSize {
		err := r.rows.Err()
		if cerr := r.Close(ctx); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, err
		}
	}
	if chunk.Len() == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

// abort releases resources after a failed read, keeping the read error
// as the one reported.
func (r *ScanReader) abort(ctx context.Context) {
	if err := r.Close(ctx); err != nil {
		r.logger.Warn("failed to release scan", "error", err)
	}
}

// Close closes the open cursor or result set. It is safe to call more
// than once; after Close, Next returns io.EOF.
func (r *ScanReader) Close(ctx context.Context) error {
	r.done = true
	var errs []error
	if r.rows != nil {
		errs = append(errs, r.rows.Close())
		r.rows = nil
	}
	if r.session != nil {
		r.logger.Debug("closing cursor", "cursor", r.spec.Name)
		errs = append(errs, r.session.Exec(ctx, r.spec.Close), r.session.Close())
		r.session = nil
	}
	return errors.Join(errs...)
}
