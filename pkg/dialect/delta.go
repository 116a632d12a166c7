package dialect

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DeltaStrategy selects the SQL shape of a CDC delta query.
type DeltaStrategy int

const (
	// StrategyDefault uses the dialect's preferred strategy.
	StrategyDefault DeltaStrategy = iota
	// StrategyCorrelated keeps the row no other row of its key supersedes.
	StrategyCorrelated
	// StrategyWindow ranks rows per key with ROW_NUMBER and keeps rank 1.
	StrategyWindow
	// StrategyDistinctOn uses DISTINCT ON (keys); Postgres only.
	StrategyDistinctOn
)

// String returns the strategy name accepted by ParseDeltaStrategy.
func (s DeltaStrategy) String() string {
	switch s {
	case StrategyCorrelated:
		return "correlated"
	case StrategyWindow:
		return "window"
	case StrategyDistinctOn:
		return "distinct-on"
	default:
		return "default"
	}
}

// ParseDeltaStrategy parses a strategy name.
func ParseDeltaStrategy(s string) (DeltaStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return StrategyDefault, nil
	case "correlated", "subquery":
		return StrategyCorrelated, nil
	case "window", "row_number":
		return StrategyWindow, nil
	case "distinct-on", "distinct_on", "distinct":
		return StrategyDistinctOn, nil
	default:
		return StrategyDefault, fmt.Errorf("unknown delta strategy %q", s)
	}
}

// DefaultTimestampColumn is the change-log operation timestamp column.
const DefaultTimestampColumn = "op_timestamp"

// RankColumn is the helper column added by the window strategy.
const RankColumn = "cdc_rank"

var (
	// ErrStrategyUnsupported is returned when a dialect cannot run a strategy.
	ErrStrategyUnsupported = errors.New("delta strategy not supported by dialect")
	// ErrTieBreakRequired is returned for a correlated delta without a tie-break column.
	ErrTieBreakRequired = errors.New("correlated delta requires a tie-break column")
)

// DeltaSpec describes one page of a delta read against a change log.
type DeltaSpec struct {
	LogTable        string
	PrimaryKeys     []string
	TimestampColumn string // defaults to DefaultTimestampColumn
	// TieBreak orders change-log rows that share a key and a timestamp;
	// the greatest value wins. Required by StrategyCorrelated.
	TieBreak  string
	Watermark time.Time
	Offset    int
	Limit     int
	Strategy  DeltaStrategy
}

// ResolveDeltaStrategy maps StrategyDefault to the dialect's preferred strategy.
func (d *Dialect) ResolveDeltaStrategy(s DeltaStrategy) DeltaStrategy {
	if s == StrategyDefault {
		return d.cfg.DefaultDelta
	}
	return s
}

// BuildDeltaQuery returns the SQL selecting, for every primary key, the
// most recent change-log row whose timestamp is strictly greater than the
// watermark. Rows are ordered by the keys so successive offsets never
// overlap.
func (d *Dialect) BuildDeltaQuery(spec DeltaSpec) (string, error) {
	if err := checkPage(spec.Offset, spec.Limit); err != nil {
		return "", err
	}
	if err := checkTable(spec.LogTable); err != nil {
		return "", err
	}
	if len(spec.PrimaryKeys) == 0 {
		return "", errors.New("delta query requires at least one primary key")
	}
	if err := checkColumns(spec.PrimaryKeys); err != nil {
		return "", err
	}
	if spec.TimestampColumn == "" {
		spec.TimestampColumn = DefaultTimestampColumn
	}
	if err := checkColumns([]string{spec.TimestampColumn}); err != nil {
		return "", err
	}
	if spec.TieBreak != "" {
		if err := checkColumns([]string{spec.TieBreak}); err != nil {
			return "", err
		}
	}

	switch strategy := d.ResolveDeltaStrategy(spec.Strategy); strategy {
	case StrategyCorrelated:
		if spec.TieBreak == "" {
			return "", ErrTieBreakRequired
		}
		return d.correlatedDelta(spec), nil
	case StrategyDistinctOn:
		if !d.cfg.SupportsDistinctOn {
			return "", fmt.Errorf("%w: %s on %s", ErrStrategyUnsupported, strategy, d.Name())
		}
		return d.distinctOnDelta(spec), nil
	default:
		return d.windowDelta(spec), nil
	}
}

// WatermarkLiteral renders t, converted to UTC, as the dialect's timestamp
// literal at the dialect's watermark precision. Finer digits are cut.
func (d *Dialect) WatermarkLiteral(t time.Time) string {
	return fmt.Sprintf(d.cfg.WatermarkLiteral, t.UTC().Format(d.cfg.WatermarkLayout))
}

// WatermarkCondition renders "col > t". A watermark finer than the
// dialect's precision is rounded up and compared with >=, which selects
// exactly the storable timestamps after t.
func (d *Dialect) WatermarkCondition(col string, t time.Time) string {
	t = t.UTC()
	up := t.Truncate(d.cfg.WatermarkPrecision)
	if up.Equal(t) {
		return col + " > " + d.WatermarkLiteral(t)
	}
	return col + " >= " + d.WatermarkLiteral(up.Add(d.cfg.WatermarkPrecision))
}

// newestFirst is the per-key ordering: timestamp then tie-break, descending.
func newestFirst(ts, tieBreak string) string {
	if tieBreak == "" {
		return ts + " DESC"
	}
	return ts + " DESC, " + tieBreak + " DESC"
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

// correlatedDelta keeps a row when no other row of its key is newer, or
// equally new with a greater tie-break value.
func (d *Dialect) correlatedDelta(spec DeltaSpec) string {
	table := d.QuoteName(spec.LogTable)
	keys := d.quoteAll(spec.PrimaryKeys)
	ts := d.QuoteName(spec.TimestampColumn)
	tb := d.QuoteName(spec.TieBreak)

	match := make([]string, len(keys))
	for i, k := range keys {
		match[i] = fmt.Sprintf("m.%s = l.%s", k, k)
	}
	newer := fmt.Sprintf("(m.%[1]s > l.%[1]s OR (m.%[1]s = l.%[1]s AND m.%[2]s > l.%[2]s))", ts, tb)
	from := fmt.Sprintf("FROM %s l WHERE %s AND NOT EXISTS (SELECT 1 FROM %s m WHERE %s AND %s)",
		table, d.WatermarkCondition("l."+ts, spec.Watermark), table, strings.Join(match, " AND "), newer)
	return d.page("l.*", from, prefixed("l", keys), spec.Offset, spec.Limit)
}

func (d *Dialect) windowDelta(spec DeltaSpec) string {
	keys := strings.Join(d.quoteAll(spec.PrimaryKeys), ", ")
	ts := d.QuoteName(spec.TimestampColumn)
	order := newestFirst(ts, d.QuoteName(spec.TieBreak))
	from := fmt.Sprintf("FROM (SELECT l.*, ROW_NUMBER() OVER (PARTITION BY %s ORDER BY %s) AS %s FROM %s l WHERE %s) ranked WHERE %s = 1",
		keys, order, RankColumn, d.QuoteName(spec.LogTable), d.WatermarkCondition(ts, spec.Watermark), RankColumn)
	return d.page("*", from, d.quoteAll(spec.PrimaryKeys), spec.Offset, spec.Limit)
}

func (d *Dialect) distinctOnDelta(spec DeltaSpec) string {
	keys := strings.Join(d.quoteAll(spec.PrimaryKeys), ", ")
	ts := d.QuoteName(spec.TimestampColumn)
	return fmt.Sprintf("SELECT DISTINCT ON (%s) * FROM %s WHERE %s ORDER BY %s, %s OFFSET %d LIMIT %d",
		keys, d.QuoteName(spec.LogTable), d.WatermarkCondition(ts, spec.Watermark),
		keys, newestFirst(ts, d.QuoteName(spec.TieBreak)), spec.Offset, spec.Limit)
}
