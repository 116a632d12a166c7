package dialect

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// FormatLiteral renders v as an inline SQL literal of canonical type t.
// Values that do not fit t, and unknown types, are written as quoted strings.
func (d *Dialect) FormatLiteral(v any, t core.CanonicalType) string {
	c := &compiler{d: d}
	return c.literal(v, t)
}

// QuoteString single-quotes s, doubling every embedded quote.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (c *compiler) literal(v any, t core.CanonicalType) string {
	if v == nil {
		return "NULL"
	}
	cfg := &c.d.cfg

	switch t {
	case core.TypeNumber:
		n, ok := toDecimal(v)
		if !ok {
			return c.text(toString(v))
		}
		if c.bind {
			return c.param(n)
		}
		return n.String()

	case core.TypeBoolean:
		b, ok := toBool(v)
		if !ok {
			return c.text(toString(v))
		}
		if c.bind {
			return c.param(b)
		}
		if b {
			return cfg.TrueLiteral
		}
		return cfg.FalseLiteral

	case core.TypeDate:
		s := temporalString(v, "2006-01-02")
		if c.bind {
			return fmt.Sprintf(cfg.DateParam, c.param(s))
		}
		return fmt.Sprintf(cfg.DateLiteral, QuoteString(s))

	case core.TypeDateTime:
		s := temporalString(v, "2006-01-02 15:04:05")
		if c.bind {
			return fmt.Sprintf(cfg.DateTimeParam, c.param(s))
		}
		return fmt.Sprintf(cfg.DateTimeLiteral, QuoteString(s))

	case core.TypeList, core.TypeSet, core.TypeMultiSet:
		return c.collection(v, t)

	default:
		return c.text(toString(v))
	}
}

// text renders a string literal, or binds it.
func (c *compiler) text(s string) string {
	if c.bind {
		return c.param(s)
	}
	return QuoteString(s)
}

// collection renders a collection literal. Elements are always inlined as
// quoted strings.
func (c *compiler) collection(v any, t core.CanonicalType) string {
	elems := elements(v)
	strs := make([]string, len(elems))
	quoted := make([]string, len(elems))
	for i, e := range elems {
		strs[i] = toString(e)
		quoted[i] = QuoteString(strs[i])
	}

	switch c.d.cfg.Collections {
	case CollectionArray:
		return "ARRAY[" + strings.Join(quoted, ", ") + "]"
	case CollectionJSON:
		b, err := json.Marshal(strs)
		if err != nil {
			return QuoteString("[]")
		}
		return QuoteString(string(b))
	default:
		return strings.ToUpper(t.String()) + "{" + strings.Join(quoted, ", ") + "}"
	}
}

// list renders a parenthesised IN list.
func (c *compiler) list(v any, t core.CanonicalType) string {
	if t.IsCollection() {
		t = core.TypeString
	}
	elems := elements(v)
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = c.literal(e, t)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// elements flattens a slice value; a scalar is a one-element list.
func elements(v any) []any {
	if v == nil {
		return nil
	}
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	if _, isBytes := v.([]byte); isBytes {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return fromUint(uint64(n)), true
	case uint8:
		return decimal.NewFromInt(int64(n)), true
	case uint16:
		return decimal.NewFromInt(int64(n)), true
	case uint32:
		return decimal.NewFromInt(int64(n)), true
	case uint64:
		return fromUint(n), true
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(n), true
	default:
		return decimal.Decimal{}, false
	}
}

func fromUint(n uint64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatUint(n, 10))
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	default:
		if n, ok := toDecimal(v); ok {
			return !n.IsZero(), true
		}
		return false, false
	}
}

func temporalString(v any, layout string) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(layout)
	}
	return strings.TrimSpace(toString(v))
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
