// Package dialect compiles engine-neutral query descriptions into SQL text.
//
// A Dialect is one shared implementation parameterised by a Config of format
// templates; the concrete definitions live in pkg/dialects/*/ and register
// themselves from init(). Everything here is pure: no I/O, no shared mutable
// state, safe for concurrent use.
package dialect

import (
	"strings"
	"time"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// PagingStyle is the pagination idiom of a dialect. The idioms are not
// interchangeable.
type PagingStyle int

const (
	// PagingSkipFirst emits SELECT SKIP n FIRST m ...
	PagingSkipFirst PagingStyle = iota
	// PagingOffsetLimit emits ... OFFSET n LIMIT m
	PagingOffsetLimit
	// PagingOffsetFetch emits ... ORDER BY k OFFSET n ROWS FETCH NEXT m ROWS ONLY
	PagingOffsetFetch
)

// CollectionStyle is how a collection literal is written.
type CollectionStyle int

const (
	// CollectionBraces writes LIST{'a', 'b'}, SET{...}, MULTISET{...}.
	CollectionBraces CollectionStyle = iota
	// CollectionArray writes ARRAY['a', 'b'].
	CollectionArray
	// CollectionJSON writes the elements as a JSON array text literal.
	CollectionJSON
)

// Config is the pure data definition of a dialect.
//
// Templates are fmt formats. Operator templates receive the column
// expression then the formatted literal; the date and datetime templates
// receive the quoted value (or placeholder).
type Config struct {
	Name          string
	Kind          core.Dialect
	DefaultSchema string
	Placeholder   core.PlaceholderStyle
	Identifiers   Identifiers

	// Literals
	DateLiteral     string
	DateTimeLiteral string
	DateParam       string // bind-mode form of DateLiteral
	DateTimeParam   string // bind-mode form of DateTimeLiteral
	TrueLiteral     string
	FalseLiteral    string
	Collections     CollectionStyle
	CollectionCast  string

	// Operators
	RegexMatch      string
	RegexNotMatch   string
	ListContains    string
	ListNotContains string

	// Clauses
	NativeRightJoin bool
	YearPart        string
	MonthPart       string
	DayDiff         string // receives left then right; empty means (l - r)

	// Extraction
	Paging             PagingStyle
	Preview            string // receives the wrapped SQL then the row count
	WatermarkLiteral   string
	WatermarkLayout    string        // Go time layout; its fraction digits should match WatermarkPrecision
	WatermarkPrecision time.Duration // finest timestamp step the change log stores
	DefaultDelta       DeltaStrategy
	SupportsDistinctOn bool
	ServerCursor       bool
}

// Identifiers configures identifier quoting for generated DDL.
type Identifiers struct {
	Quote    string
	QuoteEnd string
	Escape   string
}

// Dialect is a registered SQL dialect.
type Dialect struct {
	cfg           Config
	catalog       Catalog
	reservedWords map[string]struct{}
}

// Name returns the dialect tag.
func (d *Dialect) Name() string {
	return d.cfg.Name
}

// Kind returns the dialect enum value.
func (d *Dialect) Kind() core.Dialect {
	return d.cfg.Kind
}

// Config returns a copy of the dialect's format tables.
func (d *Dialect) Config() Config {
	return d.cfg
}

// DefaultSchema returns the schema used for unqualified table names.
func (d *Dialect) DefaultSchema() string {
	return d.cfg.DefaultSchema
}

// Placeholder returns the dialect's bind-parameter style.
func (d *Dialect) Placeholder() core.PlaceholderStyle {
	return d.cfg.Placeholder
}

// Catalog returns the dialect's introspection queries.
func (d *Dialect) Catalog() Catalog {
	return d.catalog
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	id := d.cfg.Identifiers
	if id.Quote == "" {
		return name
	}
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, id.QuoteEnd, id.Escape)
	return id.Quote + escaped + id.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// QuoteName applies QuoteIdentifierIfNeeded to every part of a dotted
// name such as schema.table.
func (d *Dialect) QuoteName(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifierIfNeeded(p)
	}
	return strings.Join(parts, ".")
}

func (d *Dialect) quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = d.QuoteName(n)
	}
	return out
}

// ---------- Builder ----------

// Builder assembles a Dialect from its Config.
type Builder struct {
	d *Dialect
}

// New starts a dialect definition from a pure data Config.
func New(cfg Config) *Builder {
	if cfg.WatermarkLayout == "" {
		cfg.WatermarkLayout = "2006-01-02 15:04:05.000000"
	}
	if cfg.WatermarkPrecision <= 0 {
		cfg.WatermarkPrecision = time.Microsecond
	}
	if cfg.DateParam == "" {
		cfg.DateParam = cfg.DateLiteral
	}
	if cfg.DateTimeParam == "" {
		cfg.DateTimeParam = cfg.DateTimeLiteral
	}
	return &Builder{d: &Dialect{
		cfg:           cfg,
		reservedWords: make(map[string]struct{}),
	}}
}

// WithCatalog sets the introspection queries of the dialect.
func (b *Builder) WithCatalog(c Catalog) *Builder {
	b.d.catalog = c
	return b
}

// WithReservedWords adds words that must be quoted in generated DDL.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.d.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// Build returns the finished dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}
