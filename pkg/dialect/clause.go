package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/query"
)

// ClauseBuilder is the common contract of the per-dialect clause builders.
// The Build* methods format their input best-effort and never fail;
// Compile validates the whole description first.
type ClauseBuilder interface {
	BuildSelect(fields []query.SelectedField) string
	BuildJoins(baseTable string, joins []query.Join) string
	BuildWhere(conds []query.Condition, invert bool) string
	BuildGroupBy(fields []query.GroupField) string
	BuildHaving(conds []query.Condition) string
	Compile(q *query.Query, opts ...CompileOption) (Statement, error)
}

var _ ClauseBuilder = (*Dialect)(nil)

// Statement is compiled SQL plus its bind arguments (bind mode only).
type Statement struct {
	SQL  string
	Args []any
}

type compileOptions struct {
	bind bool
}

// CompileOption configures Compile.
type CompileOption func(*compileOptions)

// WithBindParams replaces scalar literals with placeholders in the
// dialect's style and returns the values in Statement.Args. Collection
// literals stay inline.
func WithBindParams() CompileOption {
	return func(o *compileOptions) {
		o.bind = true
	}
}

// compiler carries the bind arguments of one compilation.
type compiler struct {
	d    *Dialect
	bind bool
	args []any
}

func (c *compiler) param(v any) string {
	c.args = append(c.args, v)
	return c.d.cfg.Placeholder.Format(len(c.args))
}

// Compile validates q and joins the non-empty SELECT, FROM+JOIN, WHERE,
// GROUP BY and HAVING fragments with newlines. On validation failure no
// SQL is returned.
func (d *Dialect) Compile(q *query.Query, opts ...CompileOption) (Statement, error) {
	if err := q.Validate(); err != nil {
		return Statement{}, err
	}
	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := &compiler{d: d, bind: o.bind}
	parts := []string{
		c.selectClause(q.SelectedFields),
		c.fromClause(q.BaseTable, q.Joins),
		c.whereClause(q.WhereConditions, q.InvertWhere),
		c.groupByClause(q.GroupByFields),
		c.havingClause(q.Having),
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return Statement{SQL: strings.Join(nonEmpty, "\n"), Args: c.args}, nil
}

// BuildSelect returns the SELECT clause; no fields means SELECT *.
func (d *Dialect) BuildSelect(fields []query.SelectedField) string {
	return (&compiler{d: d}).selectClause(fields)
}

// BuildJoins returns the whole FROM fragment: the base table and its joins.
func (d *Dialect) BuildJoins(baseTable string, joins []query.Join) string {
	return (&compiler{d: d}).fromClause(baseTable, joins)
}

// BuildWhere returns the WHERE clause, or "" without conditions.
func (d *Dialect) BuildWhere(conds []query.Condition, invert bool) string {
	return (&compiler{d: d}).whereClause(conds, invert)
}

// BuildGroupBy returns the GROUP BY clause, or "".
func (d *Dialect) BuildGroupBy(fields []query.GroupField) string {
	return (&compiler{d: d}).groupByClause(fields)
}

// BuildHaving returns the HAVING clause, or "".
func (d *Dialect) BuildHaving(conds []query.Condition) string {
	return (&compiler{d: d}).havingClause(conds)
}

func (c *compiler) name(id string) string {
	return c.d.QuoteName(id)
}

func (c *compiler) qualify(table, field string) string {
	if table == "" {
		return c.name(field)
	}
	return c.name(table) + "." + c.name(field)
}

func (c *compiler) selectClause(fields []query.SelectedField) string {
	if len(fields) == 0 {
		return "SELECT *"
	}

	distinct := false
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		expr := c.qualify(f.Table, f.Field)
		if f.IsAggregate() {
			agg := query.ParseAggregate(f.Aggregate)
			if agg == query.AggDistinct && !f.IsCountAll {
				distinct = true
			} else {
				expr = aggregateExpr(expr, agg, f.IsCountAll)
			}
		} else if f.FieldType().IsCollection() && c.d.cfg.CollectionCast != "" {
			expr = fmt.Sprintf(c.d.cfg.CollectionCast, expr)
		}
		if alias := query.AliasName(f.Alias); alias != "" {
			expr += " AS " + c.name(alias)
		}
		parts = append(parts, expr)
	}

	if distinct {
		return "SELECT DISTINCT " + strings.Join(parts, ", ")
	}
	return "SELECT " + strings.Join(parts, ", ")
}

// aggregateExpr wraps expr: COUNT(*) first, then COUNT(DISTINCT x), then FN(x).
func aggregateExpr(expr string, agg query.Aggregate, countAll bool) string {
	switch {
	case countAll || agg == query.AggCountAll:
		return "COUNT(*)"
	case agg == query.AggCountDistinct:
		return "COUNT(DISTINCT " + expr + ")"
	case agg.Func() != "":
		return agg.Func() + "(" + expr + ")"
	default:
		return expr
	}
}

func (c *compiler) fromClause(base string, joins []query.Join) string {
	from := c.name(base)
	joined := false
	for _, j := range joins {
		if j.TargetTable == "" || len(j.Conditions) == 0 {
			continue
		}
		on := c.joinConditions(base, j)
		jt := query.ParseJoinType(j.JoinType)
		if jt == query.JoinInvalid {
			jt = query.JoinInner
		}

		if jt == query.JoinRight && !c.d.cfg.NativeRightJoin {
			prev := from
			if joined {
				prev = "(" + prev + ")"
			}
			from = c.name(j.TargetTable) + " LEFT JOIN " + prev + " ON " + on
		} else {
			from += " " + jt.String() + " JOIN " + c.name(j.TargetTable) + " ON " + on
		}
		joined = true
	}
	return "FROM " + from
}

func (c *compiler) joinConditions(base string, j query.Join) string {
	var b strings.Builder
	for i, cond := range j.Conditions {
		source := cond.SourceTable
		if source == "" {
			source = base
		}
		op := query.ParseOperator(cond.Operator)
		if !op.IsComparison() {
			op = query.OpEq
		}
		if i > 0 {
			b.WriteString(" " + connector(j.Conditions[i-1].Connector) + " ")
		}
		fmt.Fprintf(&b, "%s %s %s", c.qualify(source, cond.SourceField), op, c.qualify(j.TargetTable, cond.TargetField))
	}
	return b.String()
}

// connector is the upper-cased connector, AND when unset or unsupported.
func connector(s string) string {
	conn, ok := query.ParseConnector(s)
	if !ok {
		return string(query.ConnectorAnd)
	}
	return string(conn)
}

// fold joins rendered conditions left to right; condition i is prefixed
// with the connector stored on condition i-1.
func fold(conds []query.Condition, render func(query.Condition) string) string {
	var b strings.Builder
	for i, cond := range conds {
		part := render(cond)
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" " + connector(conds[i-1].Connector) + " ")
		}
		b.WriteString(part)
	}
	return b.String()
}

func (c *compiler) whereClause(conds []query.Condition, invert bool) string {
	body := fold(conds, func(cond query.Condition) string {
		return c.condition(c.qualify(cond.Table, cond.Field), cond)
	})
	switch {
	case body == "":
		return ""
	case invert:
		return "WHERE NOT (" + body + ")"
	default:
		return "WHERE " + body
	}
}

func (c *compiler) groupByClause(fields []query.GroupField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Field == "" {
			continue
		}
		parts = append(parts, c.qualify(f.Table, f.Field))
	}
	if len(parts) == 0 {
		return ""
	}
	return "GROUP BY " + strings.Join(parts, ", ")
}

func (c *compiler) havingClause(conds []query.Condition) string {
	body := fold(conds, func(cond query.Condition) string {
		expr := c.qualify(cond.Table, cond.Field)
		if cond.IsAggregation {
			expr = aggregateExpr(expr, query.ParseAggregate(cond.Aggregate), cond.IsCountAll)
		}
		return c.condition(expr, cond)
	})
	if body == "" {
		return ""
	}
	return "HAVING " + body
}

func (c *compiler) condition(left string, cond query.Condition) string {
	if query.ParseComparisonType(cond.ComparisonType) == query.CompareColumn {
		return c.columnCondition(left, cond)
	}
	return c.valueCondition(left, cond)
}

func (c *compiler) valueCondition(col string, cond query.Condition) string {
	cfg := &c.d.cfg
	op := query.ParseOperator(cond.Operator)
	t := cond.ValueTypeOf()

	switch op {
	case query.OpIsNull, query.OpIsNotNull:
		return col + " " + op.String()
	case query.OpBetween, query.OpNotBetween:
		lo := c.literal(cond.Value, t)
		hi := c.literal(cond.SecondValue, t)
		return fmt.Sprintf("%s %s %s AND %s", col, op, lo, hi)
	case query.OpIn, query.OpNotIn:
		return fmt.Sprintf("%s %s %s", col, op, c.list(cond.Value, t))
	case query.OpContains:
		return col + " LIKE " + c.text("%"+toString(cond.Value)+"%")
	case query.OpNotContains:
		return col + " NOT LIKE " + c.text("%"+toString(cond.Value)+"%")
	case query.OpStartsWith:
		return col + " LIKE " + c.text(toString(cond.Value)+"%")
	case query.OpEndsWith:
		return col + " LIKE " + c.text("%"+toString(cond.Value))
	case query.OpMatches:
		return fmt.Sprintf(cfg.RegexMatch, col, c.text(toString(cond.Value)))
	case query.OpNotMatches:
		return fmt.Sprintf(cfg.RegexNotMatch, col, c.text(toString(cond.Value)))
	case query.OpListContains:
		return fmt.Sprintf(cfg.ListContains, col, c.text(toString(cond.Value)))
	case query.OpListNotContains:
		return fmt.Sprintf(cfg.ListNotContains, col, c.text(toString(cond.Value)))
	case query.OpInvalid:
		return ""
	}

	// = != > < >= <=
	if t.IsCollection() && (op == query.OpEq || op == query.OpNe) {
		return fmt.Sprintf("%s %s %s", col, op, c.collection(cond.Value, t))
	}
	return fmt.Sprintf("%s %s %s", col, op, c.literal(cond.Value, t))
}

// columnCondition compares two columns. For date values the difference
// can be taken in years or months; otherwise the columns are combined
// with the compare operator as is.
func (c *compiler) columnCondition(left string, cond query.Condition) string {
	cfg := &c.d.cfg
	right := c.qualify(cond.TargetTable, cond.TargetField)
	cmp, ok := query.NormalizeCompareOperator(cond.CompareOperator)
	if !ok {
		cmp = "="
	}

	var expr string
	switch t := cond.ValueTypeOf(); {
	case t != core.TypeDate && t != core.TypeDateTime:
		expr = fmt.Sprintf("%s %s %s", left, cmp, right)
	case query.ParseDateUnit(cond.DateUnit) == query.UnitYear:
		expr = fmt.Sprintf("(%s - %s)",
			fmt.Sprintf(cfg.YearPart, left), fmt.Sprintf(cfg.YearPart, right))
	case query.ParseDateUnit(cond.DateUnit) == query.UnitMonth:
		expr = fmt.Sprintf("((%s - %s) * 12 + (%s - %s))",
			fmt.Sprintf(cfg.YearPart, left), fmt.Sprintf(cfg.YearPart, right),
			fmt.Sprintf(cfg.MonthPart, left), fmt.Sprintf(cfg.MonthPart, right))
	case cmp == "-" && cfg.DayDiff != "":
		expr = fmt.Sprintf(cfg.DayDiff, left, right)
	default:
		expr = fmt.Sprintf("(%s %s %s)", left, cmp, right)
	}

	if cond.Operator == "" {
		return expr
	}
	op := query.ParseOperator(cond.Operator)
	if !op.IsComparison() {
		return expr
	}
	return fmt.Sprintf("%s %s %s", expr, op, c.literal(cond.Value, core.TypeNumber))
}
