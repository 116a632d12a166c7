package query

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid query description")

// ValidationError describes one invalid element of a query description.
type ValidationError struct {
	// Path locates the element, e.g. "whereConditions[2].secondValue".
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*(\.[A-Za-z_][A-Za-z0-9_$#]*)?$`)
	fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*$`)
)

// ValidTable reports whether s is an allowed, optionally schema-qualified,
// table identifier.
func ValidTable(s string) bool {
	return tablePattern.MatchString(s)
}

// ValidIdentifier reports whether s is an allowed column identifier.
func ValidIdentifier(s string) bool {
	return fieldPattern.MatchString(s)
}

// AliasName returns the alias as emitted in SQL: spaces become underscores.
func AliasName(alias string) string {
	return strings.ReplaceAll(strings.TrimSpace(alias), " ", "_")
}

type validator struct {
	errs  []error
	known map[string]bool
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)})
}

func (v *validator) table(path, name string, allowed map[string]bool) {
	if name == "" {
		return
	}
	if !ValidTable(name) {
		v.fail(path, "invalid table identifier %q", name)
		return
	}
	if !allowed[strings.ToLower(name)] {
		v.fail(path, "table %q is not the base table or a previously joined table", name)
	}
}

func (v *validator) field(path, name string) {
	if name == "" {
		v.fail(path, "field is required")
		return
	}
	if !ValidIdentifier(name) {
		v.fail(path, "invalid field identifier %q", name)
	}
}

// Validate checks the description before any SQL is emitted. All problems
// are reported; the result matches ErrValidation when non-nil.
func (q *Query) Validate() error {
	if q == nil {
		return &ValidationError{Path: "baseTable", Msg: "query is nil"}
	}
	v := &validator{known: map[string]bool{}}

	switch {
	case strings.TrimSpace(q.BaseTable) == "":
		v.fail("baseTable", "base table is required")
	case !ValidTable(q.BaseTable):
		v.fail("baseTable", "invalid table identifier %q", q.BaseTable)
	default:
		v.known[strings.ToLower(q.BaseTable)] = true
	}
	// Without a base table nothing else can be resolved.
	if len(v.errs) > 0 {
		return errors.Join(v.errs...)
	}

	for i, j := range q.Joins {
		v.join(fmt.Sprintf("joins[%d]", i), j)
	}
	for i, f := range q.SelectedFields {
		v.selected(fmt.Sprintf("selectedFields[%d]", i), f)
	}
	for i, c := range q.WhereConditions {
		v.condition(fmt.Sprintf("whereConditions[%d]", i), c, false)
	}
	for i, g := range q.GroupByFields {
		path := fmt.Sprintf("groupByFields[%d]", i)
		v.table(path+".table", g.Table, v.known)
		v.field(path+".field", g.Field)
	}
	for i, c := range q.Having {
		v.condition(fmt.Sprintf("having[%d]", i), c, true)
	}

	return errors.Join(v.errs...)
}

func (v *validator) join(path string, j Join) {
	if ParseJoinType(j.JoinType) == JoinInvalid {
		v.fail(path+".joinType", "unsupported join type %q", j.JoinType)
	}
	target := strings.ToLower(j.TargetTable)
	switch {
	case j.TargetTable == "":
		v.fail(path+".targetTable", "target table is required")
	case !ValidTable(j.TargetTable):
		v.fail(path+".targetTable", "invalid table identifier %q", j.TargetTable)
	case v.known[target]:
		v.fail(path+".targetTable", "table %q is already part of the FROM clause", j.TargetTable)
	}
	if len(j.Conditions) == 0 {
		v.fail(path+".conditions", "join requires at least one condition")
	}
	for i, c := range j.Conditions {
		cpath := fmt.Sprintf("%s.conditions[%d]", path, i)
		v.table(cpath+".sourceTable", c.SourceTable, v.known)
		v.field(cpath+".sourceField", c.SourceField)
		v.field(cpath+".targetField", c.TargetField)
		if c.Operator != "" && !ParseOperator(c.Operator).IsComparison() {
			v.fail(cpath+".operator", "unsupported join operator %q", c.Operator)
		}
		if _, ok := ParseConnector(c.Connector); !ok {
			v.fail(cpath+".connector", "unsupported connector %q", c.Connector)
		}
	}
	v.known[target] = true
}

func (v *validator) selected(path string, f SelectedField) {
	v.table(path+".table", f.Table, v.known)
	if ParseSelectType(f.SelectType) == selectInvalid {
		v.fail(path+".selectType", "unsupported select type %q", f.SelectType)
	}
	if f.Alias != "" && !ValidIdentifier(AliasName(f.Alias)) {
		v.fail(path+".alias", "invalid alias %q", f.Alias)
	}
	if f.IsAggregate() {
		v.aggregate(path, f.Field, f.Aggregate, f.IsCountAll)
		return
	}
	if f.Field == "*" {
		return
	}
	v.field(path+".field", f.Field)
}

func (v *validator) aggregate(path, field, agg string, countAll bool) {
	if countAll {
		return
	}
	a := ParseAggregate(agg)
	switch {
	case a == AggNone:
		v.fail(path+".aggregate", "aggregate is required")
		return
	case !a.Valid():
		v.fail(path+".aggregate", "unsupported aggregate %q", agg)
		return
	case a == AggCountAll:
		return
	}
	v.field(path+".field", field)
}

func (v *validator) condition(path string, c Condition, having bool) {
	v.table(path+".table", c.Table, v.known)
	if _, ok := ParseConnector(c.Connector); !ok {
		v.fail(path+".connector", "unsupported connector %q", c.Connector)
	}

	if having && c.IsAggregation {
		v.aggregate(path, c.Field, c.Aggregate, c.IsCountAll)
	} else {
		v.field(path+".field", c.Field)
	}

	switch ParseComparisonType(c.ComparisonType) {
	case CompareColumn:
		v.columnComparison(path, c)
		return
	case compareInvalid:
		v.fail(path+".comparisonType", "unsupported comparison type %q", c.ComparisonType)
		return
	}

	op := ParseOperator(c.Operator)
	if op == OpInvalid {
		if c.Operator == "" {
			v.fail(path+".operator", "operator is required")
		} else {
			v.fail(path+".operator", "unsupported operator %q", c.Operator)
		}
		return
	}

	switch op {
	case OpIsNull, OpIsNotNull:
	case OpBetween, OpNotBetween:
		if isMissing(c.Value) {
			v.fail(path+".value", "%s requires a value", op)
		}
		if isMissing(c.SecondValue) {
			v.fail(path+".secondValue", "%s requires a second value", op)
		}
	case OpIn, OpNotIn:
		if n, ok := listLen(c.Value); !ok || n == 0 {
			v.fail(path+".value", "%s requires a non-empty list", op)
		}
	default:
		// An empty string is a value: code = '' is a valid test.
		if c.Value == nil {
			v.fail(path+".value", "%s requires a value", op)
		}
	}
}

func (v *validator) columnComparison(path string, c Condition) {
	v.table(path+".targetTable", c.TargetTable, v.known)
	v.field(path+".targetField", c.TargetField)

	cmp, ok := NormalizeCompareOperator(c.CompareOperator)
	if !ok {
		v.fail(path+".compareOperator", "unsupported compare operator %q", c.CompareOperator)
		return
	}
	unit := ParseDateUnit(c.DateUnit)
	if unit == unitInvalid {
		v.fail(path+".dateUnit", "unsupported date unit %q", c.DateUnit)
		return
	}

	if c.Operator == "" {
		// Without an outer operator the comparison itself must be boolean.
		if IsArithmetic(cmp) {
			v.fail(path+".operator", "operator is required when comparing with %q", cmp)
		}
		if unit == UnitYear || unit == UnitMonth {
			v.fail(path+".operator", "operator is required for a %s difference", strings.ToLower(c.DateUnit))
		}
		return
	}
	op := ParseOperator(c.Operator)
	if !op.IsComparison() {
		v.fail(path+".operator", "unsupported column comparison operator %q", c.Operator)
		return
	}
	if isMissing(c.Value) {
		v.fail(path+".value", "%s requires a value", op)
	}
}

// isMissing reports an absent range bound or difference value.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// listLen reports the length of a list literal value.
func listLen(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return 0, false
	}
	return rv.Len(), true
}

// ValueTypeOf returns the canonical type of a condition's value; an empty
// valueType is a string.
func (c Condition) ValueTypeOf() core.CanonicalType {
	return core.ParseCanonicalType(c.ValueType)
}

// FieldType returns the canonical type of a selected field.
func (f SelectedField) FieldType() core.CanonicalType {
	if f.Type == "" {
		return core.TypeUnknown
	}
	return core.ParseCanonicalType(f.Type)
}
