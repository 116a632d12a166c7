package query

import (
	"strings"
)

// Operator is a canonical comparison operator.
type Operator int

// Canonical operators.
const (
	OpInvalid Operator = iota
	OpEq
	OpNe
	OpGt
	OpLt
	OpGe
	OpLe
	OpIsNull
	OpIsNotNull
	OpContains
	OpNotContains
	OpStartsWith
	OpEndsWith
	OpMatches
	OpNotMatches
	OpBetween
	OpNotBetween
	OpIn
	OpNotIn
	OpListContains
	OpListNotContains
)

var operatorNames = map[string]Operator{
	"=":                 OpEq,
	"==":                OpEq,
	"!=":                OpNe,
	"<>":                OpNe,
	">":                 OpGt,
	"<":                 OpLt,
	">=":                OpGe,
	"<=":                OpLe,
	"IS NULL":           OpIsNull,
	"IS NOT NULL":       OpIsNotNull,
	"CONTAINS":          OpContains,
	"NOT CONTAINS":      OpNotContains,
	"NOT CONTAIN":       OpNotContains,
	"STARTS WITH":       OpStartsWith,
	"ENDS WITH":         OpEndsWith,
	"MATCHES":           OpMatches,
	"NOT MATCHES":       OpNotMatches,
	"BETWEEN":           OpBetween,
	"NOT BETWEEN":       OpNotBetween,
	"IN":                OpIn,
	"NOT IN":            OpNotIn,
	"LIST CONTAINS":     OpListContains,
	"LIST NOT CONTAINS": OpListNotContains,
}

// ParseOperator accepts both the spaced spelling ("STARTS WITH") and the
// underscore spelling ("STARTS_WITH") of an operator, in any case.
func ParseOperator(s string) Operator {
	key := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToUpper(s), "_", " ")), " ")
	return operatorNames[key]
}

// String returns the canonical spelling of the operator.
func (o Operator) String() string {
	switch o {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGe:
		return ">="
	case OpLe:
		return "<="
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	case OpContains:
		return "CONTAINS"
	case OpNotContains:
		return "NOT CONTAINS"
	case OpStartsWith:
		return "STARTS WITH"
	case OpEndsWith:
		return "ENDS WITH"
	case OpMatches:
		return "MATCHES"
	case OpNotMatches:
		return "NOT MATCHES"
	case OpBetween:
		return "BETWEEN"
	case OpNotBetween:
		return "NOT BETWEEN"
	case OpIn:
		return "IN"
	case OpNotIn:
		return "NOT IN"
	case OpListContains:
		return "LIST CONTAINS"
	case OpListNotContains:
		return "LIST NOT CONTAINS"
	default:
		return "INVALID"
	}
}

// IsComparison reports whether o is one of = != > < >= <=.
func (o Operator) IsComparison() bool {
	return o >= OpEq && o <= OpLe
}

// NeedsValue reports whether o compares against a literal.
func (o Operator) NeedsValue() bool {
	return o != OpInvalid && o != OpIsNull && o != OpIsNotNull
}

// Aggregate is an aggregate wrapper applied to a selected field.
type Aggregate int

// Supported aggregates.
const (
	AggNone Aggregate = iota
	AggCount
	AggDistinct
	AggCountDistinct
	AggSum
	AggAvg
	AggMin
	AggMax
	AggCountAll
	aggInvalid
)

// ParseAggregate accepts the long spellings of query descriptions
// ("COUNT(DISTINCT)", "COUNT(*)", "AVERAGE") besides the short names.
func ParseAggregate(s string) Aggregate {
	key := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToUpper(s), "_", " ")), " ")
	switch key {
	case "":
		return AggNone
	case "COUNT":
		return AggCount
	case "DISTINCT":
		return AggDistinct
	case "COUNT DISTINCT", "COUNT(DISTINCT)":
		return AggCountDistinct
	case "SUM":
		return AggSum
	case "AVG", "AVERAGE":
		return AggAvg
	case "MIN", "MINIMUM":
		return AggMin
	case "MAX", "MAXIMUM":
		return AggMax
	case "COUNT(*)", "COUNT ALL":
		return AggCountAll
	default:
		return aggInvalid
	}
}

// Valid reports whether a is a recognized aggregate.
func (a Aggregate) Valid() bool {
	return a != aggInvalid
}

// Func returns the SQL function name of a plain aggregate.
func (a Aggregate) Func() string {
	switch a {
	case AggCount, AggCountDistinct, AggCountAll:
		return "COUNT"
	case AggSum:
		return "SUM"
	case AggAvg:
		return "AVG"
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	default:
		return ""
	}
}

// SelectType distinguishes plain columns from aggregated ones.
type SelectType int

// Select types.
const (
	SelectUnset SelectType = iota
	SelectNormal
	SelectAggregate
	selectInvalid
)

// ParseSelectType parses NORMAL / AGGREGATE in any case.
func ParseSelectType(s string) SelectType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return SelectUnset
	case "NORMAL":
		return SelectNormal
	case "AGGREGATE":
		return SelectAggregate
	default:
		return selectInvalid
	}
}

// JoinType is the kind of join.
type JoinType int

// Join types.
const (
	JoinInvalid JoinType = iota
	JoinInner
	JoinLeft
	JoinRight
)

// ParseJoinType parses INNER / LEFT / RIGHT; an empty type is INNER.
func ParseJoinType(s string) JoinType {
	key := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	key = strings.TrimSuffix(key, " JOIN")
	switch key {
	case "", "INNER":
		return JoinInner
	case "LEFT", "LEFT OUTER":
		return JoinLeft
	case "RIGHT", "RIGHT OUTER":
		return JoinRight
	default:
		return JoinInvalid
	}
}

// String returns the SQL keyword of the join type.
func (j JoinType) String() string {
	switch j {
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	default:
		return "INNER"
	}
}

// Connector is the boolean connector stored on a condition.
type Connector string

// Connectors.
const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

// ParseConnector upper-cases s; an empty connector is AND.
// The second result is false for anything but AND and OR.
func ParseConnector(s string) (Connector, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AND":
		return ConnectorAnd, true
	case "OR":
		return ConnectorOr, true
	default:
		return "", false
	}
}

// ComparisonType selects value or column comparison.
type ComparisonType int

// Comparison types.
const (
	CompareValue ComparisonType = iota
	CompareColumn
	compareInvalid
)

// ParseComparisonType parses VALUE / COLUMN; empty is VALUE.
func ParseComparisonType(s string) ComparisonType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "VALUE":
		return CompareValue
	case "COLUMN":
		return CompareColumn
	default:
		return compareInvalid
	}
}

// DateUnit is the granularity of a column-to-column date difference.
type DateUnit int

// Date units.
const (
	UnitNone DateUnit = iota
	UnitDay
	UnitMonth
	UnitYear
	unitInvalid
)

// ParseDateUnit parses DAY / MONTH / YEAR; empty is UnitNone.
func ParseDateUnit(s string) DateUnit {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return UnitNone
	case "DAY":
		return UnitDay
	case "MONTH":
		return UnitMonth
	case "YEAR":
		return UnitYear
	default:
		return unitInvalid
	}
}

// compareOperators are the operators allowed between two columns.
var compareOperators = map[string]bool{
	"=": true, "!=": true, "<>": true, "<": true, ">": true, "<=": true, ">=": true,
	"-": true, "+": true,
}

// IsArithmetic reports whether a column compare operator is - or +.
func IsArithmetic(op string) bool {
	op = strings.TrimSpace(op)
	return op == "-" || op == "+"
}

// NormalizeCompareOperator returns the compare operator with the "="
// default applied, and whether it is allowed.
func NormalizeCompareOperator(op string) (string, bool) {
	op = strings.TrimSpace(op)
	if op == "" {
		op = "="
	}
	if op == "<>" {
		op = "!="
	}
	return op, compareOperators[op]
}
