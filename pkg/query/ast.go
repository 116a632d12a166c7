package query

// Query is the description of one SELECT statement.
type Query struct {
	BaseTable       string          `json:"baseTable" yaml:"baseTable"`
	SelectedFields  []SelectedField `json:"selectedFields,omitempty" yaml:"selectedFields,omitempty"`
	Joins           []Join          `json:"joins,omitempty" yaml:"joins,omitempty"`
	WhereConditions []Condition     `json:"whereConditions,omitempty" yaml:"whereConditions,omitempty"`
	GroupByFields   []GroupField    `json:"groupByFields,omitempty" yaml:"groupByFields,omitempty"`
	Having          []Condition     `json:"having,omitempty" yaml:"having,omitempty"`
	InvertWhere     bool            `json:"invertWhere,omitempty" yaml:"invertWhere,omitempty"`
}

// SelectedField is one entry of the SELECT list.
type SelectedField struct {
	Table      string `json:"table,omitempty" yaml:"table,omitempty"`
	Field      string `json:"field" yaml:"field"`
	Alias      string `json:"alias,omitempty" yaml:"alias,omitempty"`
	SelectType string `json:"selectType,omitempty" yaml:"selectType,omitempty"`
	Aggregate  string `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	IsCountAll bool   `json:"isCountAll,omitempty" yaml:"isCountAll,omitempty"`
	// Type is the canonical type of the column; collection columns are cast
	// to text when selected without aggregation.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// IsAggregate reports whether the field is wrapped in an aggregate.
// A field without a select type is aggregated when it names an aggregate.
func (f SelectedField) IsAggregate() bool {
	switch ParseSelectType(f.SelectType) {
	case SelectAggregate:
		return true
	case SelectNormal:
		return false
	default:
		return f.Aggregate != "" || f.IsCountAll
	}
}

// Join adds a table to the FROM clause.
type Join struct {
	JoinType    string          `json:"joinType,omitempty" yaml:"joinType,omitempty"`
	TargetTable string          `json:"targetTable" yaml:"targetTable"`
	Conditions  []JoinCondition `json:"conditions" yaml:"conditions"`
}

// JoinCondition compares a column of an already joined table (the base
// table unless SourceTable is set) with a column of the join target.
//
// Connector combines this condition with the NEXT one in the list.
type JoinCondition struct {
	SourceTable string `json:"sourceTable,omitempty" yaml:"sourceTable,omitempty"`
	SourceField string `json:"sourceField" yaml:"sourceField"`
	TargetField string `json:"targetField" yaml:"targetField"`
	Operator    string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Connector   string `json:"connector,omitempty" yaml:"connector,omitempty"`
}

// Condition is a WHERE or HAVING predicate.
//
// Value comparisons test Field against Value (and SecondValue for BETWEEN).
// Column comparisons test Field against TargetField, optionally as a date
// difference in DateUnit granularity, and compare that with Value.
//
// Connector combines this condition with the NEXT one in the list.
type Condition struct {
	Table          string `json:"table,omitempty" yaml:"table,omitempty"`
	Field          string `json:"field" yaml:"field"`
	Operator       string `json:"operator,omitempty" yaml:"operator,omitempty"`
	ComparisonType string `json:"comparisonType,omitempty" yaml:"comparisonType,omitempty"`
	Value          any    `json:"value,omitempty" yaml:"value,omitempty"`
	SecondValue    any    `json:"secondValue,omitempty" yaml:"secondValue,omitempty"`
	ValueType      string `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	Connector      string `json:"connector,omitempty" yaml:"connector,omitempty"`

	TargetTable     string `json:"targetTable,omitempty" yaml:"targetTable,omitempty"`
	TargetField     string `json:"targetField,omitempty" yaml:"targetField,omitempty"`
	CompareOperator string `json:"compareOperator,omitempty" yaml:"compareOperator,omitempty"`
	DateUnit        string `json:"dateUnit,omitempty" yaml:"dateUnit,omitempty"`

	// HAVING only.
	IsAggregation bool   `json:"isAggregation,omitempty" yaml:"isAggregation,omitempty"`
	Aggregate     string `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	IsCountAll    bool   `json:"isCountAll,omitempty" yaml:"isCountAll,omitempty"`
}

// GroupField is one GROUP BY column.
type GroupField struct {
	Table string `json:"table,omitempty" yaml:"table,omitempty"`
	Field string `json:"field" yaml:"field"`
}
