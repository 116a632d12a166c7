package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	q := &Query{
		BaseTable: "sales.orders",
		SelectedFields: []SelectedField{
			{Field: "id"},
			{Table: "customers", Field: "name", Alias: "customer name"},
			{Field: "amt", SelectType: "Aggregate", Aggregate: "SUM"},
			{SelectType: "AGGREGATE", IsCountAll: true, Alias: "n"},
		},
		Joins: []Join{{
			JoinType:    "LEFT",
			TargetTable: "customers",
			Conditions:  []JoinCondition{{SourceField: "customer_id", TargetField: "id"}},
		}},
		WhereConditions: []Condition{
			{Field: "age", Operator: "BETWEEN", Value: 18, SecondValue: 65},
			{Field: "deleted_at", Operator: "IS NULL", Connector: "or"},
			{Table: "customers", Field: "region", Operator: "IN", Value: []any{"EU", "US"}},
			{
				Field: "shipped", ComparisonType: "COLUMN", TargetField: "ordered",
				CompareOperator: "-", DateUnit: "DAY", Operator: ">", Value: 3, ValueType: "Date",
			},
		},
		GroupByFields: []GroupField{{Field: "id"}, {Table: "customers", Field: "name"}},
		Having: []Condition{
			{Field: "amt", IsAggregation: true, Aggregate: "SUM", Operator: ">", Value: 100},
		},
	}

	require.NoError(t, q.Validate())
}

func TestValidate_MissingBaseTable(t *testing.T) {
	q := &Query{SelectedFields: []SelectedField{{Field: "id"}}}

	err := q.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "baseTable", verr.Path)
}

func TestValidate_NilQuery(t *testing.T) {
	var q *Query
	assert.ErrorIs(t, q.Validate(), ErrValidation)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		path  string
	}{
		{
			name:  "injected table identifier",
			query: Query{BaseTable: "orders; DROP TABLE x"},
			path:  "baseTable",
		},
		{
			name:  "injected field identifier",
			query: Query{BaseTable: "t", SelectedFields: []SelectedField{{Field: "id--"}}},
			path:  "selectedFields[0].field",
		},
		{
			name: "forward table reference",
			query: Query{
				BaseTable:      "t",
				SelectedFields: []SelectedField{{Table: "u", Field: "id"}},
			},
			path: "selectedFields[0].table",
		},
		{
			name: "join source references later join",
			query: Query{
				BaseTable: "a",
				Joins: []Join{
					{TargetTable: "b", Conditions: []JoinCondition{{SourceTable: "c", SourceField: "id", TargetField: "id"}}},
					{TargetTable: "c", Conditions: []JoinCondition{{SourceField: "id", TargetField: "id"}}},
				},
			},
			path: "joins[0].conditions[0].sourceTable",
		},
		{
			name:  "join without conditions",
			query: Query{BaseTable: "a", Joins: []Join{{TargetTable: "b"}}},
			path:  "joins[0].conditions",
		},
		{
			name: "unsupported join type",
			query: Query{BaseTable: "a", Joins: []Join{{
				JoinType: "FULL", TargetTable: "b",
				Conditions: []JoinCondition{{SourceField: "id", TargetField: "id"}},
			}}},
			path: "joins[0].joinType",
		},
		{
			name: "join operator is not a comparison",
			query: Query{BaseTable: "a", Joins: []Join{{
				TargetTable: "b",
				Conditions:  []JoinCondition{{SourceField: "id", TargetField: "id", Operator: "CONTAINS"}},
			}}},
			path: "joins[0].conditions[0].operator",
		},
		{
			name:  "aggregate missing",
			query: Query{BaseTable: "t", SelectedFields: []SelectedField{{Field: "x", SelectType: "AGGREGATE"}}},
			path:  "selectedFields[0].aggregate",
		},
		{
			name:  "aggregate unsupported",
			query: Query{BaseTable: "t", SelectedFields: []SelectedField{{Field: "x", SelectType: "AGGREGATE", Aggregate: "MEDIAN"}}},
			path:  "selectedFields[0].aggregate",
		},
		{
			name:  "alias with punctuation",
			query: Query{BaseTable: "t", SelectedFields: []SelectedField{{Field: "x", Alias: "a-b"}}},
			path:  "selectedFields[0].alias",
		},
		{
			name:  "unsupported operator",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", Operator: "LIKE", Value: "a"}}},
			path:  "whereConditions[0].operator",
		},
		{
			name:  "missing operator",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", Value: "a"}}},
			path:  "whereConditions[0].operator",
		},
		{
			name:  "between without second value",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", Operator: "BETWEEN", Value: 1}}},
			path:  "whereConditions[0].secondValue",
		},
		{
			name:  "in with empty list",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", Operator: "IN", Value: []any{}}}},
			path:  "whereConditions[0].value",
		},
		{
			name:  "in with scalar",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", Operator: "NOT IN", Value: "a"}}},
			path:  "whereConditions[0].value",
		},
		{
			name:  "comparison without value",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", Operator: "="}}},
			path:  "whereConditions[0].value",
		},
		{
			name:  "bad connector",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", Operator: "IS NULL", Connector: "XOR"}}},
			path:  "whereConditions[0].connector",
		},
		{
			name:  "column comparison without target",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{Field: "x", ComparisonType: "COLUMN"}}},
			path:  "whereConditions[0].targetField",
		},
		{
			name: "year difference without operator",
			query: Query{BaseTable: "t", WhereConditions: []Condition{{
				Field: "x", ComparisonType: "COLUMN", TargetField: "y", CompareOperator: "-", DateUnit: "YEAR",
			}}},
			path: "whereConditions[0].operator",
		},
		{
			name: "having aggregation unsupported",
			query: Query{BaseTable: "t", Having: []Condition{{
				Field: "x", IsAggregation: true, Aggregate: "MODE", Operator: ">", Value: 1,
			}}},
			path: "having[0].aggregate",
		},
		{
			name:  "group by forward reference",
			query: Query{BaseTable: "t", GroupByFields: []GroupField{{Table: "u", Field: "id"}}},
			path:  "groupByFields[0].table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestValidate_EmptyStringIsAValue(t *testing.T) {
	for _, op := range []string{"=", "!=", "CONTAINS", "STARTS WITH"} {
		t.Run(op, func(t *testing.T) {
			q := &Query{
				BaseTable:       "t",
				WhereConditions: []Condition{{Field: "code", Operator: op, Value: ""}},
			}
			assert.NoError(t, q.Validate())
		})
	}

	q := &Query{BaseTable: "t", WhereConditions: []Condition{{Field: "code", Operator: "="}}}
	assert.ErrorIs(t, q.Validate(), ErrValidation)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	q := &Query{
		BaseTable: "t",
		WhereConditions: []Condition{
			{Field: "a", Operator: "BETWEEN"},
			{Field: "b", Operator: "BOGUS", Value: 1},
		},
	}

	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whereConditions[0].value")
	assert.Contains(t, err.Error(), "whereConditions[0].secondValue")
	assert.Contains(t, err.Error(), "whereConditions[1].operator")
}

func TestValidTable(t *testing.T) {
	assert.True(t, ValidTable("orders"))
	assert.True(t, ValidTable("dbo.orders"))
	assert.True(t, ValidTable("_t$1#"))
	assert.False(t, ValidTable("a.b.c"))
	assert.False(t, ValidTable("1orders"))
	assert.False(t, ValidTable("orders x"))
	assert.False(t, ValidIdentifier("a.b"))
}

func TestAliasName(t *testing.T) {
	assert.Equal(t, "total_amount", AliasName("total amount"))
	assert.Equal(t, "x", AliasName(" x "))
}
