package core

import "strings"

// TableName identifies a table, optionally qualified by schema (or owner).
type TableName struct {
	Schema string `json:"schema,omitempty"`
	Name   string `json:"name"`
}

// String returns schema.name, or name when no schema is set.
func (t TableName) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// ParseTableName splits "schema.table" using defaultSchema when no schema is given.
func ParseTableName(s, defaultSchema string) TableName {
	if schema, name, ok := strings.Cut(s, "."); ok {
		return TableName{Schema: schema, Name: name}
	}
	return TableName{Schema: defaultSchema, Name: s}
}

// ColumnDescriptor is the normalized description of one table column.
// It is produced only by the schema normalizer and is not mutated afterwards.
type ColumnDescriptor struct {
	Position      int           `json:"position" yaml:"position"`
	Name          string        `json:"name" yaml:"name"`
	NativeType    string        `json:"native_type" yaml:"native_type"`
	CanonicalType CanonicalType `json:"type" yaml:"type"`
	Length        int           `json:"length" yaml:"length"`
	Nullable      bool          `json:"nullable" yaml:"nullable"`
	IsPrimaryKey  bool          `json:"primary_key" yaml:"primary_key"`
	IsForeignKey  bool          `json:"foreign_key" yaml:"foreign_key"`
	IsIndexed     bool          `json:"is_index" yaml:"is_index"`
	Default       *string       `json:"default" yaml:"default"`
}
