package core

import "strings"

// CanonicalType is the engine-independent type every native column type
// normalizes into.
type CanonicalType int

const (
	// TypeUnknown is assigned to native types missing from a dialect's catalog.
	TypeUnknown CanonicalType = iota
	TypeString
	TypeNumber
	TypeBoolean
	TypeDate
	TypeDateTime
	TypeBinary
	TypeList
	TypeSet
	TypeMultiSet
	TypeRecord
	TypeNull
)

// CanonicalTypes lists every canonical type, TypeUnknown included.
var CanonicalTypes = []CanonicalType{
	TypeString, TypeNumber, TypeBoolean, TypeDate, TypeDateTime, TypeBinary,
	TypeList, TypeSet, TypeMultiSet, TypeRecord, TypeNull, TypeUnknown,
}

// String returns the name used in column descriptors and query descriptions.
func (t CanonicalType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	case TypeBinary:
		return "binary"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeMultiSet:
		return "multiset"
	case TypeRecord:
		return "record"
	case TypeNull:
		return "null"
	default:
		return "unknown"
	}
}

// IsCollection reports whether values of the type are element collections.
func (t CanonicalType) IsCollection() bool {
	return t == TypeList || t == TypeSet || t == TypeMultiSet
}

// ParseCanonicalType converts a type name from a query description.
// Unrecognized names map to TypeUnknown; an empty name maps to TypeString,
// the default value type of a condition.
func ParseCanonicalType(s string) CanonicalType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "text":
		return TypeString
	case "number", "numeric":
		return TypeNumber
	case "boolean", "bool":
		return TypeBoolean
	case "date":
		return TypeDate
	case "datetime", "timestamp":
		return TypeDateTime
	case "binary":
		return TypeBinary
	case "list":
		return TypeList
	case "set":
		return TypeSet
	case "multiset":
		return TypeMultiSet
	case "record":
		return TypeRecord
	case "null":
		return TypeNull
	default:
		return TypeUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t CanonicalType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CanonicalType) UnmarshalText(text []byte) error {
	*t = ParseCanonicalType(string(text))
	return nil
}
