// Package core defines the shared language of the sqlconnect system.
//
// This package contains:
//   - Dialect identifiers and placeholder styles
//   - The canonical type enumeration every native column type normalizes into
//   - Schema descriptors (TableName, ColumnDescriptor)
//   - The Connection contract implemented by database adapters
//   - Adapter configuration
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
