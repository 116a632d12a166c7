package dialect

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[core.Dialect]*Dialect)
)

// ErrUnknownDialect is returned when no definition is registered for a dialect.
var ErrUnknownDialect = errors.New("unknown dialect")

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[d.Kind()] = d
}

// Get returns the registered definition of a dialect.
func Get(kind core.Dialect) (*Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, kind)
	}
	return d, nil
}

// Lookup resolves a dialect tag ("postgres", "mssql", ...) to its definition.
func Lookup(name string) (*Dialect, error) {
	kind, err := core.ParseDialect(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return Get(kind)
}

// MustGet is Get for init-time wiring; it panics on unregistered dialects.
func MustGet(kind core.Dialect) *Dialect {
	d, err := Get(kind)
	if err != nil {
		panic(err)
	}
	return d
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for _, d := range dialects {
		names = append(names, d.Name())
	}
	sort.Strings(names)
	return names
}
