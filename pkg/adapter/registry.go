package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

// Factory builds an unconnected adapter. A nil logger means discard.
type Factory func(*slog.Logger) Adapter

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds an adapter factory under a connector-type tag.
// Called by adapter implementations in their init() functions; registering
// the same name again replaces the factory.
func Register(name string, factory Factory) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || factory == nil {
		panic("adapter: Register needs a name and a factory")
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Resolve maps a connector-type tag to the name it is registered under.
// Dialect aliases ("pg", "mssql", "ifx") resolve to their dialect's adapter.
func Resolve(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	registryMu.RLock()
	defer registryMu.RUnlock()

	if _, ok := registry[name]; ok {
		return name, true
	}
	if kind, err := core.ParseDialect(name); err == nil {
		if _, ok := registry[kind.String()]; ok {
			return kind.String(), true
		}
	}
	return "", false
}

// Get retrieves an adapter factory by name or dialect alias.
func Get(name string) (Factory, bool) {
	resolved, ok := Resolve(name)
	if !ok {
		return nil, false
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[resolved], true
}

// NewAdapter creates a new, unconnected adapter instance based on config type.
// The logger parameter is passed to the adapter constructor (nil uses discard logger).
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// Open creates the adapter for cfg.Type and connects it.
// The adapter is closed again when Connect fails.
func Open(ctx context.Context, cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	a, err := NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// ListAdapters returns all registered adapter names (sorted).
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name, or the dialect it aliases, has an adapter.
func IsRegistered(name string) bool {
	_, ok := Resolve(name)
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check the target type in sqlconnect.yaml", e.Type, e.Available)
}
