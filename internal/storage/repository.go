// Package storage contains storage-agnostic contracts and utilities for the
// cleaned sales table: the Repository interface, the backend factory, the
// DDL bootstrap registry, and the generic batched loader.
//
// Concrete backends (postgres, sqlite, mssql) live in subpackages and
// register themselves with the factory at init time; importing
// onrretl/internal/storage/all enables every built-in backend.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Repository is the backend-agnostic contract for the cleaned table.
//
// CopyFrom bulk-inserts rows aligned to the columns order using the
// backend's most efficient primitive (COPY, bulk copy, transactional
// multi-insert). Select runs a read-only query and materializes the result
// set with driver values normalized to plain Go types (int64, float64,
// string, nil). Exec runs a statement (typically DDL).
type Repository interface {
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Select(ctx context.Context, query string) (cols []string, rows [][]any, err error)
	Exec(ctx context.Context, stmt string) error
	// Kind returns the registered backend kind ("postgres", "sqlite",
	// "mssql"); reporting uses it to render dialect-specific SQL.
	Kind() string
	Close()
}

// Config carries the backend-independent settings a factory needs to open a
// Repository.
type Config struct {
	Kind  string // backend kind, e.g. "sqlite"
	DSN   string
	Table string
}

// Factory opens a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	facMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. It is
// called from backend packages' init() functions.
func Register(kind string, fn Factory) {
	facMu.Lock()
	defer facMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. Backends must have been registered
// first (usually via a blank import of onrretl/internal/storage/all).
func New(ctx context.Context, cfg Config) (Repository, error) {
	facMu.RLock()
	fn, ok := factories[cfg.Kind]
	facMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind=%q", cfg.Kind)
	}
	return fn(ctx, cfg)
}
