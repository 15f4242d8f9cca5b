package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBootstrapper is a backend-specific function that builds the cleaned
// sales table (CREATE TABLE IF NOT EXISTS from the schema contract) via
// repo.Exec.
//
// Backends register their implementation for a given storage kind at init
// time alongside their factory.
type DDLBootstrapper func(ctx context.Context, repo Repository, table string) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given
// storage kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable locates the DDLBootstrapper for the repository's kind and
// invokes it. Callers do not need to know which backend they are using.
func EnsureTable(ctx context.Context, repo Repository, table string) error {
	ddlMu.RLock()
	fn, ok := ddlFns[repo.Kind()]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", repo.Kind())
	}
	return fn(ctx, repo, table)
}
