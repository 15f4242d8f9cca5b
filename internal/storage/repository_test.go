package storage

import (
	"context"
	"testing"
)

type stubRepo struct{ kind string }

func (s stubRepo) CopyFrom(context.Context, []string, [][]any) (int64, error) { return 0, nil }
func (s stubRepo) Select(context.Context, string) ([]string, [][]any, error) {
	return nil, nil, nil
}
func (s stubRepo) Exec(context.Context, string) error { return nil }
func (s stubRepo) Kind() string                       { return s.kind }
func (s stubRepo) Close()                             {}

func TestFactoryRegisterAndNew(t *testing.T) {
	Register("stub", func(_ context.Context, cfg Config) (Repository, error) {
		return stubRepo{kind: cfg.Kind}, nil
	})

	repo, err := New(context.Background(), Config{Kind: "stub", DSN: "x", Table: "t"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if repo.Kind() != "stub" {
		t.Fatalf("Kind = %q; want stub", repo.Kind())
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New(context.Background(), Config{Kind: "nope"}); err == nil {
		t.Fatal("unregistered kind should error")
	}
}

func TestEnsureTableDispatchesByKind(t *testing.T) {
	var gotTable string
	RegisterDDL("stub", func(_ context.Context, _ Repository, table string) error {
		gotTable = table
		return nil
	})

	if err := EnsureTable(context.Background(), stubRepo{kind: "stub"}, "sales_cleaned"); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	if gotTable != "sales_cleaned" {
		t.Fatalf("table = %q", gotTable)
	}
}

func TestEnsureTableUnknownKind(t *testing.T) {
	if err := EnsureTable(context.Background(), stubRepo{kind: "ghost"}, "t"); err == nil {
		t.Fatal("missing DDL bootstrapper should error")
	}
}
