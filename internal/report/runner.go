package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// Querier is the read side of a storage repository.
type Querier interface {
	Select(ctx context.Context, query string) (columns []string, rows [][]any, err error)
	Kind() string
}

// Table holds one report's result set.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Run executes a single report against the cleaned table.
func Run(ctx context.Context, q Querier, table string, r Report) (Table, error) {
	start := time.Now()
	cols, rows, err := q.Select(ctx, r.SQL(q.Kind(), table))
	if err != nil {
		return Table{}, fmt.Errorf("report %s: %w", r.Name, err)
	}
	log.Printf("report %s: %d rows in %v", r.Name, len(rows), time.Since(start).Round(time.Millisecond))
	return Table{Name: r.Name, Columns: cols, Rows: rows}, nil
}

// RunAll executes reports concurrently and returns results in battery order.
// When only is non-empty it selects the subset to run; an unknown name is an
// error. The first query failure cancels the remaining reports.
func RunAll(ctx context.Context, q Querier, table string, only []string) ([]Table, error) {
	var reports []Report
	if len(only) == 0 {
		reports = All()
	} else {
		for _, name := range only {
			r, ok := ByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown report %q", name)
			}
			reports = append(reports, r)
		}
	}

	results := make([]Table, len(reports))
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range reports {
		i, r := i, r
		g.Go(func() error {
			t, err := Run(ctx, q, table, r)
			if err != nil {
				return err
			}
			results[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
