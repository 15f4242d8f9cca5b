package storage

import (
	"context"
	"errors"
	"testing"
)

func feed(rows [][]any) chan []any {
	ch := make(chan []any, len(rows))
	for _, r := range rows {
		ch <- r
	}
	close(ch)
	return ch
}

func TestLoadBatchesGroupsRows(t *testing.T) {
	var batches [][][]any
	copyFn := func(_ context.Context, _ []string, rows [][]any) (int64, error) {
		cp := make([][]any, len(rows))
		copy(cp, rows)
		batches = append(batches, cp)
		return int64(len(rows)), nil
	}

	in := feed([][]any{{1}, {2}, {3}, {4}, {5}})
	total, err := LoadBatches(context.Background(), []string{"c"}, in, 2, copyFn)
	if err != nil {
		t.Fatalf("LoadBatches: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d; want 5", total)
	}
	if len(batches) != 3 {
		t.Fatalf("batches = %d; want 3 (2+2+1)", len(batches))
	}
	if len(batches[2]) != 1 {
		t.Fatalf("last batch = %d rows; want 1", len(batches[2]))
	}
}

func TestLoadBatchesPropagatesCopyError(t *testing.T) {
	boom := errors.New("copy failed")
	calls := 0
	copyFn := func(_ context.Context, _ []string, rows [][]any) (int64, error) {
		calls++
		if calls == 2 {
			return 0, boom
		}
		return int64(len(rows)), nil
	}

	in := feed([][]any{{1}, {2}, {3}, {4}})
	total, err := LoadBatches(context.Background(), []string{"c"}, in, 2, copyFn)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v; want %v", err, boom)
	}
	if total != 2 {
		t.Fatalf("total = %d; want 2 (first batch only)", total)
	}
}

func TestLoadBatchesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := make(chan []any) // never closed; cancellation must unblock
	_, err := LoadBatches(ctx, []string{"c"}, in, 2, func(context.Context, []string, [][]any) (int64, error) {
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
}

func TestLoadBatchesRejectsBadArgs(t *testing.T) {
	if _, err := LoadBatches(context.Background(), nil, feed(nil), 0, func(context.Context, []string, [][]any) (int64, error) {
		return 0, nil
	}); err == nil {
		t.Fatal("batchSize 0 should error")
	}
	if _, err := LoadBatches(context.Background(), nil, feed(nil), 1, nil); err == nil {
		t.Fatal("nil copyFn should error")
	}
}
