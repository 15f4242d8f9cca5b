// Package main wires the cleaning pipeline end-to-end: source → CSV stream →
// transform chain → batched load → row-count check → reports. This file keeps
// the CLI layer thin: it depends only on storage-agnostic interfaces and
// never imports database drivers or backend-specific packages directly.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"onrretl/internal/config"
	"onrretl/internal/datasource"
	"onrretl/internal/datasource/file"
	"onrretl/internal/datasource/httpds"
	"onrretl/internal/metrics"
	csvparser "onrretl/internal/parser/csv"
	"onrretl/internal/report"
	"onrretl/internal/schema"
	"onrretl/internal/storage"
	"onrretl/internal/transformer"
	"onrretl/internal/validate"
	"onrretl/pkg/records"
)

const errSampleSize = 3

type Repository = storage.Repository

// runtimeConfig contains the resolved batching and buffering configuration
// for a streaming run. Values are derived from the pipeline config with
// optional environment variable overrides (12-factor style).
type runtimeConfig struct {
	batchSize  int
	bufferSize int
}

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (Repository, error) {
		return storage.New(ctx, cfg)
	}

	openSourceFn = openSource

	streamRowsFn = csvparser.StreamRows
)

// runStreamed executes a full CSV → clean → load → verify → report run.
//
// The cleaning chain is fail-fast: a record that cannot be coerced aborts the
// run. CSV parse errors, by contrast, are soft: the offending line is dropped,
// counted, and a small sample is summarized at the end.
//
// Concurrency model:
//
//	Reader (CSV; 1)
//	     → Transformer (chain applied per batch; flags duplicates)
//	     → Loader (bulk insert in batches)
//
// Back-pressure is enforced via bounded channels so peak memory stays around
// O(batchSize + bufferSize). A fatal transform or load error cancels the
// context and stops the upstream stages.
func runStreamed(ctx context.Context, p config.Pipeline) error {
	rt := newRuntimeConfig(p)
	log.Printf("stream runtime: batch=%d buffer=%d", rt.batchSize, rt.bufferSize)

	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind:  p.Storage.Kind,
		DSN:   p.Storage.DB.DSN,
		Table: p.Storage.DB.Table,
	})
	if err != nil {
		return fmt.Errorf("init repo: %w", err)
	}
	defer repo.Close()

	if p.Storage.DB.AutoCreateTable {
		if err := storage.EnsureTable(ctx, repo, p.Storage.DB.Table); err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
	}

	chain, err := transformer.FromConfig(p.Transform)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		columns    = schema.ColumnNames()
		srcColumns = schema.SourceColumnNames()
		detector   = validate.NewDetector()
		parseAgg   = newErrAgg(errSampleSize)
		processed  int64
	)

	rowCh := make(chan csvparser.Row, rt.bufferSize)
	loadCh := make(chan []any, rt.bufferSize)

	g, gctx := errgroup.WithContext(ctx)

	// Reader: source → parsed records.
	g.Go(func() error {
		src, err := openSourceFn(gctx, p)
		if err != nil {
			close(rowCh)
			return fmt.Errorf("source open: %w", err)
		}
		onParseErr := func(line int, err error) {
			parseAgg.add(fmt.Sprintf("line=%d: %v", line, err))
		}
		return streamRowsFn(gctx, src, srcColumns, p.Parser.Options, rowCh, onParseErr)
	})

	// Transformer: clean batches, flag duplicates, emit driver rows.
	g.Go(func() error {
		defer close(loadCh)

		batch := make([]csvparser.Row, 0, rt.batchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			recs := make([]records.Record, len(batch))
			for i, r := range batch {
				recs[i] = r.Rec
			}
			cleaned, err := chain.Apply(recs)
			if err != nil {
				return fmt.Errorf("transform: lines %d-%d: %w",
					batch[0].Line, batch[len(batch)-1].Line, err)
			}
			for i, rec := range cleaned {
				detector.Observe(batch[i].Line, rec)
				row := storage.RowFromRecord(rec, columns)
				select {
				case loadCh <- row:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			processed += int64(len(cleaned))
			batch = batch[:0]
			return nil
		}

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case r, ok := <-rowCh:
				if !ok {
					return flush()
				}
				batch = append(batch, r)
				if len(batch) >= rt.batchSize {
					if err := flush(); err != nil {
						return err
					}
				}
			}
		}
	})

	// Loader: batch rows and bulk-insert via the repository.
	var inserted int64
	g.Go(func() error {
		copyFn := func(ctx context.Context, cols []string, rows [][]any) (int64, error) {
			n, err := repo.CopyFrom(ctx, cols, rows)
			if err == nil {
				metrics.RecordRow(p.Job, "inserted", n)
				metrics.RecordBatches(p.Job, 1)
			}
			return n, err
		}
		start := time.Now()
		n, err := storage.LoadBatches(gctx, columns, loadCh, rt.batchSize, copyFn)
		inserted = n
		metrics.RecordStep(p.Job, "load", err, time.Since(start))
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	metrics.RecordRow(p.Job, "processed", processed)
	metrics.RecordRow(p.Job, "parse_errors", int64(parseAgg.count))
	logParseSummary(parseAgg)

	// Row-count check: every cleaned record must be queryable back.
	stored, err := validate.CheckRowCount(ctx, repo, p.Storage.DB.Table, inserted)
	if err != nil {
		return err
	}
	log.Printf("row count verified: inserted=%d stored=%d", inserted, stored)

	logDuplicateSummary(p.Job, detector)

	if p.Reports.OutputDir != "" {
		start := time.Now()
		tables, err := report.RunAll(ctx, repo, p.Storage.DB.Table, p.Reports.Only)
		metrics.RecordStep(p.Job, "reports", err, time.Since(start))
		if err != nil {
			return err
		}
		if err := report.WriteAll(p.Reports.OutputDir, tables); err != nil {
			return err
		}
		log.Printf("reports: wrote %d files to %s", len(tables), p.Reports.OutputDir)
	}

	return nil
}

// newRuntimeConfig resolves the runtime configuration for a streaming run
// using the pipeline config and environment-variable fallbacks.
func newRuntimeConfig(p config.Pipeline) runtimeConfig {
	return runtimeConfig{
		batchSize:  pickInt(p.Runtime.BatchSize, getenvInt("ETL_BATCH_SIZE", 5000)),
		bufferSize: pickInt(p.Runtime.ChannelBuffer, getenvInt("ETL_CH_BUFFER", 4096)),
	}
}

func openSource(ctx context.Context, p config.Pipeline) (io.ReadCloser, error) {
	var src datasource.Source
	switch p.Source.Kind {
	case "file":
		src = file.NewLocal(p.Source.File.Path)
	case "http":
		src = httpds.NewRemote(httpds.Config{URL: p.Source.HTTP.URL})
	default:
		return nil, fmt.Errorf("unsupported source.kind=%s", p.Source.Kind)
	}
	return src.Open(ctx)
}

// logParseSummary prints aggregated parse errors. Only the first N unique
// messages are shown.
func logParseSummary(agg *errAgg) {
	if agg.count == 0 {
		return
	}
	log.Printf("parse errors: %d (showing first %d)", agg.count, len(agg.first))
	for i, s := range agg.first {
		log.Printf("  #%03d: %s", i+1, s)
	}
}

// logDuplicateSummary prints the duplicate-candidate heuristic results.
// Flagged rows are reported, never dropped: the composite key is too coarse
// to prove two rows identical.
func logDuplicateSummary(job string, d *validate.Detector) {
	flagged := d.Flagged()
	metrics.RecordRow(job, "flagged_duplicates", int64(len(flagged)))
	log.Printf("duplicates: rows=%d groups=%d flagged=%d", d.Rows(), d.Groups(), len(flagged))

	max := errSampleSize
	if len(flagged) < max {
		max = len(flagged)
	}
	for i := 0; i < max; i++ {
		f := flagged[i]
		log.Printf("  flagged line=%d rank=%d year=%d region=%q sales=%s royalty=%s",
			f.Line, f.Rank, f.Year, f.Region, f.SalesValue, f.RoyaltyValue)
	}
	if len(flagged) > max {
		log.Printf("  ... %d more", len(flagged)-max)
	}
}

// getenvInt reads an int from environment, returning def when unset/invalid.
func getenvInt(k string, def int) int {
	if s := os.Getenv(k); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

// pickInt chooses the first positive value 'a', otherwise returns 'b'.
func pickInt(a, b int) int {
	if a > 0 {
		return a
	}
	return b
}

// errAgg aggregates errors
type errAgg struct {
	mu    sync.Mutex
	limit int
	count int
	first []string
}

func newErrAgg(limit int) *errAgg {
	return &errAgg{limit: limit}
}

func (a *errAgg) add(msg string) {
	a.mu.Lock()
	if a.count < a.limit {
		a.first = append(a.first, msg)
	}
	a.count++
	a.mu.Unlock()
}
