// Package validate implements the post-load checks of the pipeline: the
// cleaned-table row-count check and the heuristic duplicate detector.
//
// The duplicate detector groups records by the composite key
// (calendar_year, state_offshore_region, sales_value,
// royalty_value_less_allowances) and flags every group member past the
// first. This is a deliberate approximation: collisions on these four
// fields, not full-row identity. It is a screening heuristic, not a
// duplicate oracle, and reimplementations must not "fix" it into a
// full-row comparison because that would change reported results.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"onrretl/internal/schema"
	"onrretl/pkg/records"
)

// Duplicate is one flagged group member (rank >= 2 within its group).
type Duplicate struct {
	Line         int // 1-based data line in the source (header is line 1)
	Rank         int // position within the group in arrival order
	Year         int
	Region       string
	SalesValue   string
	RoyaltyValue string
}

type group struct {
	count     int
	firstLine int
	year      int
	region    string
	sales     string
	royalty   string
}

// Detector accumulates duplicate groups over a streamed run. It keeps one
// small entry per distinct composite key, so memory stays proportional to
// the number of distinct groups rather than rows. Not safe for concurrent
// use; the pipeline observes records from a single goroutine.
type Detector struct {
	groups  map[xxh3.Uint128]*group
	flagged []Duplicate
	rows    int
}

// NewDetector returns an empty Detector.
func NewDetector() *Detector {
	return &Detector{groups: make(map[xxh3.Uint128]*group)}
}

// Observe feeds one cleaned record to the detector. line is the 1-based
// source line of the record. Records are keyed on the canonical string form
// of the four key fields; the 128-bit key hash keeps the group map compact.
func (d *Detector) Observe(line int, r records.Record) {
	d.rows++

	year := r.Int(schema.ColCalendarYear)
	region := r.String(schema.ColRegion)
	sales := canonicalDecimal(r, schema.ColSalesValue)
	royalty := canonicalDecimal(r, schema.ColRoyaltyValue)

	var b strings.Builder
	fmt.Fprintf(&b, "%d", year)
	b.WriteByte('\x1f')
	b.WriteString(region)
	b.WriteByte('\x1f')
	b.WriteString(sales)
	b.WriteByte('\x1f')
	b.WriteString(royalty)

	key := xxh3.HashString128(b.String())
	g, ok := d.groups[key]
	if !ok {
		d.groups[key] = &group{
			count:     1,
			firstLine: line,
			year:      year,
			region:    region,
			sales:     sales,
			royalty:   royalty,
		}
		return
	}
	g.count++
	d.flagged = append(d.flagged, Duplicate{
		Line:         line,
		Rank:         g.count,
		Year:         year,
		Region:       region,
		SalesValue:   sales,
		RoyaltyValue: royalty,
	})
}

// Rows returns the number of records observed.
func (d *Detector) Rows() int { return d.rows }

// Groups returns the number of distinct composite keys seen.
func (d *Detector) Groups() int { return len(d.groups) }

// Flagged returns the possible duplicates in arrival order. A record whose
// composite key is unique in the dataset is never flagged.
func (d *Detector) Flagged() []Duplicate { return d.flagged }

func canonicalDecimal(r records.Record, col string) string {
	if dec, ok := r.Decimal(col); ok {
		return dec.String()
	}
	return r.String(col)
}

// CountQuerier is the minimal storage capability the row-count check needs.
// storage.Repository satisfies it.
type CountQuerier interface {
	Select(ctx context.Context, query string) (cols []string, rows [][]any, err error)
}

// CheckRowCount compares the cleaned table's COUNT(*) against the number of
// rows the loader reported inserted, returning an error on mismatch.
func CheckRowCount(ctx context.Context, q CountQuerier, table string, inserted int64) (int64, error) {
	_, rows, err := q.Select(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	if len(rows) != 1 || len(rows[0]) != 1 {
		return 0, fmt.Errorf("count rows: unexpected result shape")
	}
	var n int64
	switch v := rows[0][0].(type) {
	case int64:
		n = v
	case int:
		n = int64(v)
	case float64:
		n = int64(v)
	default:
		return 0, fmt.Errorf("count rows: unexpected count type %T", v)
	}
	if n != inserted {
		return n, fmt.Errorf("row count mismatch: table has %d rows, loader inserted %d", n, inserted)
	}
	return n, nil
}
