// Package builtin contains the reusable cleaning stages of the sales
// pipeline. Stages mutate records in place and are composed into an ordered
// transformer.Chain by the cmd wiring.
package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"onrretl/internal/schema"
	"onrretl/pkg/records"
)

// CoerceNumeric converts the calendar year and the seven financial/rate
// columns from their raw CSV text into typed cells: int for the year,
// decimal.Decimal for the money/volume/rate columns, rounded to the column's
// scale (2 fraction digits for amounts, 4 for the royalty rate).
//
// A non-numeric value in any of these columns is fatal for the run; there is
// no partial recovery. Absent or empty cells are left untouched here and
// become zero in the fill stage.
type CoerceNumeric struct {
	// Columns lists the decimal columns to coerce. Empty means the full
	// schema.NumericColumns set.
	Columns []string
}

func (c CoerceNumeric) Apply(in []records.Record) ([]records.Record, error) {
	cols := c.Columns
	if len(cols) == 0 {
		cols = schema.NumericColumns()
	}

	for i, r := range in {
		if !r.Empty(schema.ColCalendarYear) {
			if _, ok := r[schema.ColCalendarYear].(int); !ok {
				s := strings.TrimSpace(r.String(schema.ColCalendarYear))
				y, err := strconv.Atoi(s)
				if err != nil {
					return in, fmt.Errorf("coerce: record %d: %s: %q is not a year", i, schema.ColCalendarYear, s)
				}
				r[schema.ColCalendarYear] = y
			}
		}

		for _, col := range cols {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				// Already typed (re-run over coerced data is a no-op).
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				r[col] = nil
				continue
			}
			// The published CSV embeds thousands separators in some vintages.
			s = strings.ReplaceAll(s, ",", "")
			d, err := decimal.NewFromString(s)
			if err != nil {
				return in, fmt.Errorf("coerce: record %d: %s: %q is not numeric", i, col, s)
			}
			r[col] = d.Round(schema.Scale(col))
		}
	}
	return in, nil
}

// FillZero replaces absent numeric cells with zero so that downstream
// aggregates never silently drop rows through null propagation.
type FillZero struct {
	// Columns lists the columns to zero-fill. Empty means the full
	// schema.NumericColumns set.
	Columns []string
}

func (f FillZero) Apply(in []records.Record) ([]records.Record, error) {
	cols := f.Columns
	if len(cols) == 0 {
		cols = schema.NumericColumns()
	}
	for _, r := range in {
		for _, col := range cols {
			if r.Empty(col) {
				r[col] = decimal.Zero.Round(schema.Scale(col))
			}
		}
	}
	return in, nil
}
