// Package records defines the generic record type passed between pipeline
// stages. A Record is a mutable map from canonical column name to value;
// transformers mutate records in place and the slice is reused across the
// chain to avoid churn.
//
// Cell value conventions used throughout the pipeline:
//
//   - categorical columns: string
//   - calendar_year:       int
//   - money/volume/rate:   decimal.Decimal (after coercion)
//   - undefined/missing:   nil
package records

import (
	"github.com/shopspring/decimal"
)

// Record is one row keyed by canonical column name.
type Record map[string]any

// String returns the string value for col, or "" when the cell is absent,
// nil, or not a string.
func (r Record) String(col string) string {
	if v, ok := r[col]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Int returns the int value for col, or 0 when absent or not an int.
func (r Record) Int(col string) int {
	if v, ok := r[col]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		}
	}
	return 0
}

// Decimal returns the decimal value for col and whether the cell holds one.
func (r Record) Decimal(col string) (decimal.Decimal, bool) {
	if v, ok := r[col]; ok {
		if d, ok := v.(decimal.Decimal); ok {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}

// Empty reports whether the cell for col is absent, nil, or an empty string.
func (r Record) Empty(col string) bool {
	v, ok := r[col]
	if !ok || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// Clone returns a shallow copy of the record. Decimal values are immutable,
// so a shallow copy is sufficient for every cell type the pipeline uses.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
