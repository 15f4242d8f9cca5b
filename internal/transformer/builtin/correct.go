package builtin

import (
	"onrretl/internal/schema"
	"onrretl/pkg/records"
)

// DefaultCorrections fixes the known misspelled revenue-type values in the
// published dataset. This is a fixed lookup table, not a spell-correction
// algorithm; extend it by adding entries (or via the transform's
// "corrections" option).
var DefaultCorrections = map[string]string{
	"INTERGOVEN REVENUE-FEDERAL": "INTERGOVERN REVENUE-FEDERAL",
	"INTERGOVEN REVENUE-STATE":   "INTERGOVERN REVENUE-STATE",
}

// CorrectValues rewrites exact-match categorical values on a single column.
// Unmatched values pass through unchanged; applying the stage to already
// corrected data is a no-op.
type CorrectValues struct {
	// Column is the target column. Empty means revenue_type.
	Column string

	// Table maps the exact raw value to its replacement. Nil means
	// DefaultCorrections.
	Table map[string]string
}

func (c CorrectValues) Apply(in []records.Record) ([]records.Record, error) {
	col := c.Column
	if col == "" {
		col = schema.ColRevenueType
	}
	table := c.Table
	if table == nil {
		table = DefaultCorrections
	}
	for _, r := range in {
		if want, ok := table[r.String(col)]; ok {
			r[col] = want
		}
	}
	return in, nil
}
