package builtin

import (
	"github.com/shopspring/decimal"

	"onrretl/internal/schema"
	"onrretl/pkg/records"
)

var hundred = decimal.NewFromInt(100)

// DeriveEfficiency computes the royalty efficiency metric per record:
//
//	royalty_efficiency = round(royalty_value / sales_value * 100, 2)
//
// The cell is nil (SQL NULL) whenever sales value is zero or either operand
// is missing. A zero denominator is not an error, it is an undefined ratio.
type DeriveEfficiency struct{}

func (DeriveEfficiency) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		sales, okS := r.Decimal(schema.ColSalesValue)
		royalty, okR := r.Decimal(schema.ColRoyaltyValue)
		if !okS || !okR || sales.IsZero() {
			r[schema.ColRoyaltyEfficiency] = nil
			continue
		}
		r[schema.ColRoyaltyEfficiency] = royalty.Div(sales).Mul(hundred).Round(2)
	}
	return in, nil
}
