package builtin

import (
	"testing"

	"github.com/shopspring/decimal"

	"onrretl/internal/schema"
	"onrretl/pkg/records"
)

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  federal  onshore ", "FEDERAL ONSHORE"},
		{"Gulf of Mexico.", "GULF OF MEXICO"},
		{"oil & gas (pre-production),", "OIL & GAS (PRE-PRODUCTION)"},
		{"OIL - GAS", "OIL-GAS"},
		{"NGL / CONDENSATE", "NGL/CONDENSATE"},
		{"mixed space", "MIXED SPACE"},
		{"TRAILING .", "TRAILING"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeValue(c.in); got != c.want {
			t.Errorf("normalizeValue(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

// TestNormalizeThenCorrect reproduces the canonical cleanup of the known
// misspelled revenue type: raw "intergoven revenue-federal " normalizes to
// "INTERGOVEN REVENUE-FEDERAL", which the correction table then rewrites.
func TestNormalizeThenCorrect(t *testing.T) {
	recs := []records.Record{{
		schema.ColRevenueType: "intergoven revenue-federal ",
	}}
	out, err := NormalizeText{}.Apply(recs)
	if err != nil {
		t.Fatalf("NormalizeText: %v", err)
	}
	if got := out[0].String(schema.ColRevenueType); got != "INTERGOVEN REVENUE-FEDERAL" {
		t.Fatalf("after normalize got %q", got)
	}
	out, err = CorrectValues{}.Apply(out)
	if err != nil {
		t.Fatalf("CorrectValues: %v", err)
	}
	if got := out[0].String(schema.ColRevenueType); got != "INTERGOVERN REVENUE-FEDERAL" {
		t.Fatalf("after correct got %q", got)
	}
}

func TestCorrectValuesIdempotent(t *testing.T) {
	recs := []records.Record{{
		schema.ColRevenueType: "INTERGOVERN REVENUE-STATE",
	}}
	out, err := CorrectValues{}.Apply(recs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := out[0].String(schema.ColRevenueType); got != "INTERGOVERN REVENUE-STATE" {
		t.Fatalf("already-correct value changed: %q", got)
	}
}

func TestCorrectValuesCustomTable(t *testing.T) {
	recs := []records.Record{{
		schema.ColCommodity: "OIL BBL",
	}}
	c := CorrectValues{
		Column: schema.ColCommodity,
		Table:  map[string]string{"OIL BBL": "OIL"},
	}
	out, err := c.Apply(recs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := out[0].String(schema.ColCommodity); got != "OIL" {
		t.Fatalf("got %q; want OIL", got)
	}
}

func TestDeriveEfficiency(t *testing.T) {
	recs := []records.Record{{
		schema.ColSalesValue:   decimal.RequireFromString("1000.00"),
		schema.ColRoyaltyValue: decimal.RequireFromString("125.50"),
	}}
	out, err := DeriveEfficiency{}.Apply(recs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	v, ok := out[0][schema.ColRoyaltyEfficiency].(decimal.Decimal)
	if !ok {
		t.Fatalf("royalty_efficiency got %#v; want decimal", out[0][schema.ColRoyaltyEfficiency])
	}
	if v.String() != "12.55" {
		t.Fatalf("royalty_efficiency = %s; want 12.55", v)
	}
}

// Zero sales is an undefined ratio, never a division error.
func TestDeriveEfficiencyZeroSales(t *testing.T) {
	recs := []records.Record{{
		schema.ColSalesValue:   decimal.Zero,
		schema.ColRoyaltyValue: decimal.RequireFromString("9.99"),
	}}
	out, err := DeriveEfficiency{}.Apply(recs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out[0][schema.ColRoyaltyEfficiency] != nil {
		t.Fatalf("got %#v; want nil", out[0][schema.ColRoyaltyEfficiency])
	}
}

func TestDeriveEfficiencyMissingOperand(t *testing.T) {
	recs := []records.Record{{
		schema.ColSalesValue: decimal.RequireFromString("10.00"),
	}}
	out, err := DeriveEfficiency{}.Apply(recs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out[0][schema.ColRoyaltyEfficiency] != nil {
		t.Fatalf("got %#v; want nil", out[0][schema.ColRoyaltyEfficiency])
	}
}
