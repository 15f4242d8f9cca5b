package csv

import (
	"context"
	"io"
	"strings"
	"testing"

	"onrretl/internal/config"
)

func collect(t *testing.T, raw string, columns []string, opt config.Options) ([]Row, []error) {
	t.Helper()
	out := make(chan Row, 64)
	var soft []error
	onErr := func(_ int, err error) { soft = append(soft, err) }

	err := StreamRows(context.Background(), io.NopCloser(strings.NewReader(raw)), columns, opt, out, onErr)
	if err != nil {
		t.Fatalf("StreamRows: %v", err)
	}
	var rows []Row
	for r := range out {
		rows = append(rows, r)
	}
	return rows, soft
}

func TestStreamRowsHeaderMapping(t *testing.T) {
	raw := "Calendar Year,State/Offshore Region,Sales Value\n" +
		"2019,Gulf of Mexico,100.50\n" +
		"2020,TEXAS,200.00\n"
	cols := []string{"calendar_year", "state_offshore_region", "sales_value"}

	rows, soft := collect(t, raw, cols, nil)
	if len(soft) != 0 {
		t.Fatalf("unexpected soft errors: %v", soft)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d; want 2", len(rows))
	}
	// header is line 1, first data row line 2
	if rows[0].Line != 2 {
		t.Fatalf("first data line = %d; want 2", rows[0].Line)
	}
	if got := rows[0].Rec.String("state_offshore_region"); got != "Gulf of Mexico" {
		t.Fatalf("state_offshore_region = %q", got)
	}
	if got := rows[1].Rec.String("sales_value"); got != "200.00" {
		t.Fatalf("sales_value = %q", got)
	}
}

func TestStreamRowsMissingColumnIsNil(t *testing.T) {
	raw := "Calendar Year\n2019\n"
	cols := []string{"calendar_year", "sales_value"}

	rows, _ := collect(t, raw, cols, nil)
	if len(rows) != 1 {
		t.Fatalf("rows = %d; want 1", len(rows))
	}
	if v := rows[0].Rec["sales_value"]; v != nil {
		t.Fatalf("absent source column should map to nil, got %#v", v)
	}
}

func TestStreamRowsBOM(t *testing.T) {
	raw := "\ufeffcalendar_year\n2013\n"
	rows, _ := collect(t, raw, []string{"calendar_year"}, nil)
	if len(rows) != 1 || rows[0].Rec.String("calendar_year") != "2013" {
		t.Fatalf("BOM header not recognized: %+v", rows)
	}
}

// Quote errors drop the offending line only; parsing continues.
func TestStreamRowsSoftParseErrors(t *testing.T) {
	raw := "calendar_year,commodity\n" +
		"2019,oil\n" +
		"2020,\"broken\n" // unterminated quote swallows the rest

	rows, soft := collect(t, raw, []string{"calendar_year", "commodity"}, nil)
	if len(soft) == 0 {
		t.Fatal("want at least one soft parse error")
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d; want 1", len(rows))
	}
}

func TestStreamRowsHeaderMapOverride(t *testing.T) {
	raw := "Yr,Region\n2019,ALASKA\n"
	opt := config.Options{
		"header_map": map[string]any{"Yr": "calendar_year", "Region": "state_offshore_region"},
	}
	rows, _ := collect(t, raw, []string{"calendar_year", "state_offshore_region"}, opt)
	if len(rows) != 1 {
		t.Fatalf("rows = %d; want 1", len(rows))
	}
	if got := rows[0].Rec.String("calendar_year"); got != "2019" {
		t.Fatalf("calendar_year = %q", got)
	}
}

func TestStreamRowsNoHeaderPositional(t *testing.T) {
	raw := "2019,ALASKA\n"
	opt := config.Options{"has_header": false}
	rows, _ := collect(t, raw, []string{"calendar_year", "state_offshore_region"}, opt)
	if len(rows) != 1 {
		t.Fatalf("rows = %d; want 1", len(rows))
	}
	if got := rows[0].Rec.String("state_offshore_region"); got != "ALASKA" {
		t.Fatalf("state_offshore_region = %q", got)
	}
}

func TestCanonicalHeader(t *testing.T) {
	cases := map[string]string{
		"Calendar Year":                 "calendar_year",
		"State/Offshore Region":         "state_offshore_region",
		"Royalty Value Less Allowances": "royalty_value_less_allowances",
		"Gas MMBtu Volume":              "gas_mmbtu_volume",
		"  commodity  ":                 "commodity",
	}
	for in, want := range cases {
		if got := canonicalHeader(in); got != want {
			t.Errorf("canonicalHeader(%q) = %q; want %q", in, got, want)
		}
	}
}
