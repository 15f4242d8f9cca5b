package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"onrretl/internal/schema"
	"onrretl/internal/storage/sqlite"
	sqliteddl "onrretl/internal/storage/sqlite/ddl"
)

type sqliteQuerier struct {
	*sqlite.Repository
}

func (sqliteQuerier) Kind() string { return "sqlite" }

func newSeededQuerier(t *testing.T, rows [][]any) sqliteQuerier {
	t.Helper()
	repo, closeFn, err := sqlite.NewRepository(context.Background(), sqlite.Config{
		DSN:   ":memory:",
		Table: "sales_cleaned",
	})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(closeFn)

	stmt, err := sqliteddl.CreateTableSQL("sales_cleaned")
	if err != nil {
		t.Fatalf("CreateTableSQL: %v", err)
	}
	if err := repo.Exec(context.Background(), stmt); err != nil {
		t.Fatalf("Exec DDL: %v", err)
	}
	if len(rows) > 0 {
		if _, err := repo.CopyFrom(context.Background(), schema.ColumnNames(), rows); err != nil {
			t.Fatalf("CopyFrom: %v", err)
		}
	}
	return sqliteQuerier{repo}
}

// row builds a full-width table row with the varying fields exposed.
func row(year int64, region, commodity, landCategory string, volume, mmbtu, sales, royalty, transport, rate string) []any {
	return []any{
		year, region, "FEDERAL", landCategory, "ROYALTIES", commodity,
		volume, mmbtu, sales, royalty, transport, "0", rate, nil,
	}
}

func asFloat(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		t.Fatalf("unexpected numeric type %T (%v)", v, v)
		return 0
	}
}

func TestReportSQLDialectLimit(t *testing.T) {
	r, ok := ByName("top_regions_by_royalties")
	if !ok {
		t.Fatal("report missing")
	}

	pg := r.SQL("postgres", "sales_cleaned")
	if !strings.Contains(pg, "LIMIT 10") || strings.Contains(pg, "TOP") {
		t.Fatalf("postgres SQL wrong:\n%s", pg)
	}

	ms := r.SQL("mssql", "sales_cleaned")
	if !strings.Contains(ms, "SELECT TOP 10 ") || strings.Contains(ms, "LIMIT") {
		t.Fatalf("mssql SQL wrong:\n%s", ms)
	}

	if strings.Contains(pg, "{") || strings.Contains(ms, "{") {
		t.Fatal("unexpanded placeholder left in SQL")
	}
}

func TestAllReportsRenderClean(t *testing.T) {
	for _, r := range All() {
		for _, kind := range []string{"sqlite", "postgres", "mssql"} {
			sql := r.SQL(kind, "t")
			if strings.Contains(sql, "{") {
				t.Errorf("%s/%s: unexpanded placeholder:\n%s", r.Name, kind, sql)
			}
		}
	}
}

func TestRunAllBattery(t *testing.T) {
	q := newSeededQuerier(t, [][]any{
		row(2013, "TEXAS", "OIL", "ONSHORE", "10.00", "0", "1000.00", "100.00", "5.00", "0.1000"),
		row(2014, "TEXAS", "GAS", "ONSHORE", "20.00", "400.00", "1500.00", "100.00", "10.00", "0.2000"),
		row(2014, "ALASKA", "OIL", "OFFSHORE", "5.00", "0", "500.00", "50.00", "0", "0.1000"),
	})

	tables, err := RunAll(context.Background(), q, "sales_cleaned", nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(tables) != len(All()) {
		t.Fatalf("tables = %d; want %d", len(tables), len(All()))
	}
	byName := map[string]Table{}
	for _, tb := range tables {
		byName[tb.Name] = tb
	}

	ry := byName["royalties_by_year"]
	if len(ry.Rows) != 2 {
		t.Fatalf("royalties_by_year rows = %d; want 2", len(ry.Rows))
	}
	if got := asFloat(t, ry.Rows[0][1]); got != 100 {
		t.Fatalf("2013 royalties = %v; want 100", got)
	}
	if got := asFloat(t, ry.Rows[1][1]); got != 150 {
		t.Fatalf("2014 royalties = %v; want 150", got)
	}

	tr := byName["top_regions_by_royalties"]
	if len(tr.Rows) != 2 || tr.Rows[0][0].(string) != "TEXAS" {
		t.Fatalf("top_regions_by_royalties = %+v; want TEXAS first", tr.Rows)
	}

	cr := byName["commodity_ranking"]
	if len(cr.Rows) != 2 || cr.Rows[0][0].(string) != "OIL" {
		t.Fatalf("commodity_ranking = %+v; want OIL first (1500 value)", cr.Rows)
	}

	if dc := byName["duplicate_candidates"]; len(dc.Rows) != 0 {
		t.Fatalf("duplicate_candidates = %+v; want none", dc.Rows)
	}
}

func TestYearlySummaryWindow(t *testing.T) {
	q := newSeededQuerier(t, [][]any{
		row(2013, "TEXAS", "OIL", "ONSHORE", "1", "0", "1000.00", "100.00", "0", "0.1000"),
		row(2014, "TEXAS", "OIL", "ONSHORE", "1", "0", "2000.00", "150.00", "0", "0.1500"),
	})

	r, _ := ByName("yearly_summary")
	tb, err := Run(context.Background(), q, "sales_cleaned", r)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("rows = %d; want 2", len(tb.Rows))
	}

	// columns: year, sales, royalties, avg_rate, prev, yoy, cumulative
	first, second := tb.Rows[0], tb.Rows[1]

	if first[5] != nil {
		t.Fatalf("2013 yoy_pct_change = %#v; want NULL (no prior year)", first[5])
	}
	if got := asFloat(t, first[6]); got != 100 {
		t.Fatalf("2013 cumulative = %v; want 100", got)
	}
	if got := asFloat(t, second[5]); got != 50 {
		t.Fatalf("2014 yoy_pct_change = %v; want 50", got)
	}
	if got := asFloat(t, second[6]); got != 250 {
		t.Fatalf("2014 cumulative = %v; want 250", got)
	}
}

func TestDuplicateCandidatesReport(t *testing.T) {
	q := newSeededQuerier(t, [][]any{
		row(2015, "WYOMING", "OIL", "ONSHORE", "1", "0", "300.00", "30.00", "0", "0.1000"),
		row(2015, "WYOMING", "GAS", "ONSHORE", "1", "0", "300.00", "30.00", "0", "0.1000"),
		row(2016, "WYOMING", "OIL", "ONSHORE", "1", "0", "300.00", "30.00", "0", "0.1000"),
	})

	r, _ := ByName("duplicate_candidates")
	tb, err := Run(context.Background(), q, "sales_cleaned", r)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// the two 2015 rows share the composite key despite differing commodity;
	// the 2016 row is unique
	if len(tb.Rows) != 1 {
		t.Fatalf("rows = %+v; want exactly one flagged", tb.Rows)
	}
	if got := asFloat(t, tb.Rows[0][0]); got != 2015 {
		t.Fatalf("flagged year = %v; want 2015", got)
	}
	if got := asFloat(t, tb.Rows[0][4]); got != 2 {
		t.Fatalf("dup_rank = %v; want 2", got)
	}
}

func TestRunAllUnknownReport(t *testing.T) {
	q := newSeededQuerier(t, nil)
	if _, err := RunAll(context.Background(), q, "sales_cleaned", []string{"bogus"}); err == nil {
		t.Fatal("unknown report name should error")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	tb := Table{
		Name:    "royalties_by_year",
		Columns: []string{"calendar_year", "total_royalties"},
		Rows: [][]any{
			{int64(2013), 100.5},
			{int64(2014), nil},
		},
	}
	if err := WriteCSV(&buf, tb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "calendar_year,total_royalties\n2013,100.5\n2014,\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}
