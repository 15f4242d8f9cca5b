package ddl

import (
	"strings"
	"testing"

	"onrretl/internal/schema"
)

func TestMapType(t *testing.T) {
	cases := map[schema.Kind]string{
		schema.KindYear:  "INTEGER",
		schema.KindMoney: "NUMERIC(22,2)",
		schema.KindRate:  "NUMERIC(9,4)",
		schema.KindText:  "TEXT",
	}
	for kind, want := range cases {
		if got := MapType(kind); got != want {
			t.Errorf("MapType(%v) = %q; want %q", kind, got, want)
		}
	}
}

func TestCreateTableSQL(t *testing.T) {
	stmt, err := CreateTableSQL("public.sales_cleaned")
	if err != nil {
		t.Fatalf("CreateTableSQL: %v", err)
	}
	if !strings.HasPrefix(stmt, `CREATE TABLE IF NOT EXISTS "public"."sales_cleaned"`) {
		t.Fatalf("unexpected prefix: %s", stmt)
	}
	if !strings.Contains(stmt, `"effective_royalty_rate" NUMERIC(9,4) NOT NULL`) {
		t.Errorf("rate column wrong:\n%s", stmt)
	}
	if !strings.Contains(stmt, `"royalty_efficiency" NUMERIC(22,2)`) ||
		strings.Contains(stmt, `"royalty_efficiency" NUMERIC(22,2) NOT NULL`) {
		t.Errorf("royalty_efficiency must be nullable:\n%s", stmt)
	}
}

func TestCreateTableSQLEmptyName(t *testing.T) {
	if _, err := CreateTableSQL(""); err == nil {
		t.Fatal("empty table name should error")
	}
}
