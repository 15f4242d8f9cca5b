package storage

import (
	"github.com/shopspring/decimal"

	"onrretl/pkg/records"
)

// RowFromRecord flattens a record into a driver row aligned to the columns
// order, converting cells with ToDBValue.
func RowFromRecord(rec records.Record, columns []string) []any {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = ToDBValue(rec[c])
	}
	return row
}

// ToDBValue converts a record cell into a value every backend driver can
// encode. Decimals travel as their canonical string form: Postgres and MSSQL
// parse it into NUMERIC, SQLite's NUMERIC affinity converts it on store.
// nil stays nil (NULL); everything else passes through unchanged.
func ToDBValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		return t.String()
	default:
		return v
	}
}
