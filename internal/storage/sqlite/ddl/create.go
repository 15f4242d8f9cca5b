// Package ddl generates the SQLite DDL for the cleaned sales table.
//
// SQLite uses dynamic typing, so the mapping prefers canonical affinities:
// the calendar year becomes INTEGER, categorical columns TEXT, and the
// decimal columns NUMERIC (values are stored from their canonical string
// form and converted by affinity).
package ddl

import (
	"fmt"
	"strings"

	"onrretl/internal/schema"
)

// MapType maps a schema kind onto a SQLite column type.
func MapType(kind schema.Kind) string {
	switch kind {
	case schema.KindYear:
		return "INTEGER"
	case schema.KindMoney, schema.KindRate:
		return "NUMERIC"
	default:
		return "TEXT"
	}
}

// CreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for the
// cleaned sales table under the given (possibly schema-qualified) name.
func CreateTableSQL(table string) (string, error) {
	fqn := strings.TrimSpace(table)
	if fqn == "" {
		return "", fmt.Errorf("sqlite ddl: table name must not be empty")
	}

	cols := make([]string, 0, len(schema.Sales()))
	for _, c := range schema.Sales() {
		var sb strings.Builder
		sb.WriteString(quoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(MapType(c.Kind))
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		quoteFQN(fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quoteIdent(p))
	}
	return strings.Join(out, ".")
}
