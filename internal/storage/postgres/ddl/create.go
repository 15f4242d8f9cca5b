// Package ddl generates the Postgres DDL for the cleaned sales table.
//
// Monetary and volume columns are NUMERIC(22,2) (20 integer digits, 2
// fraction digits), the effective royalty rate is NUMERIC(9,4) to leave
// headroom over its logical (5,4) precision, and the derived
// royalty_efficiency column is the only nullable numeric column.
package ddl

import (
	"fmt"
	"strings"

	"onrretl/internal/schema"
)

// MapType maps a schema kind onto a Postgres column type.
func MapType(kind schema.Kind) string {
	switch kind {
	case schema.KindYear:
		return "INTEGER"
	case schema.KindMoney:
		return "NUMERIC(22,2)"
	case schema.KindRate:
		return "NUMERIC(9,4)"
	default:
		return "TEXT"
	}
}

// CreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for the
// cleaned sales table under the given (possibly schema-qualified) name.
func CreateTableSQL(table string) (string, error) {
	fqn := strings.TrimSpace(table)
	if fqn == "" {
		return "", fmt.Errorf("pg ddl: table name must not be empty")
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
