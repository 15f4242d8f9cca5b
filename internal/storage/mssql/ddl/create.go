// Package ddl generates the SQL Server DDL for the cleaned sales table.
//
// T-SQL has no CREATE TABLE IF NOT EXISTS, so the statement is guarded with
// an OBJECT_ID check.
package ddl

import (
	"fmt"
	"strings"

	"onrretl/internal/schema"
)

// MapType maps a schema kind onto a SQL Server column type.
func MapType(kind schema.Kind) string {
	switch kind {
	case schema.KindYear:
		return "INT"
	case schema.KindMoney:
		return "NUMERIC(22,2)"
	case schema.KindRate:
		return "NUMERIC(9,4)"
	default:
		return "NVARCHAR(255)"
	}
}

// CreateTableSQL returns a guarded CREATE TABLE statement for the cleaned
// sales table under the given (possibly schema-qualified) name.
func CreateTableSQL(table string) (string, error) {
	fqn := strings.TrimSpace(table)
	if fqn == "" {
		return "", fmt.Errorf("mssql ddl: table name must not be empty")
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
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nCREATE TABLE %s (\n  %s\n);",
		strings.ReplaceAll(fqn, "'", "''"),
		quoteFQN(fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

// quoteIdent brackets a single identifier segment for SQL Server.
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
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
