package builtin

import (
	"strings"

	"onrretl/internal/schema"
	"onrretl/pkg/records"
)

// NormalizeText canonicalizes the categorical text columns. Per column, in
// order: upper-case, trim leading/trailing whitespace, collapse internal
// whitespace runs to a single space, strip trailing periods/commas, and
// de-pad the "-" and "/" separators (" - " becomes "-", " / " becomes "/").
//
// Punctuation stripping must follow whitespace collapsing so that trailing
// ". " patterns are fully removed.
type NormalizeText struct {
	// Columns lists the text columns to normalize. Empty means the full
	// schema.TextColumns set.
	Columns []string
}

func (n NormalizeText) Apply(in []records.Record) ([]records.Record, error) {
	cols := n.Columns
	if len(cols) == 0 {
		cols = schema.TextColumns()
	}
	for _, r := range in {
		for _, col := range cols {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			r[col] = normalizeValue(s)
		}
	}
	return in, nil
}

func normalizeValue(s string) string {
	s = strings.ToUpper(s)
	s = strings.TrimSpace(s)
	s = collapseSpaces(s)
	s = strings.TrimRight(s, "., ")
	s = strings.ReplaceAll(s, " - ", "-")
	s = strings.ReplaceAll(s, " / ", "/")
	return s
}

// collapseSpaces rewrites every run of whitespace to a single ASCII space.
// NBSP (U+00A0) shows up in some published vintages and counts as whitespace
// here.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ' ' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
