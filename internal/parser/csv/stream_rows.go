// Package csv streams the raw sales CSV into records aligned to the target
// column contract. Parsing is fully streaming: the reader never loads the
// whole file in memory, reuses csv.Reader buffers, and soft-drops rows it
// cannot parse via the onErr callback.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"onrretl/internal/config"
	"onrretl/pkg/records"
)

// Row pairs a parsed record with its 1-based source line (the header, when
// present, is line 1).
type Row struct {
	Line int
	Rec  records.Record
}

// StreamRows streams CSV into records aligned to the target 'columns' order.
//
// Header handling:
//   - If options.has_header==true (default), the first line is treated as a
//     header. Each header cell is canonicalized (lower-case, non-alphanumeric
//     runs become "_"), so "State/Offshore Region" maps onto
//     "state_offshore_region" without configuration. options.header_map
//     (source-name -> canonical) overrides individual headers.
//   - Missing target columns map to nil cells.
//   - If has_header==false, positional mapping is assumed.
//
// Tuning/robustness (all optional via options):
//   - comma (string; first rune used; default ',')
//   - trim_space (bool; default true)
//   - lazy_quotes (bool; default false)
//   - fields_per_record (int; 0=default, -1=variable, >0=enforce)
//   - encoding (string; "", "utf-8", "windows-1252", "latin-1")
//
// onErr(line, err) receives recoverable row errors (soft-drop).
func StreamRows(
	ctx context.Context,
	src io.ReadCloser,
	columns []string,
	opt config.Options,
	out chan<- Row,
	onErr func(line int, err error),
) error {
	defer src.Close()
	defer close(out)

	hasHeader := opt.Bool("has_header", true)
	comma := opt.Rune("comma", ',')
	trim := opt.Bool("trim_space", true)
	hm := opt.StringMap("header_map")
	lazy := opt.Bool("lazy_quotes", false)
	fieldsPer := opt.Int("fields_per_record", 0)

	r, err := decodeReader(src, opt.String("encoding", ""))
	if err != nil {
		return err
	}
	r = skipBOM(r)

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.ReuseRecord = true
	cr.LazyQuotes = lazy
	if fieldsPer != 0 {
		cr.FieldsPerRecord = fieldsPer
	} else {
		cr.FieldsPerRecord = -1 // tolerant by default
	}

	// Build dest→source mapping.
	colIx := make([]int, len(columns)) // colIx[target] = source index, or -1
	for i := range colIx {
		colIx[i] = -1
	}

	line := 0
	read := func() ([]string, error) { line++; return cr.Read() }

	if hasHeader {
		hdr, err := read()
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		byName := make(map[string]int, len(hdr))
		for i, h := range hdr {
			name := canonicalHeader(h)
			if mapped, ok := hm[strings.TrimSpace(h)]; ok {
				name = mapped
			}
			byName[name] = i
		}
		for t, c := range columns {
			if s, ok := byName[c]; ok {
				colIx[t] = s
			}
		}
	} else {
		for i := range columns {
			if i < len(columns) {
				colIx[i] = i
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cells, err := read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				if onErr != nil {
					onErr(line, err)
				}
				continue
			}
			return fmt.Errorf("read line %d: %w", line, err)
		}

		rec := make(records.Record, len(columns))
		for t, c := range columns {
			s := colIx[t]
			if s < 0 || s >= len(cells) {
				rec[c] = nil
				continue
			}
			v := cells[s]
			if trim {
				v = strings.TrimSpace(v)
			}
			rec[c] = v
		}

		select {
		case out <- Row{Line: line, Rec: rec}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// canonicalHeader lower-cases a raw header cell and collapses every run of
// non-alphanumeric characters into a single underscore, so published headers
// like "Royalty Value Less Allowances" match contract column names directly.
func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	b.Grow(len(h))
	us := false
	for _, r := range h {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if us && b.Len() > 0 {
				b.WriteByte('_')
			}
			us = false
			b.WriteRune(r)
			continue
		}
		us = true
	}
	return b.String()
}
