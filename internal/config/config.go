// Package config defines the canonical, JSON-serializable configuration model
// for the sales-cleaning pipeline. It is intentionally small, explicit, and
// dependency-free so that pipelines can be loaded from disk and passed through
// the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the JSON structure used in pipeline
//     files under configs/*.json.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":      "onrr_sales",
//	  "source":   { "kind": "file", "file": { "path": "data/sales.csv" } },
//	  "parser":   { "kind": "csv", "options": { "has_header": true } },
//	  "transform":[
//	    { "kind": "coerce" }, { "kind": "fill_zero" },
//	    { "kind": "normalize_text" }, { "kind": "correct_values" },
//	    { "kind": "derive_efficiency" }
//	  ],
//	  "storage":  { "kind": "sqlite", "db": { "dsn": "sales.db", "table": "onrr_sales_cleaned" } },
//	  "reports":  { "output_dir": "out" }
//	}
package config

import "encoding/json"

// Pipeline describes the full cleaning-and-reporting run. It is the top-level
// object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run for logging and metrics grouping.
	Job string `json:"job"`

	// Source describes where the raw sales CSV comes from (local file or HTTP).
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into records.
	Parser Parser `json:"parser"`

	// Transform lists the ordered cleaning stages applied to parsed records.
	// The order is significant and is enforced by ValidatePipeline.
	Transform []Transform `json:"transform"`

	// Storage describes where cleaned records are written.
	Storage Storage `json:"storage"`

	// Reports configures the read-only reporting battery run after loading.
	Reports Reports `json:"reports"`

	// Runtime controls batching and channel buffer sizes.
	Runtime RuntimeConfig `json:"runtime"`
}

// RuntimeConfig controls batching and buffering for the streaming run.
type RuntimeConfig struct {
	BatchSize     int `json:"batch_size"`
	ChannelBuffer int `json:"channel_buffer"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation: "file" or "http".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`

	// HTTP carries options for the "http" source kind.
	HTTP SourceHTTP `json:"http"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input CSV.
	Path string `json:"path"`
}

// SourceHTTP holds configuration for the "http" source kind. ONRR publishes
// the sales dataset as a downloadable CSV.
type SourceHTTP struct {
	// URL is the location of the CSV document.
	URL string `json:"url"`
}

// Parser selects how to parse the raw source into logical rows/columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys include:
	//   has_header (bool), comma (string), trim_space (bool),
	//   encoding (string), header_map (object)
	Options Options `json:"options"`
}

// Transform defines a single cleaning stage. The sequence of stages forms the
// transformation chain executed by the pipeline.
type Transform struct {
	// Kind selects the stage implementation: "coerce", "fill_zero",
	// "normalize_text", "correct_values", or "derive_efficiency".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the selected stage.
	Options Options `json:"options"`
}

// Storage selects the sink used to persist cleaned records.
type Storage struct {
	// Kind selects the storage backend: "postgres", "sqlite", or "mssql".
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the DB sink.
type DBConfig struct {
	// DSN is the connection string for the selected backend.
	DSN string `json:"dsn"`

	// Table is the fully qualified cleaned-table name
	// (e.g., "public.onrr_sales_cleaned").
	Table string `json:"table"`

	// AutoCreateTable creates the cleaned table from the sales contract when
	// it does not exist yet.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Reports configures the reporting battery.
type Reports struct {
	// OutputDir is where each report's result set is written as CSV.
	// Empty disables file emission; results are still summarized in the log.
	OutputDir string `json:"output_dir"`

	// Only optionally restricts the run to the named reports. Empty runs all.
	Only []string `json:"only"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It purposefully
// performs only minimal type coercion and returns provided defaults when a
// key is absent or of an unexpected type.
//
// Options is used for parser/transform-specific configuration where the shape
// varies by implementation.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers are decoded as
// float64 by encoding/json, so this method accepts float64 and casts to int.
// If the value is neither float64 nor int, def is returned.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. This is useful for single-character parser settings such
// as a CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty
// map when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of
// strings (or an array of interface values containing strings). Returns nil
// when the key is missing or the value is not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object in JSON decodes to a non-nil, empty Options map. This
// simplifies call sites by removing the need to nil-check Options values.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
