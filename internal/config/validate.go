// Package config provides configuration models and helpers for cleaning
// pipelines.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "transform[1].kind"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// stageRank encodes the required relative order of the cleaning stages.
// Coercion must precede zero-filling (fill targets typed cells), text
// normalization must precede value correction (the correction table matches
// normalized text), and the efficiency metric is derived from filled numeric
// cells last.
var stageRank = map[string]int{
	"coerce":            1,
	"fill_zero":         2,
	"normalize_text":    3,
	"correct_values":    4,
	"derive_efficiency": 5,
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	add := func(sev IssueSeverity, path, msg string) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: msg})
	}

	if strings.TrimSpace(p.Job) == "" {
		add(SeverityWarning, "job", "job name is empty; metrics and logs will use a default")
	}

	// Source checks.
	switch p.Source.Kind {
	case "file":
		if strings.TrimSpace(p.Source.File.Path) == "" {
			add(SeverityError, "source.file.path", "file source requires a path")
		}
	case "http":
		if strings.TrimSpace(p.Source.HTTP.URL) == "" {
			add(SeverityError, "source.http.url", "http source requires a url")
		}
	case "":
		add(SeverityError, "source.kind", "source kind is required")
	default:
		add(SeverityError, "source.kind", fmt.Sprintf("unknown source kind %q", p.Source.Kind))
	}

	// Parser checks.
	switch p.Parser.Kind {
	case "csv":
		// ok
	case "":
		add(SeverityError, "parser.kind", "parser kind is required")
	default:
		add(SeverityError, "parser.kind", fmt.Sprintf("unknown parser kind %q", p.Parser.Kind))
	}

	// Transform checks: every kind must be known, no duplicates, and the
	// stage-order dependencies must hold.
	seen := map[string]int{}
	lastRank := 0
	for i, t := range p.Transform {
		path := fmt.Sprintf("transform[%d].kind", i)
		rank, ok := stageRank[t.Kind]
		if !ok {
			add(SeverityError, path, fmt.Sprintf("unknown transform kind %q", t.Kind))
			continue
		}
		if prev, dup := seen[t.Kind]; dup {
			add(SeverityError, path, fmt.Sprintf("transform %q already declared at index %d", t.Kind, prev))
			continue
		}
		seen[t.Kind] = i
		if rank < lastRank {
			add(SeverityError, path,
				fmt.Sprintf("transform %q must run before the preceding stage; required order: coerce, fill_zero, normalize_text, correct_values, derive_efficiency", t.Kind))
		}
		if rank > lastRank {
			lastRank = rank
		}
	}
	if len(p.Transform) == 0 {
		add(SeverityWarning, "transform", "no transforms configured; records will be loaded raw")
	}
	if _, ok := seen["derive_efficiency"]; ok {
		if _, hasCoerce := seen["coerce"]; !hasCoerce {
			add(SeverityError, "transform", "derive_efficiency requires a preceding coerce stage")
		}
	}

	// Storage checks.
	switch p.Storage.Kind {
	case "postgres", "sqlite", "mssql":
		if strings.TrimSpace(p.Storage.DB.DSN) == "" {
			add(SeverityError, "storage.db.dsn", "storage requires a DSN")
		}
		if strings.TrimSpace(p.Storage.DB.Table) == "" {
			add(SeverityError, "storage.db.table", "storage requires a table name")
		}
	case "":
		add(SeverityError, "storage.kind", "storage kind is required")
	default:
		add(SeverityError, "storage.kind", fmt.Sprintf("unknown storage kind %q", p.Storage.Kind))
	}

	// Runtime checks.
	if p.Runtime.BatchSize < 0 {
		add(SeverityError, "runtime.batch_size", "batch_size must not be negative")
	}
	if p.Runtime.ChannelBuffer < 0 {
		add(SeverityError, "runtime.channel_buffer", "channel_buffer must not be negative")
	}

	return issues
}

// HasErrors reports whether any issue in the slice is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}
