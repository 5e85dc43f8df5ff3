// Package diag defines the findings the formatter driver reports per file.
//
// Diagnostic is the central record: Severity, Code, Message and a Location
// (path plus 1-based line, zero when the finding concerns the whole file).
// Producers emit through a Reporter; BagReporter collects into a Bag which
// supports sorting and deduplication. Rendering lives in the CLI.
//
// The engines themselves never fail: everything they notice (skipped brace
// edits, unterminated constructs, checksum drift) becomes a Diagnostic that
// the driver attaches to the file result.
package diag
