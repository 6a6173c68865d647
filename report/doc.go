// Package report implements the file-sink plumbing spec.md §6
// describes: one CSV file per operation, named "<prefix>.<op>.log",
// with a header line followed by one row per sample. The core never
// imports os directly for this - it only calls through Sink.
package report
