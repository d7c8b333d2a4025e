// Package logtail reads the end of takedown's log file for the logs command.
//
// Read keeps a ring buffer of the last N lines so large files are scanned
// once without being held in memory. Lines longer than 1MB fail the scan.
//
// The log file is written by zap's JSON encoder. Format turns each entry
// into a single human-readable line:
//
//	{"level":"info","ts":"2026-10-19T09:30:00.000Z","msg":"catalog refreshed","source":"file"}
//	2026-10-19T09:30:00.000Z INFO  catalog refreshed source=file
//
// Caller and stack trace keys are dropped. Remaining fields are sorted by key
// so output is stable. Lines that are not JSON objects pass through as-is.
package logtail
