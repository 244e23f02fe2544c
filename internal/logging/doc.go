// Package logging assembles structured slog loggers and formatting helpers
// used across whispersrt.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so every line of a run carries the
// same run ID. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
