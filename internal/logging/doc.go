// Package logging assembles the structured slog loggers used across shelve.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so engine code automatically tags
// log lines with the run ID. Per-run JSON log files tee off the console
// logger through TeeLogger, and a no-op logger backs tests and wiring code
// that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits lines with the same shape.
package logging
