// Package logging assembles structured slog loggers and formatting helpers used
// across mediumcheck.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes context helpers so every lookup can be tagged with a correlation
// ID from the moment text arrives until the library answers. A no-op logger is
// provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// records with the same keys as the rest of the system.
package logging
