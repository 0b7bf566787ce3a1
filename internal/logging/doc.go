// Package logging assembles structured slog loggers used across ladle.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// standardizes the field keys components attach to log lines. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so all components emit
// lines with the same shape.
package logging
