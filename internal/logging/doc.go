// Package logging constructs the slog loggers used across the compiler.
//
// It keeps the wiring in one place: level parsing, console vs JSON handler
// selection, and a nop logger for components that are handed no logger at
// all. Attr re-exports exist so call sites do not need to import log/slog
// alongside this package.
package logging
