// Package logging assembles structured slog loggers and formatting helpers used
// across licmatch.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, tees records into a JSON log file when a log directory is
// configured, and exposes context helpers so scan code can tag lines with the
// session and file being processed. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
package logging
