// Package logger defines the logging interface the core packages share,
// keeping them independent of any concrete logging backend.
package logger

// Logger is the logging surface the core packages depend on. The concrete
// implementation lives in infra so the solver and extractor stay free of
// logging backends.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs at debug level with structured fields, used for solve
	// summaries where key/value output beats a format string.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StructuredLogger is the structured subset of Logger, for callers that
// only emit key/value records.
type StructuredLogger interface {
	Debugw(msg string, fields map[string]any)
}
