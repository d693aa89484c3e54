package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID identifies one CLI invocation across all of its log lines.
	FieldSessionID = "session_id"
	// FieldFile is the file being scanned or compared.
	FieldFile = "file"
	// FieldLicense is a license identifier from the store.
	FieldLicense = "license"
	// FieldScore is a similarity score.
	FieldScore = "score"
	// FieldKind is the license text variant: original, header or alternate.
	FieldKind = "kind"
)

type contextKey int

const (
	sessionKey contextKey = iota
	fileKey
	loggerKey
)

// WithSession tags ctx with a session identifier.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// WithFile tags ctx with the file currently being processed.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey, path)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ctx.Value(sessionKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	if path, ok := ctx.Value(fileKey).(string); ok && path != "" {
		fields = append(fields, slog.String(FieldFile, path))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}

// ContextWithLogger stores logger in ctx for retrieval with FromContext.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, decorated with the context
// fields, or a no-op logger when none was stored.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return NewNop()
	}
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)
	return WithContext(ctx, logger)
}
