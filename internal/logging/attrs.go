package logging

import (
	"context"
	"log/slog"
)

// Error returns the standard attribute for an error value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attributes to the variadic form slog methods accept.
func Args(attrs ...slog.Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// License returns the attribute naming a store license.
func License(name string) slog.Attr { return slog.String(FieldLicense, name) }

// Kind returns the attribute naming a license text variant.
func Kind(kind string) slog.Attr { return slog.String(FieldKind, kind) }

// Score returns the attribute for a similarity score.
func Score(score float64) slog.Attr { return slog.Float64(FieldScore, score) }

// Lines groups a half-open line range as lines.start and lines.end.
func Lines(start, end int) slog.Attr {
	return slog.Group("lines", slog.Int("start", start), slog.Int("end", end))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
