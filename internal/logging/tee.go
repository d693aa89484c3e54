package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler sends every record to each sink whose own level admits it. The
// console sink follows --log-level while the log file usually keeps debug
// records, so sinks are filtered one by one.
type teeHandler struct {
	sinks []slog.Handler
}

// TeeHandler duplicates records across handlers. Nil handlers are dropped;
// with a single handler left it is returned as is.
func TeeHandler(handlers ...slog.Handler) slog.Handler {
	var sinks []slog.Handler
	for _, h := range handlers {
		if h != nil {
			sinks = append(sinks, h)
		}
	}
	switch len(sinks) {
	case 0:
		return NoopHandler{}
	case 1:
		return sinks[0]
	}
	return &teeHandler{sinks: sinks}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range t.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, sink := range t.sinks {
		if !sink.Enabled(ctx, record.Level) {
			continue
		}
		// Handlers may retain the record's attrs, so each gets its own copy.
		if err := sink.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t *teeHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	sinks := make([]slog.Handler, 0, len(t.sinks))
	for _, sink := range t.sinks {
		sinks = append(sinks, fn(sink))
	}
	return &teeHandler{sinks: sinks}
}
