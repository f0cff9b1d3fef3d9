package core

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
)

// nopHandler discards every record. Enabled is false so callers skip
// formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by the driver and the run loop. By
// default nothing is logged; nil restores that.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func Logger() *slog.Logger { return loggerPtr.Load() }

// liveHandler resolves the current logger on every record, so components
// built before a SetLogger call still log through the new one.
type liveHandler struct {
	with []func(slog.Handler) slog.Handler
}

func (h liveHandler) handler() slog.Handler {
	out := Logger().Handler()
	for _, w := range h.with {
		out = w(out)
	}
	return out
}

func (h liveHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler().Enabled(ctx, l)
}

func (h liveHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler().Handle(ctx, r)
}

func (h liveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return liveHandler{with: append(slices.Clip(h.with), func(x slog.Handler) slog.Handler { return x.WithAttrs(attrs) })}
}

func (h liveHandler) WithGroup(name string) slog.Handler {
	return liveHandler{with: append(slices.Clip(h.with), func(x slog.Handler) slog.Handler { return x.WithGroup(name) })}
}

// liveLogger is handed to long-lived components instead of Logger().
func liveLogger() *slog.Logger { return slog.New(liveHandler{}) }
