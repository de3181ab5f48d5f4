package core

import (
	"context"
	"log/slog"
)

// Slog wraps a Core as a slog.LogValuer so that terms are only rendered
// when a record is actually emitted.
func Slog(c Core) slog.LogValuer {
	return coreLogValuer{c}
}

type coreLogValuer struct{ Core }

func (l coreLogValuer) LogValue() slog.Value {
	return slog.StringValue(String(l.Core))
}

// Handler wraps underlying so that any attribute holding a Core is
// rendered lazily through Slog.
func Handler(underlying slog.Handler) slog.Handler {
	return &coreLogHandler{underlying: underlying}
}

type coreLogHandler struct {
	underlying slog.Handler
}

func (l *coreLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *coreLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(wrapAttr(attr))
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *coreLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		wrapped[i] = wrapAttr(attr)
	}
	return Handler(l.underlying.WithAttrs(wrapped))
}

func (l *coreLogHandler) WithGroup(name string) slog.Handler {
	return Handler(l.underlying.WithGroup(name))
}

func wrapAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindAny {
		if asCore, isCore := attr.Value.Any().(Core); isCore {
			return slog.Any(attr.Key, Slog(asCore))
		}
	}
	return attr
}
