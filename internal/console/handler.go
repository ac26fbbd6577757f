package console

import (
	"context"
	"log/slog"
	"strings"
)

// Handler is a slog.Handler that captures every record into a Console and
// then forwards it to next, so existing log output is left unchanged.
type Handler struct {
	console *Console
	next    slog.Handler
	level   slog.Leveler

	attrs  string // pre-rendered attrs from WithAttrs
	prefix string // group prefix for later attrs
}

// NewHandler wraps next. Records at or above level are captured; a nil
// level captures whatever next accepts. Forwarding is always left to
// next.Enabled.
func NewHandler(c *Console, next slog.Handler, level slog.Leveler) *Handler {
	return &Handler{console: c, next: next, level: level}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.captures(ctx, l) || h.next.Enabled(ctx, l)
}

func (h *Handler) captures(ctx context.Context, l slog.Level) bool {
	if h.level != nil {
		return l >= h.level.Level()
	}
	return h.next.Enabled(ctx, l)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if h.captures(ctx, r.Level) {
		h.capture(r)
	}

	if !h.next.Enabled(ctx, r.Level) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *Handler) capture(r slog.Record) {
	var sb strings.Builder
	sb.WriteString(r.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	sb.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})

	h.console.capture(sb.String())
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, a := range attrs {
		writeAttr(&sb, h.prefix, a)
	}

	clone := *h
	clone.attrs = sb.String()
	clone.next = h.next.WithAttrs(attrs)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	clone.next = h.next.WithGroup(name)
	return &clone
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, groupPrefix, ga)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(prefix)
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	sb.WriteString(a.Value.String())
}
