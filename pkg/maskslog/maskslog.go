// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides a slog.Handler which masks sensitive attribute
// values, e.g. raw X12 segments which may carry protected health information.
package maskslog

import (
	"context"
	"fmt"
	"log/slog"
)

type options struct {
	maskers map[string]func(slog.Attr) slog.Attr
}

// Option helps configure the Handler.
type Option func(*options)

// Attr registers a function for masking a slog.Attr given its key.
func Attr(key string, f func(slog.Attr) slog.Attr) Option {
	return func(o *options) {
		o.maskers[key] = f
	}
}

// AnonymousStringAttr is a helper function for converting any slog.Attr
// into the anonymized string, "****". It completely ignores the given
// slog.Attr value type and always return a string value.
func AnonymousStringAttr(a slog.Attr) slog.Attr {
	return slog.String(a.Key, "****")
}

// SegmentIDAttr keeps only the leading segment identifier of a raw X12
// segment, e.g. "NM1*QC*1*DOE*JOHN" becomes "NM1 [14 bytes masked]".
func SegmentIDAttr(a slog.Attr) slog.Attr {
	raw := a.Value.String()
	n := 0
	for n < len(raw) && n < 3 && isIDByte(raw[n]) {
		n++
	}
	if n == len(raw) {
		return slog.String(a.Key, raw)
	}
	return slog.String(a.Key, fmt.Sprintf("%s [%d bytes masked]", raw[:n], len(raw)-n))
}

func isIDByte(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// Handler is an slog.Handler which masks attributes before passing
// records on to the wrapped slog.Handler.
type Handler struct {
	slog    slog.Handler
	maskers map[string]func(slog.Attr) slog.Attr
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		maskers: make(map[string]func(slog.Attr) slog.Attr),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Handler{
		slog:    h,
		maskers: o.maskers,
	}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if len(h.maskers) == 0 {
		return h.slog.Handle(ctx, record)
	}

	nr := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.mask(a))
		return true
	})
	return h.slog.Handle(ctx, nr)
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]any, len(group))
		for i, ga := range group {
			masked[i] = h.mask(ga)
		}
		return slog.Group(a.Key, masked...)
	}

	f, ok := h.maskers[a.Key]
	if !ok {
		return a
	}
	return f(a)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask(a)
	}
	return &Handler{
		slog:    h.slog.WithAttrs(masked),
		maskers: h.maskers,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		slog:    h.slog.WithGroup(name),
		maskers: h.maskers,
	}
}
