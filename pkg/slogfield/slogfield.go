// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield provides the slog.Attr constructors shared by the decoder,
// the queue runtimes and the CLI so attribute keys stay consistent.
package slogfield

import (
	"log/slog"
	"time"
)

// Any returns an slog.Attr for the supplied value.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Bool returns an slog.Attr for a bool.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Duration returns an slog.Attr for a time.Duration.
func Duration(key string, d time.Duration) slog.Attr {
	return slog.Duration(key, d)
}

// Error returns an slog.Attr for a error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an slog.Attr for a int.
func Int(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Uint64 returns an slog.Attr for a uint64.
func Uint64(key string, n uint64) slog.Attr {
	return slog.Uint64(key, n)
}

// SegmentKey is the attribute key under which raw segment text is logged.
// Raw segments may carry protected health information, see maskslog.
const SegmentKey = "segment"

// Segment returns an slog.Attr holding raw segment text.
func Segment(raw string) slog.Attr {
	return slog.String(SegmentKey, raw)
}

// Envelope returns an slog.Attr for an interchange ordinal.
func Envelope(n int) slog.Attr {
	return slog.Int("envelope", n)
}
