// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package queue

import (
	"log/slog"

	"github.com/z5labs/x12/pkg/noop"
	"github.com/z5labs/x12/pkg/otelslog"
)

type options struct {
	logHandler slog.Handler
	buffer     int
}

func newOptions(opts ...Option) *options {
	o := &options{
		logHandler: noop.LogHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a runtime.
type Option func(*options)

// LogHandler
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = otelslog.NewHandler(h)
	}
}

// Buffer sets how many consumed items a PipeRuntime may hold while
// the processor is busy. The default of zero means the consumer hands
// each item directly to the processor. It has no effect on Sequential.
func Buffer(n uint) Option {
	return func(o *options) {
		o.buffer = int(n)
	}
}
