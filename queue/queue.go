// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package queue provides runtimes which deliver consumed items to a
// processor strictly in the order they were consumed.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/z5labs/x12/internal/try"
	"github.com/z5labs/x12/pkg/slogfield"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
)

// ErrEndOfItems should be returned by a Consumer once it has no more items.
var ErrEndOfItems = errors.New("queue: end of items")

// Consumer
type Consumer[T any] interface {
	Consume(context.Context) (T, error)
}

// ConsumerFunc is a functional implementation of the Consumer interface.
type ConsumerFunc[T any] func(context.Context) (T, error)

// Consume implements the Consumer interface.
func (f ConsumerFunc[T]) Consume(ctx context.Context) (T, error) {
	return f(ctx)
}

// Processor
type Processor[T any] interface {
	Process(context.Context, T) error
}

// ProcessorFunc is a functional implementation of the Processor interface.
type ProcessorFunc[T any] func(context.Context, T) error

// Process implements the Processor interface.
func (f ProcessorFunc[T]) Process(ctx context.Context, t T) error {
	return f(ctx, t)
}

// ConsumeError is returned by a runtime when its Consumer fails. Consume
// failures are fatal since item order can no longer be guaranteed.
type ConsumeError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConsumeError) Error() string {
	return fmt.Sprintf("failed to consume: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConsumeError) Unwrap() error {
	return e.Cause
}

// SequentialRuntime consumes and processes one item at a time.
type SequentialRuntime[T any] struct {
	log *slog.Logger
	c   Consumer[T]
	p   Processor[T]
	m   *instruments
}

// Sequential
func Sequential[T any](c Consumer[T], p Processor[T], opts ...Option) *SequentialRuntime[T] {
	o := newOptions(opts...)
	return &SequentialRuntime[T]{
		log: slog.New(o.logHandler),
		c:   c,
		p:   p,
		m:   newInstruments(),
	}
}

// Run consumes items until the Consumer returns ErrEndOfItems, the
// Consumer fails or the context is cancelled. Cancellation is not an error.
func (rt *SequentialRuntime[T]) Run(ctx context.Context) error {
	tracer := otel.Tracer("queue")
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		spanCtx, span := tracer.Start(ctx, "SequentialRuntime.Run")
		item, err := consume(spanCtx, rt.c)
		if errors.Is(err, ErrEndOfItems) {
			span.End()
			return nil
		}
		if err != nil {
			span.End()
			if ctx.Err() != nil {
				return nil
			}
			return ConsumeError{Cause: err}
		}

		err = process(spanCtx, rt.p, item)
		rt.m.record(spanCtx, err)
		if err != nil {
			rt.log.ErrorContext(spanCtx, "failed to process", slogfield.Error(err))
		}
		span.End()
	}
}

// PipeRuntime consumes items in one goroutine and processes them in another.
// The two are joined by a channel so the Consumer blocks whenever the
// Processor is not ready to accept the next item.
type PipeRuntime[T any] struct {
	log *slog.Logger
	c   Consumer[T]
	p   Processor[T]
	m   *instruments

	propagator propagation.TextMapPropagator
	buffer     int
}

// Pipe
func Pipe[T any](c Consumer[T], p Processor[T], opts ...Option) *PipeRuntime[T] {
	o := newOptions(opts...)
	return &PipeRuntime[T]{
		log:        slog.New(o.logHandler),
		c:          c,
		p:          p,
		m:          newInstruments(),
		propagator: propagation.TraceContext{},
		buffer:     o.buffer,
	}
}

// Run implements the same stopping semantics as SequentialRuntime.Run.
// Items already handed to the pipe are still processed after the
// Consumer stops, even when it stopped with an error. Only cancelling
// ctx abandons them.
func (rt *PipeRuntime[T]) Run(ctx context.Context) error {
	itemCh := make(chan *item[T], rt.buffer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(rt.consumeItems(gctx, itemCh))
	g.Go(rt.processItems(ctx, itemCh))
	return g.Wait()
}

type item[T any] struct {
	value T

	// the otel context needs to be propagated between goroutines
	carrier propagation.MapCarrier
}

func (rt *PipeRuntime[T]) consumeItems(ctx context.Context, itemCh chan<- *item[T]) func() error {
	return func() error {
		defer close(itemCh)

		tracer := otel.Tracer("queue")
		for {
			spanCtx, span := tracer.Start(ctx, "PipeRuntime.consumeItems")

			select {
			case <-spanCtx.Done():
				span.End()
				return nil
			default:
			}

			v, err := consume(spanCtx, rt.c)
			if errors.Is(err, ErrEndOfItems) {
				span.End()
				return nil
			}
			if err != nil {
				span.End()
				if ctx.Err() != nil {
					return nil
				}
				return ConsumeError{Cause: err}
			}

			i := &item[T]{
				value:   v,
				carrier: make(propagation.MapCarrier),
			}
			rt.propagator.Inject(spanCtx, i.carrier)

			select {
			case <-spanCtx.Done():
				span.End()
				return nil
			case itemCh <- i:
				span.End()
			}
		}
	}
}

func (rt *PipeRuntime[T]) processItems(ctx context.Context, itemCh <-chan *item[T]) func() error {
	return func() error {
		for {
			var i *item[T]
			select {
			case <-ctx.Done():
				return nil
			case i = <-itemCh:
			}
			if i == nil {
				rt.log.DebugContext(ctx, "stopping item processing since item channel was closed")
				return nil
			}

			propCtx := rt.propagator.Extract(ctx, i.carrier)
			spanCtx, span := otel.Tracer("queue").Start(propCtx, "PipeRuntime.processItem")
			err := process(spanCtx, rt.p, i.value)
			rt.m.record(spanCtx, err)
			if err != nil {
				rt.log.ErrorContext(spanCtx, "failed to process", slogfield.Error(err))
			}
			span.End()
		}
	}
}

func consume[T any](ctx context.Context, c Consumer[T]) (v T, err error) {
	spanCtx, span := otel.Tracer("queue").Start(ctx, "consume")
	defer span.End()
	defer try.Recover(&err)

	return c.Consume(spanCtx)
}

func process[T any](ctx context.Context, p Processor[T], value T) (err error) {
	spanCtx, span := otel.Tracer("queue").Start(ctx, "process")
	defer span.End()
	defer try.Recover(&err)

	return p.Process(spanCtx, value)
}

type instruments struct {
	processed metric.Int64Counter
}

func newInstruments() *instruments {
	processed, err := otel.Meter("queue").Int64Counter(
		"queue.items.processed",
		metric.WithDescription("Number of items handed to the processor."),
	)
	if err != nil {
		otel.Handle(err)
	}
	return &instruments{processed: processed}
}

func (m *instruments) record(ctx context.Context, err error) {
	if m.processed == nil {
		return
	}
	m.processed.Add(ctx, 1, metric.WithAttributes(attribute.Bool("failed", err != nil)))
}
