// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TextMapPropagatorInitializer
type TextMapPropagatorInitializer interface {
	InitTextMapPropagator(context.Context) (propagation.TextMapPropagator, error)
}

// TracerProviderInitializer
type TracerProviderInitializer interface {
	InitTracerProvider(context.Context) (trace.TracerProvider, error)
}

// OTelInitializer
type OTelInitializer interface {
	TextMapPropagatorInitializer
	TracerProviderInitializer
}

type shutdowner interface {
	Shutdown(context.Context) error
}

// OTel wraps builder so the global propagator and tracer provider are
// initialized from the config before builder is called. A nil result
// leaves the corresponding global untouched. Providers which can be shut
// down are shut down once the App returns.
func OTel[T OTelInitializer](builder Builder[T]) Builder[T] {
	return BuilderFunc[T](func(ctx context.Context, cfg T) (App, error) {
		tmp, err := cfg.InitTextMapPropagator(ctx)
		if err != nil {
			return nil, err
		}
		if tmp != nil {
			otel.SetTextMapPropagator(tmp)
		}

		tp, err := cfg.InitTracerProvider(ctx)
		if err != nil {
			return nil, err
		}
		if tp != nil {
			otel.SetTracerProvider(tp)
			registerShutdown(ctx, tp)
		}

		return builder.Build(ctx, cfg)
	})
}

func registerShutdown(ctx context.Context, v any) {
	s, ok := v.(shutdowner)
	if !ok {
		return
	}
	lc, ok := FromContext(ctx)
	if !ok {
		return
	}
	lc.OnPostRun(HookFunc(s.Shutdown))
}
