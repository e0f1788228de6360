// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"context"
	"os"
	"os/signal"

	"github.com/z5labs/x12/internal/try"
)

// Recover will wrap the given Builder with panic recovery.
func Recover[T any](builder Builder[T]) Builder[T] {
	return BuilderFunc[T](func(ctx context.Context, cfg T) (_ App, err error) {
		defer try.Recover(&err)

		return builder.Build(ctx, cfg)
	})
}

// RecoverApp will wrap the given App with panic recovery. The
// recovered value is returned as a [try.PanicError].
func RecoverApp(a App) App {
	return AppFunc(func(ctx context.Context) (err error) {
		defer try.Recover(&err)

		return a.Run(ctx)
	})
}

// WithSignalNotifications wraps a given App in an implementation
// that cancels the [context.Context] that's passed to a.Run if an [os.Signal]
// is received by the running process.
func WithSignalNotifications(a App, signals ...os.Signal) App {
	return AppFunc(func(ctx context.Context) error {
		sigCtx, cancel := signal.NotifyContext(ctx, signals...)
		defer cancel()

		return a.Run(sigCtx)
	})
}

// WithLifecycle wraps a given App in an implementation that runs the
// post run hooks of lc once a.Run returns. The hooks still run if ctx
// has been cancelled.
func WithLifecycle(a App, lc *Lifecycle) App {
	return AppFunc(func(ctx context.Context) (err error) {
		defer func() {
			err = errorsJoin(err, lc.PostRun().Run(context.WithoutCancel(ctx)))
		}()

		return a.Run(ctx)
	})
}
