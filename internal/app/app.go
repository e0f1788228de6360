// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app runs command line applications which are built from config.
package app

import (
	"context"
	"fmt"

	"github.com/z5labs/x12/config"
)

// App represents the entry point for command specific code.
type App interface {
	Run(context.Context) error
}

// AppFunc is a functional implementation of the App interface.
type AppFunc func(context.Context) error

// Run implements the App interface.
func (f AppFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Builder represents anything which can initialize an App from its config.
type Builder[T any] interface {
	Build(ctx context.Context, cfg T) (App, error)
}

// BuilderFunc is a functional implementation of the Builder interface.
type BuilderFunc[T any] func(context.Context, T) (App, error)

// Build implements the Builder interface.
func (f BuilderFunc[T]) Build(ctx context.Context, cfg T) (App, error) {
	return f(ctx, cfg)
}

// Run reads the config sources, unmarshals them into T, builds the App
// and runs it. Hooks registered with the lifecycle Context during Build
// run after the App returns, even if it panics.
func Run[T any](ctx context.Context, builder Builder[T], srcs ...config.Source) error {
	m, err := config.Read(srcs...)
	if err != nil {
		return ConfigReadError{Cause: err}
	}

	var cfg T
	err = m.Unmarshal(&cfg)
	if err != nil {
		return ConfigUnmarshalError{Cause: err}
	}

	lc := &Lifecycle{}
	ctx = NewContext(ctx, lc)

	a, err := Recover(builder).Build(ctx, cfg)
	if err != nil {
		return BuildError{Cause: errorsJoin(err, lc.PostRun().Run(context.WithoutCancel(ctx)))}
	}

	a = WithLifecycle(RecoverApp(a), lc)
	err = a.Run(ctx)
	if err != nil {
		return RunError{Cause: err}
	}
	return nil
}

// ConfigReadError
type ConfigReadError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigReadError) Error() string {
	return fmt.Sprintf("failed to read config source(s): %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigReadError) Unwrap() error {
	return e.Cause
}

// ConfigUnmarshalError
type ConfigUnmarshalError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigUnmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal read config source(s) into custom type: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigUnmarshalError) Unwrap() error {
	return e.Cause
}

// BuildError
type BuildError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e BuildError) Error() string {
	return fmt.Sprintf("failed to build app: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e BuildError) Unwrap() error {
	return e.Cause
}

// RunError
type RunError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e RunError) Error() string {
	return fmt.Sprintf("failed to run app: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e RunError) Unwrap() error {
	return e.Cause
}
