// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"context"
	"errors"
)

// Hook represents functionality that needs to be performed
// at a specific "time" relative to the execution of App.Run.
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a func variant of the Hook interface.
type HookFunc func(context.Context) error

// Run implements the Hook interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type multiHook []Hook

func (mh multiHook) Run(ctx context.Context) error {
	errs := make([]error, 0, len(mh))
	for _, h := range mh {
		err := h.Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errorsJoin(errs...)
}

// MultiHook returns a Hook that's the logical concatenation
// of the provided Hooks. They're applied sequentially and every
// Hook runs regardless of whether a previous one failed.
func MultiHook(hooks ...Hook) Hook {
	return multiHook(hooks)
}

// Lifecycle allows Builders to set actions which should be performed
// relative to the App.Run execution.
type Lifecycle struct {
	postRuns multiHook
}

// PostRun returns the Hook which is meant to be executed after
// an App Run method returns.
func (lc *Lifecycle) PostRun() Hook {
	return lc.postRuns
}

// OnPostRun registers the given Hook to be executed after an App
// Run method returns. Hooks run in the order they were registered.
func (lc *Lifecycle) OnPostRun(hook Hook) {
	lc.postRuns = append(lc.postRuns, hook)
}

type key struct{}

var contextKey = &key{}

// NewContext returns a new [context.Context] containing the Lifecycle.
func NewContext(parent context.Context, lc *Lifecycle) context.Context {
	return context.WithValue(parent, contextKey, lc)
}

// FromContext tries to extract a Lifecycle from the given [context.Context].
func FromContext(ctx context.Context) (*Lifecycle, bool) {
	lc, ok := ctx.Value(contextKey).(*Lifecycle)
	return lc, ok
}

func errorsJoin(errs ...error) error {
	var n int
	var last error
	for _, err := range errs {
		if err != nil {
			n++
			last = err
		}
	}
	switch n {
	case 0:
		return nil
	case 1:
		return last
	default:
		return errors.Join(errs...)
	}
}
