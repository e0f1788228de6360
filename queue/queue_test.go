// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type runtime interface {
	Run(context.Context) error
}

func counter(n int) ConsumerFunc[int] {
	var i int
	return func(ctx context.Context) (int, error) {
		if i == n {
			return 0, ErrEndOfItems
		}
		i += 1
		return i, nil
	}
}

func TestRuntimes(t *testing.T) {
	runtimes := map[string]func(Consumer[int], Processor[int]) runtime{
		"sequential": func(c Consumer[int], p Processor[int]) runtime {
			return Sequential[int](c, p)
		},
		"pipe": func(c Consumer[int], p Processor[int]) runtime {
			return Pipe[int](c, p)
		},
		"buffered pipe": func(c Consumer[int], p Processor[int]) runtime {
			return Pipe[int](c, p, Buffer(3))
		},
		"deeply buffered pipe": func(c Consumer[int], p Processor[int]) runtime {
			return Pipe[int](c, p, Buffer(64))
		},
	}

	for name, newRuntime := range runtimes {
		t.Run(name, func(t *testing.T) {
			t.Run("will stop", func(t *testing.T) {
				t.Run("if the context is cancelled before consuming", func(t *testing.T) {
					c := ConsumerFunc[int](func(ctx context.Context) (int, error) {
						return 0, nil
					})
					p := ProcessorFunc[int](func(ctx context.Context, i int) error {
						return nil
					})

					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					cancel()

					err := newRuntime(c, p).Run(ctx)
					if !assert.Nil(t, err) {
						return
					}
				})

				t.Run("if the consumer returns ErrEndOfItems", func(t *testing.T) {
					var got []int
					p := ProcessorFunc[int](func(ctx context.Context, i int) error {
						got = append(got, i)
						return nil
					})

					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					err := newRuntime(counter(5), p).Run(ctx)
					if !assert.Nil(t, err) {
						return
					}
					if !assert.Equal(t, []int{1, 2, 3, 4, 5}, got) {
						return
					}
				})

				t.Run("if the consumer fails", func(t *testing.T) {
					consumeErr := errors.New("failed to consume")
					c := ConsumerFunc[int](func(ctx context.Context) (int, error) {
						return 0, consumeErr
					})

					var called atomic.Bool
					p := ProcessorFunc[int](func(ctx context.Context, i int) error {
						called.Store(true)
						return nil
					})

					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					err := newRuntime(c, p).Run(ctx)

					var cerr ConsumeError
					if !assert.ErrorAs(t, err, &cerr) {
						return
					}
					if !assert.ErrorIs(t, err, consumeErr) {
						return
					}
					if !assert.False(t, called.Load()) {
						return
					}
				})

				t.Run("if the consumer panics", func(t *testing.T) {
					c := ConsumerFunc[int](func(ctx context.Context) (int, error) {
						panic("panic while consuming")
					})
					p := ProcessorFunc[int](func(ctx context.Context, i int) error {
						return nil
					})

					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					err := newRuntime(c, p).Run(ctx)

					var cerr ConsumeError
					if !assert.ErrorAs(t, err, &cerr) {
						return
					}
				})
			})

			t.Run("will process every item consumed before the consumer fails", func(t *testing.T) {
				consumeErr := errors.New("failed to consume")
				next := counter(20)
				c := ConsumerFunc[int](func(ctx context.Context) (int, error) {
					i, err := next(ctx)
					if errors.Is(err, ErrEndOfItems) {
						return 0, consumeErr
					}
					return i, err
				})

				var processed atomic.Int64
				p := ProcessorFunc[int](func(ctx context.Context, i int) error {
					time.Sleep(time.Millisecond)
					processed.Add(1)
					return nil
				})

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				err := newRuntime(c, p).Run(ctx)
				if !assert.ErrorIs(t, err, consumeErr) {
					return
				}
				if !assert.Equal(t, int64(20), processed.Load()) {
					return
				}
			})

			t.Run("will continue", func(t *testing.T) {
				t.Run("if it fails to process", func(t *testing.T) {
					var count atomic.Uint64
					p := ProcessorFunc[int](func(ctx context.Context, i int) error {
						count.Add(1)
						return errors.New("failed to process")
					})

					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					err := newRuntime(counter(5), p).Run(ctx)
					if !assert.Nil(t, err) {
						return
					}
					if !assert.Equal(t, uint64(5), count.Load()) {
						return
					}
				})

				t.Run("if the processor panics", func(t *testing.T) {
					var count atomic.Uint64
					p := ProcessorFunc[int](func(ctx context.Context, i int) error {
						count.Add(1)
						panic(errors.New("panic while processing"))
					})

					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					err := newRuntime(counter(3), p).Run(ctx)
					if !assert.Nil(t, err) {
						return
					}
					if !assert.Equal(t, uint64(3), count.Load()) {
						return
					}
				})
			})
		})
	}
}

func TestPipeRuntime_Run(t *testing.T) {
	t.Run("will not consume ahead of the processor", func(t *testing.T) {
		t.Run("more than the configured buffer", func(t *testing.T) {
			var consumed atomic.Int64
			next := counter(10)
			c := ConsumerFunc[int](func(ctx context.Context) (int, error) {
				i, err := next(ctx)
				if err == nil {
					consumed.Add(1)
				}
				return i, err
			})

			release := make(chan struct{})
			var got []int
			p := ProcessorFunc[int](func(ctx context.Context, i int) error {
				if i == 1 {
					<-release
				}
				got = append(got, i)
				return nil
			})

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			errCh := make(chan error, 1)
			go func() {
				errCh <- Pipe[int](c, p, Buffer(2)).Run(ctx)
			}()

			time.Sleep(50 * time.Millisecond)

			// item 1 is being processed, 2 and 3 are buffered and
			// item 4 is waiting to be sent
			if !assert.LessOrEqual(t, consumed.Load(), int64(4)) {
				close(release)
				return
			}
			close(release)

			err := <-errCh
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got) {
				return
			}
		})
	})
}
