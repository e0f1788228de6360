// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package x12

import "bytes"

// DefaultFallbackWindow is the number of pending bytes searched for the
// segment delimiter before line breaks are treated as segment boundaries.
const DefaultFallbackWindow = 1024

type accumulatorOptions struct {
	window int
}

// AccumulatorOption configures an Accumulator.
type AccumulatorOption func(*accumulatorOptions)

// FallbackWindow sets how many pending bytes must be buffered without a
// segment delimiter before a line break is accepted as a segment boundary.
// Values smaller than HeaderLen are ignored.
func FallbackWindow(n int) AccumulatorOption {
	return func(ao *accumulatorOptions) {
		if n < HeaderLen {
			return
		}
		ao.window = n
	}
}

// Accumulator buffers unterminated input and cuts it into raw segments
// using the active segment delimiter. Where a segment is cut depends only
// on the input itself and never on how it was chunked.
type Accumulator struct {
	buf    []byte
	delim  byte
	set    bool
	window int
}

// NewAccumulator returns an empty Accumulator without an active delimiter.
func NewAccumulator(opts ...AccumulatorOption) *Accumulator {
	ao := &accumulatorOptions{
		window: DefaultFallbackWindow,
	}
	for _, opt := range opts {
		opt(ao)
	}
	return &Accumulator{window: ao.window}
}

// Write implements the [io.Writer] interface. It never fails.
func (a *Accumulator) Write(p []byte) (int, error) {
	a.buf = append(a.buf, p...)
	return len(p), nil
}

// SetDelimiter changes the segment delimiter used for every following cut.
func (a *Accumulator) SetDelimiter(b byte) {
	a.delim = b
	a.set = true
}

// Delimiter returns the active segment delimiter, if one has been set.
func (a *Accumulator) Delimiter() (byte, bool) {
	return a.delim, a.set
}

// Buffered returns the number of pending bytes.
func (a *Accumulator) Buffered() int {
	return len(a.buf)
}

// Reset releases the buffer and forgets the active delimiter.
func (a *Accumulator) Reset() {
	a.buf = nil
	a.delim = 0
	a.set = false
}

// Feed appends chunk and returns every raw segment completed by it.
func (a *Accumulator) Feed(chunk []byte) []string {
	a.Write(chunk)

	var raws []string
	for {
		raw, _, ok := a.next(false)
		if !ok {
			return raws
		}
		raws = append(raws, raw)
	}
}

// Flush returns every remaining raw segment, including trailing text which
// was never terminated, and clears all buffered input.
func (a *Accumulator) Flush() []string {
	var raws []string
	for {
		raw, _, ok := a.next(true)
		if !ok {
			break
		}
		raws = append(raws, raw)
	}
	a.buf = nil
	return raws
}

func (a *Accumulator) pending() []byte {
	return a.buf
}

func (a *Accumulator) discard(n int) {
	a.buf = a.buf[n:]
}

// take consumes exactly n bytes and returns them stripped.
func (a *Accumulator) take(n int) string {
	raw := Strip(string(a.buf[:n]), a.delim)
	a.discard(n)
	return raw
}

// trimNoise drops leading delimiters and line breaks.
func (a *Accumulator) trimNoise() {
	i := 0
	for i < len(a.buf) && isNoise(a.buf[i], a.delim) {
		i++
	}
	a.discard(i)
}

// next cuts the next non-empty raw segment from the buffer. terminated
// is false only when final is set and the remainder had no boundary.
func (a *Accumulator) next(final bool) (raw string, terminated bool, ok bool) {
	for len(a.buf) > 0 {
		n, skip, found := a.boundary(final)
		if !found {
			return "", false, false
		}
		raw = Strip(string(a.buf[:n]), a.delim)
		a.discard(n + skip)
		if raw == "" {
			continue
		}
		return raw, skip > 0, true
	}
	return "", false, false
}

// boundary locates the end of the next candidate segment. skip is the
// width of the boundary itself.
func (a *Accumulator) boundary(final bool) (n, skip int, ok bool) {
	window := a.buf
	if len(window) > a.window {
		window = window[:a.window]
	}
	if a.set {
		if i := bytes.IndexByte(window, a.delim); i >= 0 {
			return i, 1, true
		}
	}
	if len(a.buf) < a.window && !final {
		return 0, 0, false
	}

	if i := bytes.IndexByte(window, '\n'); i >= 0 {
		return i, 1, true
	}
	if a.set {
		if i := bytes.IndexByte(a.buf, a.delim); i >= 0 {
			return i, 1, true
		}
	}
	if !final {
		return 0, 0, false
	}

	if i := bytes.IndexByte(a.buf, '\n'); i >= 0 {
		return i, 1, true
	}
	return len(a.buf), 0, true
}
