// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package x12

import (
	"bytes"
	"errors"
	"io"
	"log/slog"

	"github.com/z5labs/x12/pkg/noop"
	"github.com/z5labs/x12/pkg/otelslog"
	"github.com/z5labs/x12/pkg/slogfield"
)

type decoderOptions struct {
	logHandler slog.Handler
	accOpts    []AccumulatorOption
}

// DecoderOption configures a Decoder.
type DecoderOption func(*decoderOptions)

// LogHandler configures the underlying slog.Handler used by the Decoder.
func LogHandler(h slog.Handler) DecoderOption {
	return func(do *decoderOptions) {
		do.logHandler = otelslog.NewHandler(h)
	}
}

// AccumulatorOptions configures the Accumulator used by the Decoder.
func AccumulatorOptions(opts ...AccumulatorOption) DecoderOption {
	return func(do *decoderOptions) {
		do.accOpts = append(do.accOpts, opts...)
	}
}

// Decoder turns chunks of X12 input into Segments. It tracks interchange
// envelopes and switches delimiters whenever a new ISA header is seen.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	log *slog.Logger
	acc *Accumulator

	delims     Delimiters
	inEnvelope bool
	envelope   int
	index      int

	// set while a line preceding the first header is being dropped
	skipping bool

	closed bool
	err    error
}

// NewDecoder returns a Decoder waiting for its first interchange header.
func NewDecoder(opts ...DecoderOption) *Decoder {
	do := &decoderOptions{
		logHandler: noop.LogHandler{},
	}
	for _, opt := range opts {
		opt(do)
	}
	return &Decoder{
		log: slog.New(do.logHandler),
		acc: NewAccumulator(do.accOpts...),
	}
}

// Delimiters returns the delimiters of the current interchange. The
// boolean is false until the first header has been decoded.
func (d *Decoder) Delimiters() (Delimiters, bool) {
	return d.delims, d.inEnvelope
}

// Write implements the [io.Writer] interface. Input is only buffered,
// no decoding happens until Next is called.
func (d *Decoder) Write(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.closed {
		return 0, ErrClosed
	}
	return d.acc.Write(p)
}

// Close marks the end of input. Next will then drain whatever is still
// buffered, including an unterminated trailing segment.
func (d *Decoder) Close() error {
	d.closed = true
	return nil
}

// Reset releases all buffered input and returns the Decoder to its
// initial state.
func (d *Decoder) Reset() {
	d.acc.Reset()
	d.delims = Delimiters{}
	d.inEnvelope = false
	d.envelope = 0
	d.index = 0
	d.skipping = false
	d.closed = false
	d.err = nil
}

// Next decodes the next buffered segment. It returns ErrNeedMoreInput if
// no complete segment is buffered yet and io.EOF once the Decoder has
// been closed and fully drained.
func (d *Decoder) Next() (Segment, error) {
	if d.err != nil {
		return Segment{}, d.err
	}

	seg, ok, err := d.advance()
	if err != nil {
		d.fail(err)
		return Segment{}, err
	}
	if ok {
		return seg, nil
	}
	if !d.closed {
		return Segment{}, ErrNeedMoreInput
	}

	d.acc.Reset()
	if d.envelope == 0 {
		d.fail(ErrNoEnvelopeDetected)
		return Segment{}, ErrNoEnvelopeDetected
	}
	return Segment{}, io.EOF
}

// Feed buffers chunk and returns every segment it completed.
func (d *Decoder) Feed(chunk []byte) ([]Segment, error) {
	_, err := d.Write(chunk)
	if err != nil {
		return nil, err
	}
	return d.drain(ErrNeedMoreInput)
}

// Flush closes the Decoder and returns every remaining segment.
func (d *Decoder) Flush() ([]Segment, error) {
	d.Close()
	return d.drain(io.EOF)
}

func (d *Decoder) drain(stop error) ([]Segment, error) {
	var segs []Segment
	for {
		seg, err := d.Next()
		if errors.Is(err, stop) {
			return segs, nil
		}
		if err != nil {
			return segs, err
		}
		segs = append(segs, seg)
	}
}

func (d *Decoder) fail(err error) {
	d.err = err
	d.acc.Reset()
	d.log.Error("stopped decoding", slogfield.Error(err))
}

var headerID = []byte(HeaderID)

func (d *Decoder) advance() (Segment, bool, error) {
	for {
		if d.skipping && !d.skipLine() {
			return Segment{}, false, nil
		}

		d.acc.trimNoise()
		pending := d.acc.pending()
		if len(pending) == 0 {
			return Segment{}, false, nil
		}

		if bytes.HasPrefix(pending, headerID) {
			return d.header(pending)
		}
		if len(pending) < len(headerID) && bytes.HasPrefix(headerID, pending) && !d.closed {
			return Segment{}, false, nil
		}

		if !d.inEnvelope {
			d.skipping = true
			continue
		}

		raw, terminated, ok := d.acc.next(d.closed)
		if !ok {
			return Segment{}, false, nil
		}
		if !terminated {
			d.log.Warn(
				"emitting unterminated trailing segment",
				slogfield.Error(ErrUnterminatedSegment),
				slogfield.Segment(raw),
			)
		}

		d.index++
		seg := Decompose(raw, d.delims)
		seg.Envelope = d.envelope
		seg.Index = d.index
		return seg, true, nil
	}
}

// header starts a new envelope from the ISA segment at the front of pending.
func (d *Decoder) header(pending []byte) (Segment, bool, error) {
	if len(pending) < HeaderLen && !d.closed {
		return Segment{}, false, nil
	}

	delims, err := Detect(string(pending[:min(len(pending), HeaderLen)]))
	if err != nil {
		return Segment{}, false, err
	}

	d.delims = delims
	d.inEnvelope = true
	d.envelope++
	d.index = 0
	d.acc.SetDelimiter(delims.Segment)
	d.log.Debug(
		"detected interchange header",
		slogfield.Envelope(d.envelope),
		slogfield.Any("delimiters", delims),
	)

	seg := Decompose(d.acc.take(HeaderLen), delims)
	seg.Envelope = d.envelope
	return seg, true, nil
}

// skipLine drops input preceding the first header up to and including
// the next line break. Only a line starting with ISA can begin an
// interchange, so an ISA inside a cover line is never mistaken for one.
// It reports whether the end of the line was reached.
func (d *Decoder) skipLine() bool {
	pending := d.acc.pending()
	n := bytes.IndexAny(pending, "\r\n") + 1
	if n == 0 {
		n = len(pending)
	}
	if n > 0 {
		d.log.Debug("dropping input preceding interchange header", slogfield.Int("bytes", n))
		d.acc.discard(n)
	}

	d.skipping = n == 0 || pending[n-1] != '\r' && pending[n-1] != '\n'
	return !d.skipping
}
