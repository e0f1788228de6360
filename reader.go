// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package x12

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/z5labs/x12/internal/try"
)

// DefaultChunkSize is the number of bytes a Reader requests from its
// source at a time.
const DefaultChunkSize = 4096

type readerOptions struct {
	chunkSize int
	decOpts   []DecoderOption
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerOptions)

// ChunkSize sets the number of bytes read from the source at a time.
func ChunkSize(n int) ReaderOption {
	return func(ro *readerOptions) {
		if n <= 0 {
			return
		}
		ro.chunkSize = n
	}
}

// DecoderOptions configures the Decoder used by the Reader.
func DecoderOptions(opts ...DecoderOption) ReaderOption {
	return func(ro *readerOptions) {
		ro.decOpts = append(ro.decOpts, opts...)
	}
}

// Reader decodes Segments from an io.Reader. Input is only read from
// the source once all previously buffered segments have been returned.
type Reader struct {
	src   io.Reader
	dec   *Decoder
	chunk []byte
}

// NewReader returns a Reader decoding the given source.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	ro := &readerOptions{
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(ro)
	}
	return &Reader{
		src:   r,
		dec:   NewDecoder(ro.decOpts...),
		chunk: make([]byte, ro.chunkSize),
	}
}

// Delimiters returns the delimiters of the interchange currently being decoded.
func (r *Reader) Delimiters() (Delimiters, bool) {
	return r.dec.Delimiters()
}

// Read returns the next Segment. It returns io.EOF once the source has
// been exhausted and every segment has been returned.
func (r *Reader) Read(ctx context.Context) (Segment, error) {
	if r.chunk == nil {
		return Segment{}, ErrClosed
	}
	for {
		seg, err := r.dec.Next()
		if err == nil {
			return seg, nil
		}
		if !errors.Is(err, ErrNeedMoreInput) {
			return Segment{}, err
		}

		select {
		case <-ctx.Done():
			return Segment{}, ctx.Err()
		default:
		}

		err = r.fill()
		if err != nil {
			return Segment{}, err
		}
	}
}

func (r *Reader) fill() error {
	n, err := r.src.Read(r.chunk)
	if n > 0 {
		_, werr := r.dec.Write(r.chunk[:n])
		if werr != nil {
			return werr
		}
	}
	if errors.Is(err, io.EOF) {
		return r.dec.Close()
	}
	return err
}

// Close releases any buffered input and closes the source
// if it implements io.Closer.
func (r *Reader) Close() (err error) {
	defer try.Close(&err, r.src)

	r.dec.Reset()
	r.chunk = nil
	return nil
}

// Segments returns an iterator over every Segment decoded from r. The
// iteration stops after the first error. Breaking out of the loop early
// releases all buffered input.
func Segments(ctx context.Context, r io.Reader, opts ...ReaderOption) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		sr := NewReader(r, opts...)
		defer sr.dec.Reset()

		for {
			seg, err := sr.Read(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Segment{}, err)
				return
			}
			if !yield(seg, nil) {
				return
			}
		}
	}
}
