// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package x12 provides a streaming decoder for EDI X12 interchanges.
//
// The decoder is built from four small pieces:
//
//   - Detect reads the four delimiters out of the fixed width ISA header
//   - Accumulator buffers arbitrary chunks of input and cuts them into raw segments
//   - Decompose splits a raw segment into elements, components and repetitions
//   - Decoder tracks interchange envelopes and ties the other three together
//
// # Basic Usage
//
// Decode everything from an io.Reader:
//
//	for seg, err := range x12.Segments(ctx, f) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(seg.ID)
//	}
//
// Or drive the Decoder yourself with chunks from any source:
//
//	d := x12.NewDecoder()
//	segs, err := d.Feed(chunk)
//	...
//	rest, err := d.Flush()
//
// # Envelopes
//
// Delimiters are declared per interchange, not per file. Every time a
// segment starting with ISA is seen the delimiters are detected again, so
// files containing multiple interchanges with different delimiters decode
// correctly. Lines preceding the first header are dropped whole, so a
// header is only recognized at the start of a line.
//
// # Errors
//
// A malformed header or a stream without any header stops decoding. Every
// subsequent call returns the same error since no delimiter set can be
// trusted anymore.
package x12
