// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package x12

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader is matched by every MalformedHeaderError.
	ErrMalformedHeader = errors.New("x12: malformed interchange header")

	// ErrNoEnvelopeDetected is returned when input ends before any
	// interchange header was seen.
	ErrNoEnvelopeDetected = errors.New("x12: no interchange header detected")

	// ErrUnterminatedSegment describes trailing input which was not followed
	// by a segment delimiter. It is never fatal, the text is still emitted.
	ErrUnterminatedSegment = errors.New("x12: unterminated trailing segment")

	// ErrNeedMoreInput is returned by Decoder.Next when no complete
	// segment is buffered yet.
	ErrNeedMoreInput = errors.New("x12: need more input")

	// ErrClosed is returned when writing to a closed Decoder.
	ErrClosed = errors.New("x12: decoder closed")

	errHeaderTooShort        = errors.New("header shorter than 106 bytes")
	errMissingHeaderID       = errors.New("header does not start with ISA")
	errDelimitersNotDistinct = errors.New("delimiters are not distinct")
)

// MalformedHeaderError occurs when the four delimiters can not be
// detected from an interchange header.
type MalformedHeaderError struct {
	Header string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("x12: malformed interchange header %q: %s", e.Header, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *MalformedHeaderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrMalformedHeader.
func (e *MalformedHeaderError) Is(target error) bool {
	return target == ErrMalformedHeader
}
