// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package x12

import (
	"log/slog"
	"strings"
)

const (
	// HeaderID is the segment identifier of an interchange header.
	HeaderID = "ISA"

	// HeaderLen is the length of an interchange header, including
	// its segment delimiter. Every ISA field is fixed width.
	HeaderLen = 106

	elementOffset    = len(HeaderID)
	repetitionOffset = 82
	componentOffset  = HeaderLen - 2
	segmentOffset    = HeaderLen - 1
)

// Delimiters are the four characters an interchange uses to separate
// segments, elements, components and repetitions.
type Delimiters struct {
	Segment    byte
	Element    byte
	Component  byte
	Repetition byte
}

// Validate returns an error if any two delimiters are the same character.
func (d Delimiters) Validate() error {
	bs := [4]byte{d.Segment, d.Element, d.Component, d.Repetition}
	for i := range len(bs) {
		for j := i + 1; j < len(bs); j++ {
			if bs[i] == bs[j] {
				return errDelimitersNotDistinct
			}
		}
	}
	return nil
}

// LogValue implements the [slog.LogValuer] interface.
func (d Delimiters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("segment", string(d.Segment)),
		slog.String("element", string(d.Element)),
		slog.String("component", string(d.Component)),
		slog.String("repetition", string(d.Repetition)),
	)
}

// Detect reads the delimiters from an interchange header. Only the first
// HeaderLen bytes of header are inspected, so header may also be the
// beginning of a larger document.
func Detect(header string) (Delimiters, error) {
	if len(header) < HeaderLen {
		return Delimiters{}, &MalformedHeaderError{Header: header, Cause: errHeaderTooShort}
	}
	header = header[:HeaderLen]
	if !strings.HasPrefix(header, HeaderID) {
		return Delimiters{}, &MalformedHeaderError{Header: header, Cause: errMissingHeaderID}
	}

	d := Delimiters{
		Segment:    header[segmentOffset],
		Element:    header[elementOffset],
		Component:  header[componentOffset],
		Repetition: header[repetitionOffset],
	}
	err := d.Validate()
	if err != nil {
		return Delimiters{}, &MalformedHeaderError{Header: header, Cause: err}
	}
	return d, nil
}
