// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package x12

import (
	"encoding/json"
	"strings"
)

// Element is a single segment field. An Element holds exactly one of
// a scalar Value, a list of Components or a list of Repetitions. A
// repetition is itself a scalar or component Element.
type Element struct {
	Value       string
	Components  []string
	Repetitions []Element
}

// IsRepeated reports whether the element was split on the repetition delimiter.
func (e Element) IsRepeated() bool {
	return len(e.Repetitions) > 0
}

// IsComposite reports whether the element was split on the component delimiter.
func (e Element) IsComposite() bool {
	return len(e.Components) > 0
}

// Format joins the element back together using the given delimiters.
func (e Element) Format(d Delimiters) string {
	switch {
	case e.IsRepeated():
		ss := make([]string, len(e.Repetitions))
		for i, r := range e.Repetitions {
			ss[i] = r.Format(d)
		}
		return strings.Join(ss, string(d.Repetition))
	case e.IsComposite():
		return strings.Join(e.Components, string(d.Component))
	default:
		return e.Value
	}
}

// MarshalJSON implements the [json.Marshaler] interface. Scalars are
// rendered as strings, components as string arrays and repetitions
// as arrays of either.
func (e Element) MarshalJSON() ([]byte, error) {
	switch {
	case e.IsRepeated():
		return json.Marshal(e.Repetitions)
	case e.IsComposite():
		return json.Marshal(e.Components)
	default:
		return json.Marshal(e.Value)
	}
}

// Segment is a decomposed X12 segment.
type Segment struct {
	// ID is the segment identifier, e.g. ISA, GS or N1.
	ID string `json:"id"`

	// Elements holds the fields following the identifier. Elements[0]
	// is the first element (e.g. N101).
	Elements []Element `json:"elements"`

	// Envelope is the 1-based ordinal of the interchange the segment belongs to.
	Envelope int `json:"envelope"`

	// Index is the position of the segment within its interchange.
	// The ISA header is always at Index 0.
	Index int `json:"index"`
}

// Element returns the n-th element using X12 positional numbering,
// i.e. Element(1) is N101 for an N1 segment.
func (s Segment) Element(n int) (Element, bool) {
	if n < 1 || n > len(s.Elements) {
		return Element{}, false
	}
	return s.Elements[n-1], true
}

// Decompose splits a raw segment into its identifier and elements. Each
// element is split on the repetition delimiter first and each resulting
// piece on the component delimiter. The identifier is never split further.
func Decompose(raw string, d Delimiters) Segment {
	fields := strings.Split(raw, string(d.Element))
	seg := Segment{
		ID: fields[0],
	}
	if len(fields) == 1 {
		return seg
	}

	seg.Elements = make([]Element, len(fields)-1)
	for i, field := range fields[1:] {
		seg.Elements[i] = decomposeElement(field, d)
	}
	return seg
}

func decomposeElement(field string, d Delimiters) Element {
	if strings.IndexByte(field, d.Repetition) < 0 {
		return decomposeComponents(field, d)
	}

	pieces := strings.Split(field, string(d.Repetition))
	reps := make([]Element, len(pieces))
	for i, piece := range pieces {
		reps[i] = decomposeComponents(piece, d)
	}
	return Element{Repetitions: reps}
}

func decomposeComponents(piece string, d Delimiters) Element {
	if strings.IndexByte(piece, d.Component) < 0 {
		return Element{Value: piece}
	}
	return Element{Components: strings.Split(piece, string(d.Component))}
}
