// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package x12

// Strip removes the segment delimiter and line breaks surrounding a raw
// segment. Files commonly pad segment boundaries with both, e.g. "~\r\n".
func Strip(s string, segment byte) string {
	start := 0
	for start < len(s) && isNoise(s[start], segment) {
		start++
	}
	end := len(s)
	for end > start && isNoise(s[end-1], segment) {
		end--
	}
	return s[start:end]
}

func isNoise(b, segment byte) bool {
	return b == segment || b == '\r' || b == '\n'
}
