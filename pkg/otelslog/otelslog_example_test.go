// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelslog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/z5labs/x12/pkg/slogfield"
)

func ExampleNew() {
	var buf bytes.Buffer
	logger := New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{}))
	logger.Info("detected interchange header", slogfield.Envelope(2))

	var record struct {
		Message  string `json:"msg"`
		Envelope int    `json:"envelope"`
	}
	err := json.Unmarshal(buf.Bytes(), &record)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(record.Message)
	fmt.Print(record.Envelope)
	// Output: detected interchange header
	// 2
}

func ExampleHandler_WithGroup() {
	var buf bytes.Buffer
	var h slog.Handler = NewHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{}))
	h = h.WithGroup("decoder")

	logger := slog.New(h)
	logger.Warn("emitting unterminated trailing segment", slogfield.Segment("IEA*1"))

	var record struct {
		Message string `json:"msg"`
		Decoder struct {
			Segment string `json:"segment"`
		} `json:"decoder"`
	}
	err := json.Unmarshal(buf.Bytes(), &record)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(record.Message)
	fmt.Print(record.Decoder.Segment)
	// Output: emitting unterminated trailing segment
	// IEA*1
}
