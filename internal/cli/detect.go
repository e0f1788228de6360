// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/z5labs/x12"
	"github.com/z5labs/x12/internal/app"

	"github.com/spf13/cobra"
)

func detectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Print the delimiters of the first interchange",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app.BuilderFunc[Config](func(ctx context.Context, cfg Config) (app.App, error) {
				src, err := openInput(ctx, cmd, args)
				if err != nil {
					return nil, err
				}

				h := cfg.Log.LogHandler(cmd.ErrOrStderr())
				d := &detector{
					r: x12.NewReader(src, cfg.Decoder.ReaderOptions(h)...),
					w: cmd.OutOrStdout(),
				}
				return app.AppFunc(d.Run), nil
			}))
		},
	}
}

type delimiters struct {
	Segment    string `json:"segment"`
	Element    string `json:"element"`
	Component  string `json:"component"`
	Repetition string `json:"repetition"`
}

type detector struct {
	r *x12.Reader
	w io.Writer
}

// Run decodes the first header and writes its delimiters as JSON.
func (d *detector) Run(ctx context.Context) error {
	_, err := d.r.Read(ctx)
	if errors.Is(err, io.EOF) {
		return x12.ErrNoEnvelopeDetected
	}
	if err != nil {
		return err
	}

	delims, ok := d.r.Delimiters()
	if !ok {
		return x12.ErrNoEnvelopeDetected
	}
	return json.NewEncoder(d.w).Encode(delimiters{
		Segment:    string(delims.Segment),
		Element:    string(delims.Element),
		Component:  string(delims.Component),
		Repetition: string(delims.Repetition),
	})
}
