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
	"log/slog"

	"github.com/z5labs/x12"
	"github.com/z5labs/x12/internal/app"
	"github.com/z5labs/x12/pkg/slogfield"
	"github.com/z5labs/x12/queue"

	"github.com/spf13/cobra"
)

func decodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode every segment and write it as a JSON line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app.BuilderFunc[Config](func(ctx context.Context, cfg Config) (app.App, error) {
				return buildDecoder(ctx, cmd, args, cfg)
			}))
		},
	}

	fs := cmd.Flags()
	fs.Int("chunk-size", x12.DefaultChunkSize, "bytes read from the input at a time")
	fs.Int("fallback-window", x12.DefaultFallbackWindow, "bytes searched for a segment delimiter before line breaks end segments")
	return cmd
}

type runtime interface {
	Run(context.Context) error
}

type decoder struct {
	log *slog.Logger
	r   *x12.Reader
	enc *json.Encoder
	rt  runtime

	// written only by the processor and read after the runtime stops
	writeErr error
	cancel   context.CancelFunc
}

func buildDecoder(ctx context.Context, cmd *cobra.Command, args []string, cfg Config) (app.App, error) {
	src, err := openInput(ctx, cmd, args)
	if err != nil {
		return nil, err
	}

	h := cfg.Log.LogHandler(cmd.ErrOrStderr())
	d := &decoder{
		log: slog.New(h),
		r:   x12.NewReader(src, cfg.Decoder.ReaderOptions(h)...),
		enc: json.NewEncoder(cmd.OutOrStdout()),
	}

	c := queue.ConsumerFunc[x12.Segment](d.consume)
	p := queue.ProcessorFunc[x12.Segment](d.process)
	if cfg.Decoder.Buffer == 0 {
		d.rt = queue.Sequential[x12.Segment](c, p, queue.LogHandler(h))
		return d, nil
	}
	d.rt = queue.Pipe[x12.Segment](c, p, queue.LogHandler(h), queue.Buffer(cfg.Decoder.Buffer))
	return d, nil
}

// Run implements the app.App interface.
func (d *decoder) Run(ctx context.Context) error {
	ctx, d.cancel = context.WithCancel(ctx)
	defer d.cancel()

	err := d.rt.Run(ctx)
	if err != nil {
		return err
	}
	if d.writeErr != nil {
		return d.writeErr
	}
	d.log.InfoContext(ctx, "decoded input")
	return nil
}

func (d *decoder) consume(ctx context.Context) (x12.Segment, error) {
	seg, err := d.r.Read(ctx)
	if errors.Is(err, io.EOF) {
		return seg, queue.ErrEndOfItems
	}
	return seg, err
}

// process stops the runtime on the first failed write since every
// following line would be lost as well.
func (d *decoder) process(ctx context.Context, seg x12.Segment) error {
	err := d.enc.Encode(seg)
	if err != nil {
		d.writeErr = err
		d.cancel()
		return err
	}
	d.log.DebugContext(
		ctx,
		"wrote segment",
		slogfield.Envelope(seg.Envelope),
		slogfield.Int("index", seg.Index),
		slogfield.String("id", seg.ID),
	)
	return nil
}
