// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the x12 command line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/z5labs/x12/internal/app"

	"github.com/spf13/cobra"
)

// New returns the root x12 command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "x12",
		Short:         "Decode X12 EDI interchanges",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pfs := cmd.PersistentFlags()
	pfs.String("config", "", "YAML config file")
	pfs.String("log-level", "", "minimum log level, e.g. DEBUG or WARN")
	pfs.String("log-format", "", "log format, either json or text")
	pfs.Bool("trace", false, "write spans to stderr")

	cmd.AddCommand(
		decodeCommand(),
		detectCommand(),
	)
	return cmd
}

// Execute runs the x12 command with the given arguments.
func Execute(ctx context.Context, args ...string) error {
	cmd := New()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// run builds an App from the command config and runs it until it returns
// or the process is interrupted.
func run(cmd *cobra.Command, builder app.Builder[Config]) error {
	srcs, err := sources(cmd.Flags())
	if err != nil {
		return err
	}

	withSignals := app.BuilderFunc[Config](func(ctx context.Context, cfg Config) (app.App, error) {
		a, err := builder.Build(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return app.WithSignalNotifications(a, os.Interrupt), nil
	})
	return app.Run(cmd.Context(), app.OTel[Config](withSignals), srcs...)
}

// openInput returns the file named by args or stdin. A file is closed
// once the App returns.
func openInput(ctx context.Context, cmd *cobra.Command, args []string) (io.Reader, error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	if lc, ok := app.FromContext(ctx); ok {
		lc.OnPostRun(app.HookFunc(func(context.Context) error {
			return f.Close()
		}))
	}
	return f, nil
}
