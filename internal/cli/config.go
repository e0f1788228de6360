// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/z5labs/x12"
	"github.com/z5labs/x12/config"
	"github.com/z5labs/x12/config/key"
	"github.com/z5labs/x12/pkg/maskslog"
	"github.com/z5labs/x12/pkg/otelslog"
	"github.com/z5labs/x12/pkg/slogfield"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// EnvPrefix is the prefix of every environment variable read as config,
// e.g. X12_LOG__LEVEL sets log.level.
const EnvPrefix = "X12_"

// Config is shared by every command.
type Config struct {
	Log     LogConfig     `config:"log"`
	Trace   TraceConfig   `config:"trace"`
	Decoder DecoderConfig `config:"decoder"`
}

// LogConfig
type LogConfig struct {
	Level slog.Level `config:"level"`

	// Format is either "json" or "text".
	Format string `config:"format"`
}

// TraceConfig
type TraceConfig struct {
	Enabled     bool `config:"enabled"`
	PrettyPrint bool `config:"pretty_print"`
}

// DecoderConfig
type DecoderConfig struct {
	ChunkSize      int  `config:"chunk_size"`
	FallbackWindow int  `config:"fallback_window"`

	// Buffer is the number of decoded segments held between reading and
	// writing. Zero reads and writes on the same goroutine.
	Buffer uint `config:"buffer"`
}

func defaults() config.Map {
	return config.Map{
		"log": map[string]any{
			"level":  "INFO",
			"format": "json",
		},
		"trace": map[string]any{
			"enabled":      false,
			"pretty_print": false,
		},
		"decoder": map[string]any{
			"chunk_size":      x12.DefaultChunkSize,
			"fallback_window": x12.DefaultFallbackWindow,
			"buffer":          64,
		},
	}
}

// InitTextMapPropagator implements the app.TextMapPropagatorInitializer interface.
func (Config) InitTextMapPropagator(_ context.Context) (propagation.TextMapPropagator, error) {
	return propagation.TraceContext{}, nil
}

// InitTracerProvider implements the app.TracerProviderInitializer interface.
// Spans are written to stderr since stdout carries the command output.
func (cfg Config) InitTracerProvider(_ context.Context) (trace.TracerProvider, error) {
	if !cfg.Trace.Enabled {
		return nil, nil
	}

	opts := []stdouttrace.Option{
		stdouttrace.WithWriter(os.Stderr),
	}
	if cfg.Trace.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exp, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return tp, nil
}

// LogHandler returns the handler every command logs through. Raw
// segment text is masked down to its identifier.
func (cfg LogConfig) LogHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	var h slog.Handler
	switch cfg.Format {
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		h = slog.NewJSONHandler(w, opts)
	}

	h = maskslog.NewHandler(h, maskslog.Attr(slogfield.SegmentKey, maskslog.SegmentIDAttr))
	return otelslog.NewHandler(h)
}

// ReaderOptions translates the decoder config into x12.ReaderOptions.
func (cfg DecoderConfig) ReaderOptions(h slog.Handler) []x12.ReaderOption {
	return []x12.ReaderOption{
		x12.ChunkSize(cfg.ChunkSize),
		x12.DecoderOptions(
			x12.LogHandler(h),
			x12.AccumulatorOptions(x12.FallbackWindow(cfg.FallbackWindow)),
		),
	}
}

// flagKeys maps command line flags to their config key.
var flagKeys = map[string]string{
	"log-level":       "log.level",
	"log-format":      "log.format",
	"trace":           "trace.enabled",
	"chunk-size":      "decoder.chunk_size",
	"fallback-window": "decoder.fallback_window",
}

// flagSource is a config.Source holding every flag which was explicitly set.
type flagSource struct {
	fs *pflag.FlagSet
}

// Apply implements the config.Source interface.
func (src flagSource) Apply(store config.Store) error {
	for name, k := range flagKeys {
		f := src.fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		err := store.Set(key.Split(k, "."), f.Value.String())
		if err != nil {
			return err
		}
	}
	return nil
}

// sources returns the config sources in order of increasing precedence:
// defaults, the YAML config file, environment variables and flags.
func sources(fs *pflag.FlagSet) ([]config.Source, error) {
	srcs := []config.Source{defaults()}

	path, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, config.FromYaml(f))
	}

	srcs = append(srcs, config.FromEnv(EnvPrefix), flagSource{fs: fs})
	return srcs, nil
}
