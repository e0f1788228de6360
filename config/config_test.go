// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Log struct {
		Level slog.Level `config:"level"`
	} `config:"log"`
	Decoder struct {
		ChunkSize int           `config:"chunk_size"`
		Timeout   time.Duration `config:"timeout"`
	} `config:"decoder"`
	Trace bool `config:"trace"`
}

func envSource(pairs ...string) Env {
	return Env{
		prefix: "X12_",
		environ: func() []string {
			return pairs
		},
	}
}

func TestRead(t *testing.T) {
	t.Run("will override values", func(t *testing.T) {
		t.Run("if a later source sets the same key", func(t *testing.T) {
			m, err := Read(
				Map{"log": map[string]any{"level": "INFO"}},
				FromYaml(strings.NewReader("log:\n  level: WARN\n")),
				envSource("X12_LOG__LEVEL=DEBUG"),
			)
			require.NoError(t, err)

			var cfg testConfig
			err = m.Unmarshal(&cfg)
			require.NoError(t, err)
			require.Equal(t, slog.LevelDebug, cfg.Log.Level)
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a source fails to apply", func(t *testing.T) {
			_, err := Read(FromYaml(strings.NewReader("log: [")))

			var yerr InvalidYamlError
			require.ErrorAs(t, err, &yerr)
		})
	})
}

func TestManager_Unmarshal(t *testing.T) {
	t.Run("will coerce strings", func(t *testing.T) {
		m, err := Read(envSource(
			"X12_DECODER__CHUNK_SIZE=512",
			"X12_DECODER__TIMEOUT=5s",
			"X12_TRACE=true",
			"X12_LOG__LEVEL=ERROR",
			"HOME=/root",
			"X12_",
		))
		require.NoError(t, err)

		var cfg testConfig
		err = m.Unmarshal(&cfg)
		require.NoError(t, err)

		assert.Equal(t, 512, cfg.Decoder.ChunkSize)
		assert.Equal(t, 5*time.Second, cfg.Decoder.Timeout)
		assert.True(t, cfg.Trace)
		assert.Equal(t, slog.LevelError, cfg.Log.Level)
	})

	t.Run("will convert yaml ints to durations", func(t *testing.T) {
		m, err := Read(FromYaml(strings.NewReader("decoder:\n  timeout: 10\n")))
		require.NoError(t, err)

		var cfg testConfig
		err = m.Unmarshal(&cfg)
		require.NoError(t, err)
		require.Equal(t, time.Duration(10), cfg.Decoder.Timeout)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a text value can not be unmarshaled", func(t *testing.T) {
			m, err := Read(Map{"log": map[string]any{"level": "LOUD"}})
			require.NoError(t, err)

			var cfg testConfig
			err = m.Unmarshal(&cfg)
			require.ErrorContains(t, err, "LOUD")
		})
	})
}

type readCloser struct {
	io.Reader
	closed bool
	err    error
}

func (rc *readCloser) Close() error {
	rc.closed = true
	return rc.err
}

func TestYaml_Apply(t *testing.T) {
	t.Run("will close the reader", func(t *testing.T) {
		rc := &readCloser{Reader: strings.NewReader("trace: true\n")}

		_, err := Read(FromYaml(rc))
		require.NoError(t, err)
		require.True(t, rc.closed)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if closing the reader fails", func(t *testing.T) {
			closeErr := errors.New("close failed")
			rc := &readCloser{Reader: strings.NewReader("trace: true\n"), err: closeErr}

			_, err := Read(FromYaml(rc))
			require.ErrorIs(t, err, closeErr)
		})
	})
}
