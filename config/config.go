// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config reads layered configuration from maps, environment
// variables and YAML documents into a user defined struct.
package config

import (
	"github.com/z5labs/x12/config/key"

	"github.com/go-viper/mapstructure/v2"
)

// Store represents a general key value structure.
type Store interface {
	Set(key.Keyer, any) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// Manager holds the merged values of every Source.
type Manager struct {
	values values
}

// Read applies every Source in order. Subsequent sources override
// previous sources.
func Read(srcs ...Source) (*Manager, error) {
	v := make(values)
	for _, src := range srcs {
		err := src.Apply(v)
		if err != nil {
			return nil, err
		}
	}
	return &Manager{values: v}, nil
}

// Unmarshal decodes the merged values into v using the "config" struct tag.
// Strings are coerced into numbers, booleans, time.Durations and any
// type implementing encoding.TextUnmarshaler, e.g. slog.Level.
func (m *Manager) Unmarshal(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Result:           v,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(m.values))
}
