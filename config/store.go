// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/z5labs/x12/config/key"
)

var (
	// ErrEmptyKey is the cause of a KeyError whose key has no names.
	ErrEmptyKey = errors.New("empty key")

	// ErrKeyConflict is the cause of a KeyError when a plain value and
	// nested values are set under the same key.
	ErrKeyConflict = errors.New("key holds both a value and nested values")
)

// KeyError is returned by a Store when it can not set a value.
type KeyError struct {
	Key   string
	Cause error
}

// Error implements the error interface.
func (e KeyError) Error() string {
	return fmt.Sprintf("config: can not set %q: %s", e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e KeyError) Unwrap() error {
	return e.Cause
}

// values is the merged tree of every Source. Inner nodes are always
// map[string]any so the tree can be decoded by mapstructure as is.
type values map[string]any

// Set implements the Store interface. Later values replace earlier ones
// but a plain value never replaces nested values, or vice versa.
func (v values) Set(k key.Keyer, x any) error {
	path := names(k)
	if len(path) == 0 {
		return KeyError{Key: k.Key(), Cause: ErrEmptyKey}
	}

	m := map[string]any(v)
	for i, name := range path[:len(path)-1] {
		node, ok := m[name]
		if !ok {
			sub := make(map[string]any)
			m[name] = sub
			m = sub
			continue
		}

		sub, ok := node.(map[string]any)
		if !ok {
			return KeyError{Key: strings.Join(path[:i+1], "."), Cause: ErrKeyConflict}
		}
		m = sub
	}

	leaf := path[len(path)-1]
	if _, ok := m[leaf].(map[string]any); ok {
		return KeyError{Key: strings.Join(path, "."), Cause: ErrKeyConflict}
	}
	m[leaf] = x
	return nil
}

// names flattens k into the names along its path. Chains may be nested
// and any other Keyer is a single name.
func names(k key.Keyer) []string {
	chain, ok := k.(key.Chain)
	if !ok {
		if k.Key() == "" {
			return nil
		}
		return []string{k.Key()}
	}

	var path []string
	for _, sub := range chain {
		path = append(path, names(sub)...)
	}
	return path
}
