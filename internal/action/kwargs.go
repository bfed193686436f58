// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package action

import (
	"fmt"

	"github.com/matt-FFFFFF/clitools/internal/argument"
)

// Kwargs holds the values passed to an action, keyed by argument key.
type Kwargs map[string]any

// Get returns the value stored under key if it has type V.
func Get[V any](k Kwargs, key string) (V, bool) {
	v, ok := k[key].(V)
	return v, ok
}

// String returns a string value, or the String() form of a fmt.Stringer.
// Environment values yield their raw input, use Env to get the resolved value.
func (k Kwargs) String(key string) string {
	switch v := k[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// Bool returns a boolean value, false when absent.
func (k Kwargs) Bool(key string) bool {
	v, _ := Get[bool](k, key)
	return v
}

// Int returns an integer value, zero when absent.
func (k Kwargs) Int(key string) int {
	v, _ := Get[int](k, key)
	return v
}

// Strings returns the values of a repeated argument.
func (k Kwargs) Strings(key string) []string {
	switch v := k[key].(type) {
	case []string:
		return v
	case []any:
		s := make([]string, 0, len(v))
		for _, x := range v {
			s = append(s, fmt.Sprint(x))
		}

		return s
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Env returns an environment sourced value, nil when absent.
func (k Kwargs) Env(key string) *argument.EnvironmentValue {
	v, _ := Get[*argument.EnvironmentValue](k, key)
	return v
}
