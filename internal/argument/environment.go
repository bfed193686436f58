// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package argument

import (
	"fmt"
	"os"
	"strings"
)

// EnvPrefix marks a value that should be read from the environment.
const EnvPrefix = "@env:"

// EnvironmentValue holds the raw command line input and the value it resolved to.
type EnvironmentValue struct {
	Raw   string
	Value string
}

// NewEnvironmentValue resolves raw once. Input starting with EnvPrefix is looked up
// in the environment, anything else is used literally.
// The resolved value is never empty.
func NewEnvironmentValue(raw string) (*EnvironmentValue, error) {
	value := raw

	if name, ok := strings.CutPrefix(raw, EnvPrefix); ok {
		v, found := os.LookupEnv(name)
		if !found {
			return nil, fmt.Errorf("%w: environment variable %q is not defined", ErrArgumentType, name)
		}

		value = v
	}

	if value == "" {
		return nil, ErrNotValid
	}

	return &EnvironmentValue{
		Raw:   raw,
		Value: value,
	}, nil
}

// FromEnvironment reports whether the value was read from an environment variable.
func (v *EnvironmentValue) FromEnvironment() bool {
	return strings.HasPrefix(v.Raw, EnvPrefix)
}

// String returns the raw input so a resolved secret never ends up in logs.
func (v *EnvironmentValue) String() string {
	if v == nil {
		return ""
	}

	return v.Raw
}

// environmentHelp generates the help text for Environment arguments.
func environmentHelp(key, description string) string {
	return strings.Join([]string{
		strings.TrimRight(description, ".") + ".",
		fmt.Sprintf(`Alternatively to entering "<%s>" in plaintext, `+
			`it may also be specified using a "%s" prefix followed by a environment variable name.`, key, EnvPrefix),
		fmt.Sprintf(`Example: "%s<variable>" uses the value in the environment variable named "<variable>".`, EnvPrefix),
	}, "\n")
}
