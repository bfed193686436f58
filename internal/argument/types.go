// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package argument

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mitchellh/go-homedir"
)

var (
	// ErrArgumentType is returned when a raw value cannot be converted to the argument type.
	ErrArgumentType = errors.New("invalid argument type")
	// ErrNotValid is returned when a value resolves to something unusable, e.g. an empty string.
	ErrNotValid = errors.New("provided value is not valid")
	// ErrInvalidChoice is returned when a value is not one of the configured choices.
	ErrInvalidChoice = errors.New("invalid choice")
)

// expandHome is a variable so tests can stub the home directory lookup.
var expandHome = homedir.Expand

// Type converts the raw command line string into the value handed to the action.
type Type interface {
	// Name is a short label used in help output and error messages.
	Name() string
	// Parse converts raw, returning an error wrapping ErrArgumentType or ErrNotValid
	// when the input is rejected.
	Parse(raw string) (any, error)
}

type typeFunc struct {
	name string
	fn   func(string) (any, error)
}

func (t typeFunc) Name() string { return t.name }

func (t typeFunc) Parse(raw string) (any, error) { return t.fn(raw) }

// Func creates a Type from a parse function.
func Func(name string, fn func(raw string) (any, error)) Type {
	return typeFunc{name: name, fn: fn}
}

// switchType marks a boolean flag that takes no value.
type switchType struct{}

func (switchType) Name() string { return "switch" }

func (switchType) Parse(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a boolean", ErrArgumentType, raw)
	}

	return b, nil
}

var (
	// String passes the raw value through unchanged.
	String Type = Func("string", func(raw string) (any, error) {
		return raw, nil
	})

	// Int parses a base 10 integer.
	Int Type = Func("int", func(raw string) (any, error) {
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrArgumentType, raw)
		}

		return i, nil
	})

	// Switch is a boolean flag, present means true.
	Switch Type = switchType{}

	// Path expands a leading "~" to the user's home directory.
	Path Type = Func("path", func(raw string) (any, error) {
		p, err := expandHome(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArgumentType, err)
		}

		return p, nil
	})

	// Environment resolves "@env:NAME" references, see NewEnvironmentValue.
	Environment Type = environmentType{}
)

type environmentType struct{}

func (environmentType) Name() string { return "environment" }

func (environmentType) Parse(raw string) (any, error) {
	return NewEnvironmentValue(raw)
}

// IsSwitch reports whether t is the Switch type.
func IsSwitch(t Type) bool {
	_, ok := t.(switchType)
	return ok
}

// IsEnvironment reports whether t is the Environment type.
func IsEnvironment(t Type) bool {
	_, ok := t.(environmentType)
	return ok
}
