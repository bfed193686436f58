// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package argument

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// Options tune how the parameter is parsed.
type Options struct {
	// Default is handed to the action when the flag is absent.
	Default any
	// Optional parameters may be omitted from the command line.
	Optional bool
	// Choices restricts the raw value to one of the listed strings.
	Choices []string
	// Multiple allows the flag to be repeated, the value becomes a []any.
	Multiple bool
}

// Spec declares a single command line parameter. Specs are never mutated after declaration.
type Spec struct {
	// Key is the destination key of the parsed value.
	Key string
	// Description is the help text.
	Description string
	// Type parses the raw value, String when nil.
	Type Type
	// Flags are the spellings accepted on the command line, e.g. "--name", "-n".
	Flags   []string
	Options Options
	// ActionKwarg passes the value to the action, otherwise only the invocation hook sees it.
	ActionKwarg bool
}

// ValueType returns the configured type, or String when none is set.
func (s *Spec) ValueType() Type {
	if s.Type == nil {
		return String
	}

	return s.Type
}

// IsRequired is true unless the spec is marked optional. Switches are never required.
func (s *Spec) IsRequired() bool {
	if IsSwitch(s.ValueType()) {
		return false
	}

	return !s.Options.Optional
}

// Default returns the configured default, or nil.
func (s *Spec) Default() any {
	return s.Options.Default
}

// HelpText builds the usage text shown in help output.
func (s *Spec) HelpText() string {
	if IsEnvironment(s.ValueType()) {
		return environmentHelp(s.Key, s.Description)
	}

	if d := s.Default(); d != nil {
		return fmt.Sprintf("%s [Default: %v]", s.Description, d)
	}

	return s.Description
}

// FlagNames returns the primary flag name and its aliases without leading dashes.
// The key is used when no flags are declared.
func (s *Spec) FlagNames() (string, []string) {
	if len(s.Flags) == 0 {
		return strings.ReplaceAll(s.Key, "_", "-"), nil
	}

	names := make([]string, 0, len(s.Flags))
	for _, f := range s.Flags {
		names = append(names, strings.TrimLeft(f, "-"))
	}

	return names[0], names[1:]
}

// Register adds the parameter to cmd under the given help category and returns
// the binding used to read the parsed value back.
func (s *Spec) Register(cmd *cli.Command, category string) *Binding {
	b := s.bind(category)
	cmd.Flags = append(cmd.Flags, b.flag)

	return b
}

func (s *Spec) bind(category string) *Binding {
	name, aliases := s.FlagNames()
	b := &Binding{Spec: s}

	if IsSwitch(s.ValueType()) {
		def, _ := s.Default().(bool)
		b.switchFlag = &cli.BoolFlag{
			Name:     name,
			Aliases:  aliases,
			Usage:    s.HelpText(),
			Category: category,
			Value:    def,
		}
		b.flag = b.switchFlag

		return b
	}

	b.value = &flagValue{spec: s}
	b.flag = &cli.GenericFlag{
		Name:        name,
		Aliases:     aliases,
		Usage:       s.HelpText(),
		Category:    category,
		Required:    s.IsRequired(),
		HideDefault: true,
		Value:       b.value,
	}

	return b
}
