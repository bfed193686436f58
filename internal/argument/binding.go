// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package argument

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

var _ cli.Value = (*flagValue)(nil)

// Binding ties a Spec to the flag created for one parser.
type Binding struct {
	Spec       *Spec
	flag       cli.Flag
	value      *flagValue
	switchFlag *cli.BoolFlag
}

// Flag returns the urfave/cli flag.
func (b *Binding) Flag() cli.Flag {
	return b.flag
}

// IsSet reports whether the flag appeared on the command line.
func (b *Binding) IsSet() bool {
	if b.switchFlag != nil {
		return b.switchFlag.IsSet()
	}

	return b.value.set
}

// Value returns the parsed value, or the spec default when the flag was not given.
// Switches always yield a bool.
func (b *Binding) Value() any {
	if b.switchFlag != nil {
		if b.switchFlag.IsSet() {
			v, _ := b.switchFlag.Get().(bool)
			return v
		}

		def, _ := b.Spec.Default().(bool)

		return def
	}

	if !b.value.set {
		return b.Spec.Default()
	}

	return b.value.Get()
}

// flagValue implements cli.Value, running each raw string through the spec's Type.
type flagValue struct {
	spec   *Spec
	parsed any
	values []any
	set    bool
}

func (v *flagValue) Set(raw string) error {
	if choices := v.spec.Options.Choices; len(choices) > 0 && !slices.Contains(choices, raw) {
		return fmt.Errorf("%w: %q (choose from %s)", ErrInvalidChoice, raw, strings.Join(choices, ", "))
	}

	parsed, err := v.spec.ValueType().Parse(raw)
	if err != nil {
		return err
	}

	if v.spec.Options.Multiple {
		v.values = append(v.values, parsed)
	} else {
		v.parsed = parsed
	}

	v.set = true

	return nil
}

func (v *flagValue) Get() any {
	if v.spec.Options.Multiple {
		return v.values
	}

	return v.parsed
}

func (v *flagValue) String() string {
	if v == nil || v.spec == nil || !v.set {
		return ""
	}

	if v.spec.Options.Multiple {
		s := make([]string, 0, len(v.values))
		for _, x := range v.values {
			s = append(s, fmt.Sprint(x))
		}

		return strings.Join(s, ", ")
	}

	return fmt.Sprint(v.parsed)
}
