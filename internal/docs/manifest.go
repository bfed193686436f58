// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package docs

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/clitools/internal/action"
	"github.com/matt-FFFFFF/clitools/internal/argument"
	"github.com/matt-FFFFFF/clitools/internal/cliapp"
)

// Argument groups.
const (
	GroupRequired = "required"
	GroupOptional = "optional"
	GroupShared   = "shared"
)

// Argument documents one flag.
type Argument struct {
	Key         string   `yaml:"key"`
	Flags       []string `yaml:"flags"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Group       string   `yaml:"group"`
	Required    bool     `yaml:"required"`
	Default     string   `yaml:"default,omitempty"`
	Choices     []string `yaml:"choices,omitempty"`
	Multiple    bool     `yaml:"multiple,omitempty"`
	Environment bool     `yaml:"environment,omitempty"`
}

// Action documents one action.
type Action struct {
	Name        string     `yaml:"name"`
	Usage       string     `yaml:"usage"`
	Description string     `yaml:"description"`
	Group       string     `yaml:"group,omitempty"`
	Arguments   []Argument `yaml:"arguments,omitempty"`
}

// Manifest documents a program.
type Manifest struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	SharedFlags []Argument `yaml:"shared_flags"`
	Actions     []Action   `yaml:"actions"`
}

// Build documents every action of c, grouping arguments the way the parser does.
func Build(c action.Catalog) *Manifest {
	m := &Manifest{
		Name:        c.Name(),
		Description: c.Doc(),
	}

	for _, spec := range cliapp.SharedArguments() {
		m.SharedFlags = append(m.SharedFlags, newArgument(spec, GroupShared))
	}

	for _, info := range c.Describe() {
		a := Action{
			Name:        info.Name,
			Usage:       info.Usage(),
			Description: info.Doc,
			Group:       info.Group,
		}

		for _, spec := range info.AllArguments() {
			group := GroupRequired
			if !spec.IsRequired() || info.IsOptionalGroup(spec) {
				group = GroupOptional
			}

			a.Arguments = append(a.Arguments, newArgument(spec, group))
		}

		m.Actions = append(m.Actions, a)
	}

	return m
}

func newArgument(spec *argument.Spec, group string) Argument {
	a := Argument{
		Key:         spec.Key,
		Flags:       spec.Flags,
		Description: spec.Description,
		Type:        spec.ValueType().Name(),
		Group:       group,
		Required:    spec.IsRequired(),
		Choices:     spec.Options.Choices,
		Multiple:    spec.Options.Multiple,
		Environment: argument.IsEnvironment(spec.ValueType()),
	}

	if d := spec.Default(); d != nil {
		a.Default = fmt.Sprint(d)
	}

	return a
}

// YAML renders the manifest.
func (m *Manifest) YAML() ([]byte, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshalling manifest for %s: %w", m.Name, err)
	}

	return b, nil
}
