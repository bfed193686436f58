// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package action

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/clitools/internal/argument"
)

var (
	// ErrUndocumented is returned when an action has no documentation.
	ErrUndocumented = errors.New("action is not documented")
	// ErrNoName is returned when an action has an empty name.
	ErrNoName = errors.New("action has no name")
	// ErrNoFunc is returned when an action has no function.
	ErrNoFunc = errors.New("action has no function")
	// ErrDuplicateAction is returned when an action name is registered twice.
	ErrDuplicateAction = errors.New("duplicate action name")
	// ErrDuplicateArgument is returned when two arguments of an action share a key.
	ErrDuplicateArgument = errors.New("duplicate argument key")
	// ErrNoFlags is returned when an argument declares no flags.
	ErrNoFlags = errors.New("argument has no flags")
	// ErrNilArgument is returned when an argument list contains nil.
	ErrNilArgument = errors.New("argument is nil")
)

// Func is the signature of an action, usually a method expression such as (*Tool).Greet.
type Func[T any] func(recv T, ctx context.Context, kwargs Kwargs) error

// Info is the metadata of an action, independent of the owning type.
type Info struct {
	Name  string
	Doc   string
	Group string
	// Arguments are the parameters the action accepts.
	Arguments []*argument.Spec
	// OptionalArguments are listed under the optional help group regardless
	// of their own requiredness.
	OptionalArguments []*argument.Spec
}

// Usage returns the first line of the documentation.
func (i Info) Usage() string {
	first, _, _ := strings.Cut(strings.TrimSpace(i.Doc), "\n")
	return strings.TrimSpace(first)
}

// AllArguments returns Arguments followed by any OptionalArguments not already listed.
func (i Info) AllArguments() []*argument.Spec {
	all := slices.Clone(i.Arguments)

	for _, a := range i.OptionalArguments {
		if !slices.Contains(all, a) {
			all = append(all, a)
		}
	}

	return all
}

// IsOptionalGroup reports whether spec was declared in OptionalArguments.
func (i Info) IsOptionalGroup(spec *argument.Spec) bool {
	return slices.Contains(i.OptionalArguments, spec)
}

// Definition is the input to Register.
type Definition[T any] struct {
	Name              string
	Doc               string
	Group             string
	Arguments         []*argument.Spec
	OptionalArguments []*argument.Spec
	Func              Func[T]
}

// Descriptor is a registered, unbound action.
type Descriptor[T any] struct {
	Info
	Func Func[T]
}

// Call forwards to the action function unchanged.
func (d *Descriptor[T]) Call(recv T, ctx context.Context, kwargs Kwargs) error {
	return d.Func(recv, ctx, kwargs)
}

// Bound is an action with its receiver applied.
type Bound struct {
	Info
	call func(context.Context, Kwargs) error
}

// Call invokes the action on its receiver.
func (b *Bound) Call(ctx context.Context, kwargs Kwargs) error {
	return b.call(ctx, kwargs)
}

// Catalog describes a set of actions without exposing the owning type.
type Catalog interface {
	Name() string
	Doc() string
	Describe() []Info
}

var _ Catalog = (*Registry[struct{}])(nil)

// Registry holds the actions of the command type T in registration order.
type Registry[T any] struct {
	name    string
	doc     string
	actions []*Descriptor[T]
	byName  map[string]*Descriptor[T]
}

// NewRegistry creates an empty registry. name is the program name and doc its description,
// surrounding whitespace is removed from doc.
func NewRegistry[T any](name, doc string) *Registry[T] {
	return &Registry[T]{
		name:   name,
		doc:    strings.TrimSpace(doc),
		byName: make(map[string]*Descriptor[T]),
	}
}

// Name returns the program name.
func (r *Registry[T]) Name() string {
	return r.name
}

// Doc returns the program description.
func (r *Registry[T]) Doc() string {
	return r.doc
}

// Register validates def and adds it to the registry.
// Every problem found is reported in a single error.
func (r *Registry[T]) Register(def Definition[T]) (*Descriptor[T], error) {
	if err := r.validate(def); err != nil {
		return nil, err
	}

	d := &Descriptor[T]{
		Info: Info{
			Name:              def.Name,
			Doc:               strings.TrimSpace(def.Doc),
			Group:             def.Group,
			Arguments:         slices.Clone(def.Arguments),
			OptionalArguments: slices.Clone(def.OptionalArguments),
		},
		Func: def.Func,
	}

	r.actions = append(r.actions, d)
	r.byName[d.Name] = d

	return d, nil
}

// MustRegister is like Register but panics on error.
// It is meant for package level var blocks.
func (r *Registry[T]) MustRegister(def Definition[T]) *Descriptor[T] {
	d, err := r.Register(def)
	if err != nil {
		panic(fmt.Sprintf("registering action %q in %q: %v", def.Name, r.name, err))
	}

	return d
}

func (r *Registry[T]) validate(def Definition[T]) error {
	var result *multierror.Error

	if def.Name == "" {
		result = multierror.Append(result, ErrNoName)
	}

	if _, exists := r.byName[def.Name]; exists && def.Name != "" {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrDuplicateAction, def.Name))
	}

	if strings.TrimSpace(def.Doc) == "" {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUndocumented, def.Name))
	}

	if def.Func == nil {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrNoFunc, def.Name))
	}

	seen := make(map[string]*argument.Spec)

	for _, spec := range slices.Concat(def.Arguments, def.OptionalArguments) {
		if spec == nil {
			result = multierror.Append(result, ErrNilArgument)
			continue
		}

		if prev, ok := seen[spec.Key]; ok {
			// the same spec may appear in both lists
			if prev != spec {
				result = multierror.Append(result, fmt.Errorf("%w: %s", ErrDuplicateArgument, spec.Key))
			}

			continue
		}

		seen[spec.Key] = spec

		if len(spec.Flags) == 0 {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrNoFlags, spec.Key))
		}
	}

	return result.ErrorOrNil()
}

// Actions returns the unbound actions in registration order.
func (r *Registry[T]) Actions() []*Descriptor[T] {
	return slices.Clone(r.actions)
}

// Lookup finds an unbound action by name.
func (r *Registry[T]) Lookup(name string) (*Descriptor[T], bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Describe returns the metadata of every action in registration order.
func (r *Registry[T]) Describe() []Info {
	infos := make([]Info, 0, len(r.actions))
	for _, d := range r.actions {
		infos = append(infos, d.Info)
	}

	return infos
}

// Bind applies recv to every action.
func (r *Registry[T]) Bind(recv T) []*Bound {
	bound := make([]*Bound, 0, len(r.actions))

	for _, d := range r.actions {
		bound = append(bound, &Bound{
			Info: d.Info,
			call: func(ctx context.Context, kwargs Kwargs) error {
				return d.Func(recv, ctx, kwargs)
			},
		})
	}

	return bound
}
