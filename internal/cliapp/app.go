// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/matt-FFFFFF/clitools/internal/action"
	"github.com/matt-FFFFFF/clitools/internal/argument"
	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// Invocation is the parsed command line handed to the FromInvocation hook.
type Invocation struct {
	// Action is the selected action name.
	Action string
	// Values holds every argument of the action and every common argument,
	// flags not given on the command line hold their default.
	Values action.Kwargs
	// Verbose is true when -v/--verbose was given.
	Verbose bool
	// LogCommands is false when --disable-logging was given.
	LogCommands bool
	// LogStream is the --log-stream choice.
	LogStream string
	// Logger is the logger configured for this run.
	Logger *slog.Logger

	set map[string]bool
}

// IsSet reports whether the argument with key was given on the command line.
func (i *Invocation) IsSet(key string) bool {
	return i.set[key]
}

// App is a command line program for the command type T.
type App[T any] struct {
	// Registry holds the actions, its name and doc describe the program.
	Registry *action.Registry[T]
	// FromInvocation builds the command type for the selected action.
	FromInvocation func(ctx context.Context, inv *Invocation) (T, error)
	// CommonArguments are added to every action as optional arguments, they are
	// available in Invocation.Values and passed to actions only if ActionKwarg is set.
	CommonArguments []*argument.Spec
	// Stdout receives help output and, with --log-stream stdout, logs. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives error messages and logs. Defaults to os.Stderr.
	Stderr io.Writer
	// Version is appended to the program description when set.
	Version string
}

// Invoke parses argv, argv[0] being the program name, and runs the selected action.
// It returns the exit code for the process. The error is only set for failures
// the framework does not handle itself, the caller reports those.
func (a *App[T]) Invoke(ctx context.Context, argv []string) (int, error) {
	p := a.newParser()

	err := p.root.Run(ctx, argv)
	if err == nil {
		return ExitSuccess, nil
	}

	if !p.dispatched {
		_, _ = fmt.Fprintf(a.stderr(), "%s: error: %v\n", p.root.Name, err)
		return ExitUsage, nil
	}

	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		_, _ = fmt.Fprintln(a.stderr(), execErr.Message)
		return execErr.ExitCode(), nil
	}

	return ExitFailure, err
}

// BuildCommand returns the command tree built from the registry.
func (a *App[T]) BuildCommand() *cli.Command {
	return a.newParser().root
}

// parser is the command tree of a single invocation.
type parser[T any] struct {
	app        *App[T]
	root       *cli.Command
	dispatched bool
}

func (a *App[T]) newParser() *parser[T] {
	p := &parser[T]{app: a}

	description := a.Registry.Doc()
	if a.Version != "" {
		description = strings.TrimSpace(description + "\n\nVersion: " + a.Version)
	}

	p.root = &cli.Command{
		Name:        a.Registry.Name(),
		Usage:       firstLine(a.Registry.Doc()),
		Description: description,
		Writer:      a.stdout(),
		ErrWriter:   a.stderr(),
		HideVersion: true,
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return err
		},
		// errors are reported by Invoke, never by os.Exit
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Args().First())
			}

			return cli.ShowAppHelp(cmd)
		},
	}

	for _, desc := range a.Registry.Actions() {
		p.root.Commands = append(p.root.Commands, p.subcommand(desc))
	}

	return p
}

func (p *parser[T]) subcommand(desc *action.Descriptor[T]) *cli.Command {
	cmd := &cli.Command{
		Name:            desc.Name,
		Usage:           desc.Usage(),
		Description:     desc.Doc,
		Category:        desc.Group,
		HideHelpCommand: true,
		OnUsageError: func(_ context.Context, cmd *cli.Command, err error, _ bool) error {
			_ = cli.ShowSubcommandHelp(cmd)
			return err
		},
	}

	shared := make(map[string]*argument.Binding)
	for _, spec := range SharedArguments() {
		shared[spec.Key] = spec.Register(cmd, "")
	}

	var bindings []*argument.Binding

	for _, spec := range desc.AllArguments() {
		category := requiredCategory(desc.Name)
		if !spec.IsRequired() || desc.IsOptionalGroup(spec) {
			category = optionalCategory(desc.Name)
		}

		bindings = append(bindings, spec.Register(cmd, category))
	}

	for _, spec := range p.app.CommonArguments {
		bindings = append(bindings, spec.Register(cmd, optionalCategory(desc.Name)))
	}

	cmd.Before = func(ctx context.Context, _ *cli.Command) (context.Context, error) {
		logger := ctxlog.Configure(ctxlog.Options{
			Disabled: shared[DisableLoggingArg.Key].Value() == true,
			Verbose:  shared[VerboseArg.Key].Value() == true,
			Writer:   p.app.logWriter(shared[LogStreamArg.Key].Value()),
		})

		return ctxlog.New(ctx, logger), nil
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Present() {
			return fmt.Errorf("%w: %s", ErrUnexpectedArguments, strings.Join(cmd.Args().Slice(), " "))
		}

		p.dispatched = true

		inv := &Invocation{
			Action:      desc.Name,
			Values:      make(action.Kwargs, len(bindings)),
			Verbose:     shared[VerboseArg.Key].Value() == true,
			LogCommands: shared[DisableLoggingArg.Key].Value() != true,
			LogStream:   fmt.Sprint(shared[LogStreamArg.Key].Value()),
			Logger:      ctxlog.Logger(ctx),
			set:         make(map[string]bool, len(bindings)),
		}

		for _, b := range bindings {
			inv.Values[b.Spec.Key] = b.Value()
			inv.set[b.Spec.Key] = b.IsSet()
		}

		return p.app.dispatch(ctx, desc, inv)
	}

	return cmd
}

// dispatch builds the command type and calls the action with its keyword arguments.
func (a *App[T]) dispatch(ctx context.Context, desc *action.Descriptor[T], inv *Invocation) error {
	if a.FromInvocation == nil {
		return ErrNoConstructor
	}

	recv, err := a.FromInvocation(ctx, inv)
	if err != nil {
		return err
	}

	kwargs := make(action.Kwargs)

	for _, spec := range desc.AllArguments() {
		if spec.ActionKwarg {
			kwargs[spec.Key] = inv.Values[spec.Key]
		}
	}

	for _, spec := range a.CommonArguments {
		if spec.ActionKwarg {
			kwargs[spec.Key] = inv.Values[spec.Key]
		}
	}

	for _, bound := range a.Registry.Bind(recv) {
		if bound.Name != desc.Name {
			continue
		}

		ctxlog.Debug(ctx, "dispatching action", "action", desc.Name)

		return bound.Call(ctx, kwargs)
	}

	return fmt.Errorf("%w: %s", ErrUnknownAction, desc.Name)
}

func (a *App[T]) logWriter(stream any) io.Writer {
	if stream == LogStreamStdout {
		return a.stdout()
	}

	return a.stderr()
}

func (a *App[T]) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}

	return a.Stdout
}

func (a *App[T]) stderr() io.Writer {
	if a.Stderr == nil {
		return os.Stderr
	}

	return a.Stderr
}

func firstLine(s string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return first
}
