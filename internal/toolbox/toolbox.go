// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/matt-FFFFFF/clitools/internal/action"
	"github.com/matt-FFFFFF/clitools/internal/cliapp"
	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
	"github.com/matt-FFFFFF/clitools/internal/process"
)

// SecretPlaceholder is replaced by the --secret value in --command.
const SecretPlaceholder = "{secret}"

var (
	// ErrFlagLikeName is returned by greet for names starting with "-" unless --force is given.
	ErrFlagLikeName = errors.New("name looks like a flag, use --force to greet it anyway")
	// ErrEmptyCommand is returned by run when --command holds no words.
	ErrEmptyCommand = errors.New("command is empty")
	// ErrMissingSecret is returned by run when the command uses the placeholder without --secret.
	ErrMissingSecret = errors.New("command uses " + SecretPlaceholder + " but no --secret was given")
)

// Toolbox is the command type of the toolbox program.
type Toolbox struct {
	cliapp.Base

	out io.Writer
}

// New creates a Toolbox printing to out.
func New(out io.Writer, dryRun bool, exec process.Executor) *Toolbox {
	return &Toolbox{
		Base: cliapp.Base{DryRun: dryRun, Executor: exec},
		out:  out,
	}
}

// Greet prints a greeting.
func (t *Toolbox) Greet(ctx context.Context, kwargs action.Kwargs) error {
	name := kwargs.String(NameArg.Key)

	if strings.HasPrefix(name, "-") && !kwargs.Bool(ForceArg.Key) {
		return fmt.Errorf("%w: %q", ErrFlagLikeName, name)
	}

	ctxlog.Debug(ctx, "greeting", "name", name)

	_, err := fmt.Fprintf(t.out, "Hello, %s!\n", name)

	return err
}

// RunCommand splits the command line, substitutes the secret and runs the process.
func (t *Toolbox) RunCommand(ctx context.Context, kwargs action.Kwargs) error {
	args, err := shellquote.Split(kwargs.String(CommandArg.Key))
	if err != nil {
		return fmt.Errorf("parsing --command: %w", err)
	}

	if len(args) == 0 {
		return ErrEmptyCommand
	}

	var obfuscate []string

	secret := kwargs.Env(SecretArg.Key)

	for i, arg := range args {
		if !strings.Contains(arg, SecretPlaceholder) {
			continue
		}

		if secret == nil {
			return ErrMissingSecret
		}

		args[i] = strings.ReplaceAll(arg, SecretPlaceholder, secret.Value)
		obfuscate = append(obfuscate, args[i])
	}

	showOutput := kwargs.Bool(ShowOutputArg.Key)

	res, err := t.Run(ctx, args, obfuscate, showOutput)
	if err != nil {
		return err
	}

	if !showOutput && !res.DryRun && res.Output() != "" {
		_, err = fmt.Fprintln(t.out, res.Output())
	}

	return err
}

// Env prints the length of an environment sourced value, never the value itself.
func (t *Toolbox) Env(_ context.Context, kwargs action.Kwargs) error {
	v := kwargs.Env(ValueArg.Key)

	_, err := fmt.Fprintf(t.out, "%s: %d characters\n", v, len(v.Value))

	return err
}
