// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolbox

import (
	"context"
	"io"

	"github.com/matt-FFFFFF/clitools/internal/action"
	"github.com/matt-FFFFFF/clitools/internal/argument"
	"github.com/matt-FFFFFF/clitools/internal/cliapp"
	"github.com/matt-FFFFFF/clitools/internal/process"
)

const (
	groupBasics    = "basics"
	groupProcesses = "processes"
)

// Arguments of the toolbox actions.
var (
	NameArg = &argument.Spec{
		Key:         "name",
		Description: "Name of the person to greet.",
		Flags:       []string{"--name", "-n"},
		ActionKwarg: true,
	}

	ForceArg = &argument.Spec{
		Key:         "force",
		Description: "Greet names that look like flags.",
		Type:        argument.Switch,
		Flags:       []string{"--force"},
		ActionKwarg: true,
	}

	CommandArg = &argument.Spec{
		Key:         "command",
		Description: "Command line to run, split like a POSIX shell would. " + SecretPlaceholder + " is replaced by --secret.",
		Flags:       []string{"--command", "-c"},
		ActionKwarg: true,
	}

	SecretArg = &argument.Spec{
		Key:         "secret",
		Description: "Secret substituted into the command, hidden from logs.",
		Type:        argument.Environment,
		Flags:       []string{"--secret"},
		Options:     argument.Options{Optional: true},
		ActionKwarg: true,
	}

	ShowOutputArg = &argument.Spec{
		Key:         "show_output",
		Description: "Stream the output of the command while it runs.",
		Type:        argument.Switch,
		Flags:       []string{"--show-output"},
		ActionKwarg: true,
	}

	ValueArg = &argument.Spec{
		Key:         "value",
		Description: "Value to measure.",
		Type:        argument.Environment,
		Flags:       []string{"--value"},
		ActionKwarg: true,
	}

	// DryRunArg is read by the constructor and never passed to actions.
	DryRunArg = &argument.Spec{
		Key:         "dry_run",
		Description: "Log commands instead of running them.",
		Type:        argument.Switch,
		Flags:       []string{"--dry-run"},
	}
)

// Registry holds the toolbox actions.
var Registry = action.NewRegistry[*Toolbox]("toolbox", `
A small collection of example actions.

Every action accepts --dry-run, --verbose and the logging flags.
`)

// Registered actions.
var (
	GreetAction = Registry.MustRegister(action.Definition[*Toolbox]{
		Name: "greet",
		Doc: `
Print a greeting.

Names starting with "-" are refused unless --force is given.
`,
		Group:             groupBasics,
		Arguments:         []*argument.Spec{NameArg},
		OptionalArguments: []*argument.Spec{ForceArg},
		Func:              (*Toolbox).Greet,
	})

	RunAction = Registry.MustRegister(action.Definition[*Toolbox]{
		Name: "run",
		Doc: `
Run an external command.

The command line is logged with the secret masked. A failing command
makes toolbox exit with the same exit code.
`,
		Group:             groupProcesses,
		Arguments:         []*argument.Spec{CommandArg},
		OptionalArguments: []*argument.Spec{SecretArg, ShowOutputArg},
		Func:              (*Toolbox).RunCommand,
	})

	EnvAction = Registry.MustRegister(action.Definition[*Toolbox]{
		Name: "env",
		Doc: `
Print the length of a value read from the environment.
`,
		Group:     groupBasics,
		Arguments: []*argument.Spec{ValueArg},
		Func:      (*Toolbox).Env,
	})
)

// NewApp returns the toolbox program. A nil exec runs real processes.
func NewApp(stdout, stderr io.Writer, exec process.Executor) *cliapp.App[*Toolbox] {
	return &cliapp.App[*Toolbox]{
		Registry:        Registry,
		CommonArguments: []*argument.Spec{DryRunArg},
		Stdout:          stdout,
		Stderr:          stderr,
		FromInvocation: func(_ context.Context, inv *cliapp.Invocation) (*Toolbox, error) {
			return New(stdout, inv.Values.Bool(DryRunArg.Key), exec), nil
		},
	}
}
