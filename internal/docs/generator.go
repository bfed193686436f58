// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package docs

import (
	"context"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/clitools/internal/action"
	"github.com/matt-FFFFFF/clitools/internal/argument"
	"github.com/matt-FFFFFF/clitools/internal/cliapp"
)

// Generator is the command type of the gendocs program.
type Generator struct {
	Catalogs []action.Catalog
	DryRun   bool
	Out      io.Writer
}

var (
	// OutputDirArg is the directory documentation is written to.
	OutputDirArg = &argument.Spec{
		Key:         "output_dir",
		Description: "Directory the documentation files are written to.",
		Type:        argument.Path,
		Flags:       []string{"--output-dir", "-o"},
		Options:     argument.Options{Optional: true, Default: "docs"},
		ActionKwarg: true,
	}

	// FormatArg selects the output format.
	FormatArg = &argument.Spec{
		Key:         "format",
		Description: "Documentation format to write.",
		Flags:       []string{"--format"},
		Options:     argument.Options{Optional: true, Default: FormatAll, Choices: Formats()},
		ActionKwarg: true,
	}

	// DryRunArg is consumed by the Generator constructor, not the action.
	DryRunArg = &argument.Spec{
		Key:         "dry_run",
		Description: "Print the files that would be written without writing them.",
		Type:        argument.Switch,
		Flags:       []string{"--dry-run"},
	}
)

// Registry holds the gendocs actions.
var Registry = action.NewRegistry[*Generator]("gendocs", `
Generate reference documentation for command line tools.
`)

// GenerateAction writes the documentation files.
var GenerateAction = Registry.MustRegister(action.Definition[*Generator]{
	Name: "generate",
	Doc: `
Write Markdown and YAML reference documentation for every known tool.
`,
	Arguments: []*argument.Spec{OutputDirArg, FormatArg},
	Func:      (*Generator).Generate,
})

// Generate writes the documentation of every catalog and prints the written paths.
func (g *Generator) Generate(ctx context.Context, kwargs action.Kwargs) error {
	manifests := make([]*Manifest, 0, len(g.Catalogs))
	for _, c := range g.Catalogs {
		manifests = append(manifests, Build(c))
	}

	paths, err := Write(ctx, kwargs.String(OutputDirArg.Key), kwargs.String(FormatArg.Key), g.DryRun, manifests...)

	for _, p := range paths {
		if g.Out != nil {
			_, _ = fmt.Fprintln(g.Out, p)
		}
	}

	return err
}

// NewApp returns the gendocs program documenting catalogs.
func NewApp(stdout, stderr io.Writer, version string, catalogs ...action.Catalog) *cliapp.App[*Generator] {
	return &cliapp.App[*Generator]{
		Registry:        Registry,
		CommonArguments: []*argument.Spec{DryRunArg},
		Stdout:          stdout,
		Stderr:          stderr,
		Version:         version,
		FromInvocation: func(_ context.Context, inv *cliapp.Invocation) (*Generator, error) {
			return &Generator{
				Catalogs: catalogs,
				DryRun:   inv.Values.Bool(DryRunArg.Key),
				Out:      stdout,
			}, nil
		},
	}
}
