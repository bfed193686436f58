// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliapp

import (
	"context"
	"slices"

	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
	"github.com/matt-FFFFFF/clitools/internal/process"
)

// Base is embedded by command types that run external processes.
type Base struct {
	// DryRun logs commands instead of running them.
	DryRun bool
	// DefaultObfuscation is hidden from every logged command line.
	DefaultObfuscation []string
	// Executor runs the processes, a process.OSExecutor when nil.
	Executor process.Executor
}

// Execute expands variables in args and runs them, logging the command line with
// every argument in obfuscate or DefaultObfuscation masked.
// The returned Result has the same shape in dry run mode.
func (b *Base) Execute(ctx context.Context, args []string, obfuscate []string, showOutput bool) *process.Result {
	display := process.Obfuscate(args, process.Mask, slices.Concat(obfuscate, b.DefaultObfuscation)...)

	cmd := &process.Command{
		Args:       process.ExpandVariables(args),
		Display:    display,
		DryRun:     b.DryRun,
		ShowOutput: showOutput,
	}

	if b.DryRun {
		ctxlog.Info(ctx, "dry run", "command", display)
	} else {
		ctxlog.Info(ctx, "execute", "command", display)
	}

	res := b.executor().Execute(ctx, cmd)

	ctxlog.Debug(ctx, "execute finished",
		"command", res.Command,
		"exitCode", res.ExitCode,
		"duration", res.Duration.String(),
	)

	return res
}

// Run is Execute returning an ExecutionError when the process fails.
func (b *Base) Run(ctx context.Context, args []string, obfuscate []string, showOutput bool) (*process.Result, error) {
	res := b.Execute(ctx, args, obfuscate, showOutput)
	if res.Failed() {
		msg := res.ErrorOutput()
		if msg == "" && res.Error != nil {
			msg = res.Error.Error()
		}

		if msg == "" {
			msg = "command failed"
		}

		return res, NewExecutionError(res, "%s", msg)
	}

	return res, nil
}

func (b *Base) executor() process.Executor {
	if b.Executor == nil {
		return process.NewOSExecutor()
	}

	return b.Executor
}
