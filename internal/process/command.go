// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoCommand is returned when the argument vector is empty.
	ErrNoCommand = errors.New("no command given")
	// ErrCommandNotFound is returned when the program cannot be found in PATH.
	ErrCommandNotFound = errors.New("command not found")
	// ErrNonZeroExit is returned by Result.Err when the process exited with a non-zero code.
	ErrNonZeroExit = errors.New("process exited with non-zero exit code")
)

// Command describes one external process.
type Command struct {
	// Args is the argument vector, Args[0] is the program.
	Args []string
	// Display is the obfuscated command line used for logging.
	Display string
	// DryRun skips execution.
	DryRun bool
	// ShowOutput streams stdout and stderr to the terminal while capturing them.
	ShowOutput bool
	// Env holds additional environment variables.
	Env map[string]string
	// Dir is the working directory, empty means the current one.
	Dir string
}

// String returns the display form, obfuscating nothing when Display is empty.
func (c *Command) String() string {
	if c.Display != "" {
		return c.Display
	}

	return Obfuscate(c.Args, Mask)
}

// Executor runs a command to completion.
type Executor interface {
	Execute(ctx context.Context, cmd *Command) *Result
}

// Result is the outcome of a process, or of a skipped one in dry run mode.
type Result struct {
	Command  string        // Obfuscated command line.
	ExitCode int           // -1 when the process could not be started or was killed.
	StdOut   []byte        // Captured stdout.
	StdErr   []byte        // Captured stderr.
	DryRun   bool          // The process was not started.
	Error    error         // Start, wait or capture error.
	Duration time.Duration // Wall time of the process.
}

// Failed reports whether the process errored or exited with a non-zero code.
func (r *Result) Failed() bool {
	return r.Error != nil || r.ExitCode != 0
}

// Err returns nil for a successful process, otherwise an error describing the failure.
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}

	if r.Error != nil {
		return fmt.Errorf("running %s: %w", r.Command, r.Error)
	}

	return fmt.Errorf("running %s: %w: %d", r.Command, ErrNonZeroExit, r.ExitCode)
}

// Output returns stdout with surrounding whitespace removed.
func (r *Result) Output() string {
	return strings.TrimSpace(string(r.StdOut))
}

// ErrorOutput returns stderr with surrounding whitespace removed.
func (r *Result) ErrorOutput() string {
	return strings.TrimSpace(string(r.StdErr))
}

func dryRunResult(cmd *Command) *Result {
	return &Result{
		Command: cmd.String(),
		DryRun:  true,
	}
}
