// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliapp

import (
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/clitools/internal/process"
	"github.com/urfave/cli/v3"
)

// Exit codes returned by Invoke.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var (
	// ErrNoConstructor is returned when the App has no FromInvocation hook.
	ErrNoConstructor = errors.New("no FromInvocation hook configured")
	// ErrUnknownAction is returned when the command line names an action that does not exist.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnexpectedArguments is returned when positional arguments follow the action.
	ErrUnexpectedArguments = errors.New("unrecognized arguments")
)

var _ cli.ExitCoder = (*ExecutionError)(nil)

// ExecutionError reports that an external command run by an action failed.
// Invoke prints Message to stderr and exits with the exit code of the process.
type ExecutionError struct {
	Process *process.Result
	Message string
}

// NewExecutionError creates an ExecutionError for res with a formatted message.
func NewExecutionError(res *process.Result, format string, args ...any) *ExecutionError {
	return &ExecutionError{
		Process: res,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ExecutionError) Error() string {
	if e.Process == nil {
		return e.Message
	}

	return fmt.Sprintf("running %s failed with exit code %d: %s", e.Process.Command, e.Process.ExitCode, e.Message)
}

// ExitCode returns the exit code of the process, or 1 when the process did not
// report a positive one.
func (e *ExecutionError) ExitCode() int {
	if e.Process == nil || e.Process.ExitCode <= 0 {
		return ExitFailure
	}

	return e.Process.ExitCode
}

// Unwrap returns the process error, if any.
func (e *ExecutionError) Unwrap() error {
	if e.Process == nil {
		return nil
	}

	return e.Process.Error
}
