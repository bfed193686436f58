// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliapp

import (
	"fmt"

	"github.com/matt-FFFFFF/clitools/internal/argument"
)

// Log streams accepted by --log-stream.
const (
	LogStreamStderr = "stderr"
	LogStreamStdout = "stdout"
)

// Flags shared by every action.
var (
	DisableLoggingArg = &argument.Spec{
		Key:         "disable_logging",
		Description: "Disable log output for actions",
		Type:        argument.Switch,
		Flags:       []string{"--disable-logging"},
	}

	VerboseArg = &argument.Spec{
		Key:         "verbose",
		Description: "Enable verbose logging",
		Type:        argument.Switch,
		Flags:       []string{"--verbose", "-v"},
	}

	LogStreamArg = &argument.Spec{
		Key:         "log_stream",
		Description: "Choose which stream to use for log output.",
		Flags:       []string{"--log-stream"},
		Options: argument.Options{
			Optional: true,
			Default:  LogStreamStderr,
			Choices:  []string{LogStreamStderr, LogStreamStdout},
		},
	}
)

// SharedArguments returns the flags added to every action.
func SharedArguments() []*argument.Spec {
	return []*argument.Spec{DisableLoggingArg, VerboseArg, LogStreamArg}
}

// Category names sort mandatory before optional, urfave/cli lists categories alphabetically.
func requiredCategory(name string) string {
	return fmt.Sprintf("mandatory arguments for %q", name)
}

func optionalCategory(name string) string {
	return fmt.Sprintf("optional arguments for %q", name)
}
