// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cliapp turns an action registry into a command line program.
//
// App builds a urfave/cli command tree with one subcommand per registered
// action, configures logging from the shared flags, builds the command type
// through the FromInvocation hook and dispatches to the selected action.
// Exit codes follow these rules:
//
//   - 0 when the action succeeds or when no action was given and help was printed,
//   - 2 for usage errors such as a missing required flag or an invalid value,
//   - the exit code of the failed process when the action returns an ExecutionError,
//   - 1 together with the error for anything else.
//
// Command types embed Base to run external processes with obfuscated logging and dry run support.
package cliapp
