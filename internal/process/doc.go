// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package process runs external commands on behalf of actions.
//
// A Command carries the literal argument vector together with the display
// form used in logs, which is built by Obfuscate so secrets never reach the
// log output. Executors run commands and report a Result. OSExecutor is the
// default implementation; in dry run mode every executor returns a successful
// Result without starting anything.
package process
