// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader captures the output of a child process while it is read.
// The captured buffer is bounded, an optional echo writer receives every byte,
// and the last complete line is tracked for log messages about the process.
package teereader
