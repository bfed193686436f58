// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger built on log/slog.
//
// Loggers travel inside a context.Context. Before the command line has been parsed
// the DefaultLogger is used, its level taken from the <EXECUTABLE>_LOG_LEVEL environment
// variable. Once the shared logging flags are known, Configure builds the logger
// for the rest of the run.
//
// The default handler is a pretty console handler that prints lines like
//
//	[01-02 15:04:05] INFO > message {"key": "value"}
package ctxlog
