// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes.
// Whether a writer should receive colour is decided by Capable, which honours the
// NO_COLOR and FORCE_COLOR environment variables and falls back to terminal
// detection using the golang.org/x/term package.
package color
