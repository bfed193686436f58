// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package docs renders reference documentation for registered actions.
//
// Build turns an action catalog into a Manifest, which is written as Markdown
// or as a YAML manifest. Files are written through FsFactory so tests can use
// an in-memory filesystem. The Generator command type exposes this as the
// "generate" action of the gendocs program.
package docs
