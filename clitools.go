// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package clitools provides the version and commit information for the tools in this module.
package clitools

import "fmt"

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

// VersionString returns the version and commit for help output.
func VersionString() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
