// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package toolbox is a small command line tool built on cliapp.
// It shows how actions, arguments and process execution fit together.
package toolbox
