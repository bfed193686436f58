// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package argument declares command line parameters for actions.
//
// A Spec is an immutable record describing one parameter: the key it is stored
// under, its help text, the Type used to parse the raw string, the flags it is
// spelled with and a small set of options (default, optional, choices, repeated).
// Specs are declared once as package level values and registered onto
// urfave/cli commands when the parser is built.
//
// Values of the Environment type may be given literally or as "@env:NAME", in
// which case the value is read from the environment variable NAME while the
// command line is parsed.
package argument
