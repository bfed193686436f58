// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package action registers documented command line actions for a command type.
//
// An action is a method expression of the owning type T together with its name,
// documentation and the argument specs it accepts. Registration happens in
// package level var blocks through MustRegister, so an invalid action (most
// importantly one without documentation) stops the program before any parser
// is built:
//
//	var registry = action.NewRegistry[*Tool]("tool", "Does things.")
//
//	var _ = registry.MustRegister(action.Definition[*Tool]{
//		Name:      "greet",
//		Doc:       "Print a greeting.",
//		Arguments: []*argument.Spec{nameArg},
//		Func:      (*Tool).Greet,
//	})
//
// The registry is enumerated twice per run: unbound, to build the parser, and
// bound to an instance, to dispatch.
package action
