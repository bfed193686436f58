// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"os"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/mitchellh/go-homedir"
)

// Mask replaces obfuscated arguments.
const Mask = "********"

// Obfuscate joins args into a shell quoted command line for logging,
// replacing every argument found in obfuscate with mask.
// An empty mask means Mask.
func Obfuscate(args []string, mask string, obfuscate ...string) string {
	if mask == "" {
		mask = Mask
	}

	hidden := make(map[string]struct{}, len(obfuscate))
	for _, o := range obfuscate {
		hidden[o] = struct{}{}
	}

	parts := make([]string, 0, len(args))

	for _, arg := range args {
		if _, ok := hidden[arg]; ok {
			parts = append(parts, mask)
			continue
		}

		parts = append(parts, shellquote.Join(arg))
	}

	return strings.Join(parts, " ")
}

var envVarPattern = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// ExpandVariables expands $VAR and ${VAR} references followed by a leading "~"
// in every argument. References to unset variables and home directories that
// cannot be resolved are left as written.
func ExpandVariables(args []string) []string {
	expanded := make([]string, 0, len(args))

	for _, arg := range args {
		arg = envVarPattern.ReplaceAllStringFunc(arg, func(ref string) string {
			name := strings.Trim(strings.TrimPrefix(ref, "$"), "{}")
			if v, ok := os.LookupEnv(name); ok {
				return v
			}

			return ref
		})

		if strings.HasPrefix(arg, "~") {
			if p, err := homedir.Expand(arg); err == nil {
				arg = p
			}
		}

		expanded = append(expanded, arg)
	}

	return expanded
}
