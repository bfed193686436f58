// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package docs

import (
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/clitools/internal/argument"
)

// Markdown renders the manifest as a reference page.
func (m *Manifest) Markdown() []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", m.Name)

	if m.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", m.Description)
	}

	sb.WriteString("## Actions\n\n")

	for _, a := range m.Actions {
		fmt.Fprintf(&sb, "- [`%s`](#%s): %s\n", a.Name, a.Name, a.Usage)
	}

	sb.WriteString("\n## Shared flags\n\n")
	writeTable(&sb, m.SharedFlags)

	for _, a := range m.Actions {
		fmt.Fprintf(&sb, "\n## %s\n\n", a.Name)

		if a.Group != "" {
			fmt.Fprintf(&sb, "Group: %s\n\n", a.Group)
		}

		fmt.Fprintf(&sb, "%s\n\n", a.Description)
		fmt.Fprintf(&sb, "```\n%s %s%s\n```\n", m.Name, a.Name, synopsis(a.Arguments))

		for _, group := range []string{GroupRequired, GroupOptional} {
			args := filterGroup(a.Arguments, group)
			if len(args) == 0 {
				continue
			}

			fmt.Fprintf(&sb, "\n### %s arguments\n\n", group)
			writeTable(&sb, args)
		}
	}

	return []byte(sb.String())
}

func synopsis(args []Argument) string {
	var sb strings.Builder

	for _, a := range args {
		flag := a.Flags[0]
		if a.Type != "switch" {
			flag += " " + strings.ToUpper(a.Key)
		}

		if a.Group == GroupOptional {
			flag = "[" + flag + "]"
		}

		sb.WriteString(" " + flag)
	}

	return sb.String()
}

func filterGroup(args []Argument, group string) []Argument {
	var out []Argument

	for _, a := range args {
		if a.Group == group {
			out = append(out, a)
		}
	}

	return out
}

func writeTable(sb *strings.Builder, args []Argument) {
	sb.WriteString("| Flags | Type | Description |\n")
	sb.WriteString("|---|---|---|\n")

	for _, a := range args {
		flags := make([]string, 0, len(a.Flags))
		for _, f := range a.Flags {
			flags = append(flags, "`"+f+"`")
		}

		fmt.Fprintf(sb, "| %s | %s | %s |\n", strings.Join(flags, ", "), a.Type, cell(a))
	}
}

// cell builds a single line table cell for an argument.
func cell(a Argument) string {
	parts := []string{escape(a.Description)}

	if len(a.Choices) > 0 {
		parts = append(parts, "Choices: "+strings.Join(a.Choices, ", ")+".")
	}

	if a.Default != "" {
		parts = append(parts, "Default: `"+a.Default+"`.")
	}

	if a.Multiple {
		parts = append(parts, "May be repeated.")
	}

	if a.Environment {
		parts = append(parts, "Accepts `"+argument.EnvPrefix+"NAME` to read the value from the environment variable `NAME`.")
	}

	return strings.Join(parts, " ")
}

func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
