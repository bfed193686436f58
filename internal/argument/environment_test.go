// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package argument

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironmentValue(t *testing.T) {
	t.Setenv("CLITOOLS_TEST_TOKEN", "s3cr3t")
	t.Setenv("CLITOOLS_TEST_EMPTY", "")
	t.Setenv("CLITOOLS_TEST_UNSET", "x")
	require.NoError(t, os.Unsetenv("CLITOOLS_TEST_UNSET"))

	tests := []struct {
		name        string
		raw         string
		want        string
		wantErr     error
		errContains string
	}{
		{
			name: "literal value",
			raw:  "plain",
			want: "plain",
		},
		{
			name: "from environment",
			raw:  "@env:CLITOOLS_TEST_TOKEN",
			want: "s3cr3t",
		},
		{
			name:        "undefined variable",
			raw:         "@env:CLITOOLS_TEST_UNSET",
			wantErr:     ErrArgumentType,
			errContains: `"CLITOOLS_TEST_UNSET" is not defined`,
		},
		{
			name:    "empty variable",
			raw:     "@env:CLITOOLS_TEST_EMPTY",
			wantErr: ErrNotValid,
		},
		{
			name:    "empty literal",
			raw:     "",
			wantErr: ErrNotValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewEnvironmentValue(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v)

				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Value)
			assert.Equal(t, tt.raw, v.Raw)
		})
	}
}

func TestEnvironmentValue_StringHidesResolvedValue(t *testing.T) {
	t.Setenv("CLITOOLS_TEST_TOKEN", "s3cr3t")

	v, err := NewEnvironmentValue("@env:CLITOOLS_TEST_TOKEN")
	require.NoError(t, err)

	assert.True(t, v.FromEnvironment())
	assert.Equal(t, "@env:CLITOOLS_TEST_TOKEN", v.String())
	assert.NotContains(t, v.String(), "s3cr3t")

	var nilValue *EnvironmentValue
	assert.Empty(t, nilValue.String())
}

func TestEnvironmentHelp(t *testing.T) {
	want := "API key.\n" +
		`Alternatively to entering "<api_key>" in plaintext, it may also be specified using a "@env:" prefix followed by a environment variable name.` + "\n" +
		`Example: "@env:<variable>" uses the value in the environment variable named "<variable>".`

	assert.Equal(t, want, environmentHelp("api_key", "API key"))
	assert.Equal(t, want, environmentHelp("api_key", "API key."))
}
