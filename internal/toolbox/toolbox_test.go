// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolbox

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/clitools/internal/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	exitCode int
	stdout   string
	stderr   string
	commands []*process.Command
}

func (f *fakeExecutor) Execute(_ context.Context, cmd *process.Command) *process.Result {
	f.commands = append(f.commands, cmd)

	if cmd.DryRun {
		return &process.Result{Command: cmd.Display, DryRun: true}
	}

	return &process.Result{
		Command:  cmd.Display,
		ExitCode: f.exitCode,
		StdOut:   []byte(f.stdout),
		StdErr:   []byte(f.stderr),
	}
}

func invoke(t *testing.T, exec process.Executor, args ...string) (int, string, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer

	app := NewApp(&stdout, &stderr, exec)
	code, err := app.Invoke(context.Background(), append([]string{"toolbox"}, args...))

	return code, stdout.String(), stderr.String(), err
}

func TestRegistry(t *testing.T) {
	var names []string
	for _, info := range Registry.Describe() {
		names = append(names, info.Name)
	}

	assert.Equal(t, []string{"greet", "run", "env"}, names)
	assert.Equal(t, "Print a greeting.", GreetAction.Usage())
	assert.True(t, RunAction.IsOptionalGroup(SecretArg))
}

func TestGreet(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		want    string
		code    int
		wantErr error
	}{
		{
			name: "plain",
			args: []string{"greet", "--name", "Ada"},
			want: "Hello, Ada!\n",
		},
		{
			name: "short flag",
			args: []string{"greet", "-n", "Grace"},
			want: "Hello, Grace!\n",
		},
		{
			name:    "flag like name",
			args:    []string{"greet", "--name=-x"},
			code:    1,
			wantErr: ErrFlagLikeName,
		},
		{
			name: "flag like name forced",
			args: []string{"greet", "--name=-x", "--force"},
			want: "Hello, -x!\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr, err := invoke(t, nil, tc.args...)
			assert.Equal(t, tc.code, code, stderr)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, stdout)
		})
	}
}

func TestGreet_MissingName(t *testing.T) {
	code, _, stderr, err := invoke(t, nil, "greet")
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `Required flag "name" not set`)
}

func TestRun(t *testing.T) {
	t.Setenv("TOOLBOX_TEST_SECRET", "hunter2")

	exec := &fakeExecutor{stdout: "deployed\n"}
	code, stdout, stderr, err := invoke(t, exec,
		"run",
		"--command", "deploy --token={secret} 'two words'",
		"--secret", "@env:TOOLBOX_TEST_SECRET",
	)
	require.NoError(t, err)
	assert.Equal(t, 0, code, stderr)

	require.Len(t, exec.commands, 1)
	cmd := exec.commands[0]
	assert.Equal(t, []string{"deploy", "--token=hunter2", "two words"}, cmd.Args)
	assert.Equal(t, "deploy "+process.Mask+" 'two words'", cmd.Display)
	assert.False(t, cmd.DryRun)

	assert.Equal(t, "deployed\n", stdout)
	assert.Contains(t, stderr, process.Mask)
	assert.NotContains(t, stderr, "hunter2")
}

func TestRun_ShowOutput(t *testing.T) {
	exec := &fakeExecutor{stdout: "streamed"}
	code, stdout, _, err := invoke(t, exec, "run", "--command", "ls", "--show-output")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	require.Len(t, exec.commands, 1)
	assert.True(t, exec.commands[0].ShowOutput)
	assert.Empty(t, stdout)
}

func TestRun_DryRun(t *testing.T) {
	exec := &fakeExecutor{stdout: "never"}
	code, stdout, stderr, err := invoke(t, exec, "run", "--command", "rm -rf build", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	require.Len(t, exec.commands, 1)
	assert.True(t, exec.commands[0].DryRun)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "dry run")
}

func TestRun_Failure(t *testing.T) {
	exec := &fakeExecutor{exitCode: 3, stderr: "boom\n"}
	code, _, stderr, err := invoke(t, exec, "run", "--command", "false")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "boom\n")
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		command string
		wantErr error
	}{
		{name: "empty", command: "   ", wantErr: ErrEmptyCommand},
		{name: "missing secret", command: "echo {secret}", wantErr: ErrMissingSecret},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			code, _, _, err := invoke(t, exec, "run", "--command", tc.command)
			assert.Equal(t, 1, code)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, exec.commands)
		})
	}

	t.Run("unbalanced quotes", func(t *testing.T) {
		code, _, _, err := invoke(t, &fakeExecutor{}, "run", "--command", "echo 'oops")
		assert.Equal(t, 1, code)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing --command")
	})
}

func TestEnv(t *testing.T) {
	t.Setenv("TOOLBOX_TEST_VALUE", "abcdef")

	code, stdout, _, err := invoke(t, nil, "env", "--value", "@env:TOOLBOX_TEST_VALUE")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "@env:TOOLBOX_TEST_VALUE: 6 characters\n", stdout)

	code, stdout, _, err = invoke(t, nil, "env", "--value", "plain")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "plain: 5 characters\n", stdout)
}

func TestEnv_Undefined(t *testing.T) {
	code, stdout, stderr, err := invoke(t, nil, "env", "--value", "@env:TOOLBOX_TEST_UNDEFINED")
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `"TOOLBOX_TEST_UNDEFINED" is not defined`)
}

func TestHelp(t *testing.T) {
	code, stdout, _, err := invoke(t, nil, "--help")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	for _, want := range []string{"greet", "run", "env", groupBasics, groupProcesses} {
		assert.Contains(t, stdout, want)
	}
}
