// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("process tests use a POSIX shell")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctxlog.New(ctx, ctxlog.DefaultLogger)
}

func TestOSExecutor_Success(t *testing.T) {
	ctx := testContext(t)

	res := NewOSExecutor().Execute(ctx, &Command{
		Args: []string{"echo", "hello"},
	})

	require.NoError(t, res.Error)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello", res.Output())
	assert.Equal(t, "echo hello", res.Command)
	assert.False(t, res.DryRun)
	assert.Positive(t, res.Duration)
}

func TestOSExecutor_ExitCode(t *testing.T) {
	ctx := testContext(t)

	res := NewOSExecutor().Execute(ctx, &Command{
		Args:    []string{"sh", "-c", "echo oops >&2; exit 3"},
		Display: "sh -c ********",
	})

	require.NoError(t, res.Error)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "oops", res.ErrorOutput())
	assert.Equal(t, "sh -c ********", res.Command)
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err(), ErrNonZeroExit)
}

func TestOSExecutor_EnvAndDir(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	res := NewOSExecutor().Execute(ctx, &Command{
		Args: []string{"sh", "-c", "echo $FOO; pwd"},
		Env:  map[string]string{"FOO": "BAR"},
		Dir:  dir,
	})

	require.NoError(t, res.Error)

	out := res.Output()
	assert.Contains(t, out, "BAR")
	assert.Contains(t, out, dir)
}

func TestOSExecutor_ShowOutput(t *testing.T) {
	ctx := testContext(t)

	var stdout, stderr bytes.Buffer

	e := &OSExecutor{Stdout: &stdout, Stderr: &stderr}
	res := e.Execute(ctx, &Command{
		Args:       []string{"sh", "-c", "echo out; echo err >&2"},
		ShowOutput: true,
	})

	require.NoError(t, res.Error)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
	assert.Equal(t, "out", res.Output())
	assert.Equal(t, "err", res.ErrorOutput())
}

func TestOSExecutor_HiddenOutputNotStreamed(t *testing.T) {
	ctx := testContext(t)

	var stdout bytes.Buffer

	e := &OSExecutor{Stdout: &stdout}
	res := e.Execute(ctx, &Command{Args: []string{"echo", "quiet"}})

	require.NoError(t, res.Error)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "quiet", res.Output())
}

func TestOSExecutor_DryRun(t *testing.T) {
	ctx := testContext(t)

	stubs := gostub.StubFunc(&lookPath, "", errors.New("must not be called"))
	defer stubs.Reset()

	res := NewOSExecutor().Execute(ctx, &Command{
		Args:    []string{"rm", "-rf", "/definitely/not"},
		Display: "rm -rf ********",
		DryRun:  true,
	})

	assert.True(t, res.DryRun)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "rm -rf ********", res.Command)
	require.NoError(t, res.Error)
}

func TestOSExecutor_NotFound(t *testing.T) {
	ctx := testContext(t)

	res := NewOSExecutor().Execute(ctx, &Command{
		Args: []string{"clitools-definitely-not-a-real-command"},
	})

	require.ErrorIs(t, res.Error, ErrCommandNotFound)
	assert.Equal(t, -1, res.ExitCode)
}

func TestOSExecutor_NoCommand(t *testing.T) {
	ctx := testContext(t)

	res := NewOSExecutor().Execute(ctx, &Command{})

	require.ErrorIs(t, res.Error, ErrNoCommand)
	assert.Equal(t, -1, res.ExitCode)
}

func TestOSExecutor_StartFailure(t *testing.T) {
	ctx := testContext(t)

	stubs := gostub.StubFunc(&lookPath, "/not/a/real/command", nil)
	defer stubs.Reset()

	res := NewOSExecutor().Execute(ctx, &Command{Args: []string{"whatever"}})

	var pathErr *os.PathError

	require.ErrorAs(t, res.Error, &pathErr)
	require.ErrorIs(t, res.Error, ErrCouldNotStartProcess)
	assert.Equal(t, -1, res.ExitCode)
}

func TestOSExecutor_ContextCancelled(t *testing.T) {
	ctx := testContext(t)

	ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := NewOSExecutor().Execute(ctx, &Command{Args: []string{"sleep", "10"}})

	require.ErrorIs(t, res.Error, ErrContextDone)
	assert.Equal(t, -1, res.ExitCode)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOSExecutor_SignalForwarded(t *testing.T) {
	ctx := testContext(t)

	sigCh := make(chan os.Signal, 1)
	e := &OSExecutor{sigCh: sigCh}

	script := "trap 'exit 7' INT; while :; do sleep 0.05; done"

	go func() {
		time.Sleep(200 * time.Millisecond)
		sigCh <- os.Interrupt
	}()

	res := e.Execute(ctx, &Command{Args: []string{"sh", "-c", script}})

	require.ErrorIs(t, res.Error, ErrSignalReceived)
	assert.NotErrorIs(t, res.Error, ErrDuplicateSignalReceived)
	assert.Equal(t, 7, res.ExitCode)
}

func TestOSExecutor_SignalForwardedTerminates(t *testing.T) {
	ctx := testContext(t)

	sigCh := make(chan os.Signal, 1)
	e := &OSExecutor{sigCh: sigCh}

	go func() {
		time.Sleep(200 * time.Millisecond)
		sigCh <- os.Interrupt
	}()

	res := e.Execute(ctx, &Command{Args: []string{"sleep", "10"}})

	require.ErrorIs(t, res.Error, ErrSignalReceived)
	assert.Equal(t, -1, res.ExitCode)
}

func TestOSExecutor_SecondSignalKills(t *testing.T) {
	ctx := testContext(t)

	sigCh := make(chan os.Signal, 2)
	e := &OSExecutor{sigCh: sigCh}

	// the shell ignores SIGINT so only the kill ends it
	script := "trap '' INT; sleep 10"

	go func() {
		time.Sleep(200 * time.Millisecond)
		sigCh <- os.Interrupt
		time.Sleep(100 * time.Millisecond)
		sigCh <- os.Interrupt
	}()

	start := time.Now()
	res := e.Execute(ctx, &Command{Args: []string{"sh", "-c", script}})

	assert.Equal(t, -1, res.ExitCode)
	assert.Less(t, time.Since(start), 8*time.Second)
	require.ErrorIs(t, res.Error, ErrDuplicateSignalReceived)
	assert.ErrorIs(t, res.Error, ErrSignalReceived)
}

func TestOSExecutor_OutputLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("writes more than the capture limit")
	}

	ctx := testContext(t)

	res := NewOSExecutor().Execute(ctx, &Command{
		Args: []string{"sh", "-c", "head -c 9000000 /dev/zero | tr '\\0' 'a'"},
	})

	require.ErrorIs(t, res.Error, ErrBufferOverflow)
	assert.Len(t, res.StdOut, maxBufferSize)
	assert.True(t, strings.HasPrefix(string(res.StdOut), "aaaa"))
}
