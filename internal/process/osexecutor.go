// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"sync"
	"time"

	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
	"github.com/matt-FFFFFF/clitools/internal/signalbroker"
	"github.com/matt-FFFFFF/clitools/internal/teereader"
)

const (
	maxBufferSize  = 8 * 1024 * 1024  // 8MB
	tickerInterval = 10 * time.Second // Interval for the still running log message
	drainTimeout   = 2 * time.Second  // Time allowed to read remaining output after the process exits
)

var _ Executor = (*OSExecutor)(nil)

// lookPath is a variable so tests can stub program resolution.
var lookPath = exec.LookPath

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadBuffer is returned when reading the process output failed.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrContextDone is returned when the context ended before the process.
	ErrContextDone = errors.New("context done, process killed")
	// ErrSignalReceived is returned when an operating system signal was forwarded to the process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// OSExecutor starts operating system processes.
type OSExecutor struct {
	// Stdout receives the process stdout when Command.ShowOutput is set, defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives the process stderr when Command.ShowOutput is set, defaults to os.Stderr.
	Stderr io.Writer
	sigCh  chan os.Signal // allows mocking in test
}

// NewOSExecutor creates an executor streaming to the standard streams.
func NewOSExecutor() *OSExecutor {
	return &OSExecutor{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Execute runs cmd and waits for it to finish.
// The context being done kills the process, termination signals are forwarded to it.
func (e *OSExecutor) Execute(ctx context.Context, cmd *Command) *Result {
	logger := ctxlog.Logger(ctx).With("command", cmd.String())

	if cmd.DryRun {
		logger.Debug("dry run, skipping process")
		return dryRunResult(cmd)
	}

	res := &Result{
		Command: cmd.String(),
	}

	if len(cmd.Args) == 0 {
		res.Error = ErrNoCommand
		res.ExitCode = -1

		return res
	}

	path, err := lookPath(cmd.Args[0])
	if err != nil {
		res.Error = errors.Join(ErrCommandNotFound, err)
		res.ExitCode = -1

		return res
	}

	logger.Debug("command info", "path", path, "cwd", cmd.Dir)

	env := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(cmd.Env)) {
		env = append(env, fmt.Sprintf("%s=%s", k, cmd.Env[k]))
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		res.Error = errors.Join(ErrFailedToCreatePipe, err)
		res.ExitCode = -1

		return res
	}

	defer rOut.Close() //nolint:errcheck

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = wOut.Close()
		res.Error = errors.Join(ErrFailedToCreatePipe, err)
		res.ExitCode = -1

		return res
	}

	defer rErr.Close() //nolint:errcheck

	sigCh := e.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(ctx, sigCh)
	}

	startTime := time.Now()

	ps, err := os.StartProcess(path, cmd.Args, &os.ProcAttr{
		Dir:   cmd.Dir,
		Env:   env,
		Files: []*os.File{os.Stdin, wOut, wErr},
	})

	// the child holds its own copies of the write ends
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		res.Error = errors.Join(ErrCouldNotStartProcess, err)
		res.ExitCode = -1

		return res
	}

	logger.Debug("process started", "pid", ps.Pid)

	outOpts := []teereader.Option{teereader.WithLimit(maxBufferSize)}
	errOpts := []teereader.Option{teereader.WithLimit(maxBufferSize)}

	if cmd.ShowOutput {
		outOpts = append(outOpts, teereader.WithEcho(e.stdout()))
		errOpts = append(errOpts, teereader.WithEcho(e.stderr()))
	}

	stdout := teereader.New(rOut, outOpts...)
	stderr := teereader.New(rErr, errOpts...)

	var (
		pumps    sync.WaitGroup
		watchdog sync.WaitGroup
		readErr   = make(chan error, 2)
		killed    = make(chan error, 1)
		forwarded = make(chan struct{}, 1)
		done      = make(chan struct{})
	)

	for _, r := range []io.Reader{stdout, stderr} {
		pumps.Add(1)

		go func() {
			defer pumps.Done()

			if _, err := io.Copy(io.Discard, r); err != nil && !errors.Is(err, os.ErrClosed) {
				readErr <- errors.Join(ErrFailedToReadBuffer, err)
			}
		}()
	}

	// watchdog for process signals and context cancellation
	watchdog.Add(1)

	go func() {
		defer watchdog.Done()

		e.watch(ctx, ps, sigCh, startTime, killed, forwarded, done)
	}()

	logger.Debug("waiting for process to finish")

	state, psErr := ps.Wait()

	close(done)
	watchdog.Wait()
	drain(ctx, &pumps, rOut, rErr)
	close(readErr)

	res.Duration = time.Since(startTime)
	res.ExitCode = state.ExitCode()
	res.Error = psErr
	res.StdOut = stdout.Bytes()
	res.StdErr = stderr.Bytes()

	select {
	case kerr := <-killed:
		res.Error = errors.Join(res.Error, kerr)
		res.ExitCode = -1
	default:
	}

	for err := range readErr {
		res.Error = errors.Join(res.Error, err)
	}

	if stdout.Overflowed() || stderr.Overflowed() {
		logger.Debug("output truncated", "maxBytes", maxBufferSize)
		res.Error = errors.Join(res.Error, ErrBufferOverflow)
	}

	if res.Error != nil && res.ExitCode == 0 {
		res.ExitCode = -1
	}

	// the process handled a forwarded signal, its own exit code stands
	select {
	case <-forwarded:
		res.Error = errors.Join(res.Error, ErrSignalReceived)
	default:
	}

	logger.Debug("process finished",
		"exitCode", res.ExitCode,
		"duration", res.Duration.String(),
		"lastStdErrLine", stderr.LastLine(120),
	)

	return res
}

// watch forwards the first signal of each type to the process and kills it on the
// second one or when the context is done. The reason for a kill is sent on killed,
// forwarded receives a value once a signal has been passed on.
func (e *OSExecutor) watch(
	ctx context.Context,
	ps *os.Process,
	sigCh chan os.Signal,
	startTime time.Time,
	killed chan<- error,
	forwarded chan<- struct{},
	done <-chan struct{},
) {
	logger := ctxlog.Logger(ctx)
	signalCount := make(map[os.Signal]struct{})

	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

	report := func(err error) {
		select {
		case killed <- err:
		default:
		}
	}

	for {
		select {
		case <-ticker.C:
			logger.Info("process still running", "pid", ps.Pid, "elapsed", time.Since(startTime).Round(time.Second).String())

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, seen := signalCount[s]; seen {
				logger.Info("received duplicate signal, killing process", "signal", s.String())
				killPs(ctx, ps)
				report(ErrDuplicateSignalReceived)

				return
			}

			signalCount[s] = struct{}{}

			logger.Info("received signal, forwarding to process", "signal", s.String())

			if err := ps.Signal(s); err != nil {
				logger.Info("failed to send signal", "signal", s.String(), "error", err)
			}

			select {
			case forwarded <- struct{}{}:
			default:
			}

		case <-ctx.Done():
			logger.Info("context done, killing process")
			killPs(ctx, ps)
			report(ErrContextDone)

			return

		case <-done:
			return
		}
	}
}

func (e *OSExecutor) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}

	return e.Stdout
}

func (e *OSExecutor) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}

	return e.Stderr
}

// drain waits for the output pumps. Descendants of the process may keep the pipes
// open, so the read ends are closed once drainTimeout has passed.
func drain(ctx context.Context, pumps *sync.WaitGroup, pipes ...*os.File) {
	finished := make(chan struct{})

	go func() {
		pumps.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return
	case <-time.After(drainTimeout):
	}

	ctxlog.Debug(ctx, "output still open after process exit, closing pipes")

	for _, p := range pipes {
		_ = p.Close()
	}

	<-finished
}

// killPs kills the process, a process that already exited is not an error.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
