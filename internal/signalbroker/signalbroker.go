// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker subscribes to the OS signals that should terminate the program.
// By default it listens for os.Interrupt, syscall.SIGINT, syscall.SIGTERM and syscall.SIGQUIT.
//
// The process executor uses a subscription to forward signals to the child process,
// the binaries use Watch to cancel their context when a signal is received twice.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New subscribes a new channel to sigs, or to the termination signals when none are given.
// Release the subscription with Stop.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop releases a subscription created by New. The channel is not closed.
func Stop(ctx context.Context, ch chan os.Signal) {
	ctxlog.Debug(ctx, "signalbroker", "detail", "stopping signal broker")
	signal.Stop(ch)
}
