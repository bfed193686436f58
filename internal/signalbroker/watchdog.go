// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
)

// Watch reads signals from sigCh and cancels the context on the second signal of the same type.
// The subscription is stopped and sigCh closed before cancelling.
// Watch returns when sigCh is closed by the caller.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})
	for sig := range sigCh {
		if _, ok := sigMap[sig]; ok {
			ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, cancelling", "signal", sig.String())
			signal.Stop(sigCh)
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type, waiting for the child process", "signal", sig.String())

		sigMap[sig] = struct{}{}
	}
}
