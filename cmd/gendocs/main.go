// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the gendocs command-line application.
// It writes reference documentation for every tool in this module.
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/clitools"
	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
	"github.com/matt-FFFFFF/clitools/internal/docs"
	"github.com/matt-FFFFFF/clitools/internal/signalbroker"
	"github.com/matt-FFFFFF/clitools/internal/toolbox"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	app := docs.NewApp(os.Stdout, os.Stderr, clitools.VersionString(), toolbox.Registry, docs.Registry)

	code, err := app.Invoke(ctx, os.Args)
	if err != nil {
		ctxlog.Error(ctx, "command failed", "error", err)
	}

	cancel()
	os.Exit(code)
}
