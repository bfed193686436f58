// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type loggerKey struct{}

// LevelVar holds the level of DefaultLogger.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when no logger has been stored in the context.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(os.Stderr),
	WithDestinationWriter(os.Stderr),
))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// Options controls the logger built by Configure.
type Options struct {
	// Disabled discards every record.
	Disabled bool
	// Verbose lowers the level to DEBUG, otherwise INFO is used.
	Verbose bool
	// Writer is the destination stream, defaults to os.Stderr.
	Writer io.Writer
}

// Configure builds the logger for a single run from the shared command line flags.
// Each call returns a fresh logger with exactly one handler, so calling it more
// than once never duplicates output.
func Configure(opts Options) *slog.Logger {
	if opts.Disabled {
		return slog.New(slog.DiscardHandler)
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(NewPrettyHandler(&slog.HandlerOptions{
		Level: level,
	},
		WithAutoColour(w),
		WithDestinationWriter(w),
	))
}

// New creates a new context with the given logger.
// If logger is nil, it uses the default logger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// logLevelEnvVar derives the level variable name from the executable,
// e.g. "toolbox" reads TOOLBOX_LOG_LEVEL.
func logLevelEnvVar() string {
	exe, _ := os.Executable()
	exe = filepath.Base(exe)
	exe = strings.TrimSuffix(exe, ".exe")
	exe = strings.NewReplacer("-", "_", ".", "_").Replace(exe)

	return strings.ToUpper(exe) + "_LOG_LEVEL"
}

func logLevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(logLevelEnvVar())) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
