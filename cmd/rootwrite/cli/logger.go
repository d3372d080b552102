// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// DebugEnvVariable enables debug-level logging when set to a non-empty
// value.
const DebugEnvVariable = "ROOTWRITE_DEBUG"

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable
// output. When stderr is piped or redirected (CI, scripts), uses
// slog.JSONHandler for machine-parseable output.
//
// The default level is WARN so that normal interactive runs stay quiet
// around the password prompt; setting ROOTWRITE_DEBUG raises verbosity
// to DEBUG.
func NewCommandLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv(DebugEnvVariable) != "" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
