// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger returns a logger on w. format is "text", "json", or
// "auto", which picks text only when w is an *os.File attached to a
// terminal.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	text := format == "text"
	if format == "auto" {
		if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			text = true
		}
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
