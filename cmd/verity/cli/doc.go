// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the verity CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a params struct whose tagged
// fields become flags (see [BindFlags]), and a Run function. Commands are
// assembled into a tree in cmd/verity/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing, and
// structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Commands share three conventions:
//
//   - [ConfigParams] adds --config and --log-level and resolves the
//     configuration file and command logger in one call.
//   - [JSONOutput] adds --json and emits a result struct as JSON in
//     place of the text rendering.
//   - Errors are returned, never printed by the command: [ToolError]
//     categorizes them, and [ExitError] carries a non-zero exit for
//     outcomes the command has already reported (a rejected slice).
package cli
