// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the verity CLI command tree.
//
// Each command is a thin shell over a run function that takes its
// params, positional arguments, a logger, and the writers it prints
// to. The Run closures bind those to the process's standard streams;
// tests call the run functions directly with buffers.
//
// Verification commands (verify, check) treat a rejected proof as an
// answer, not a failure: they print FAIL and return a [cli.ExitError]
// with code 1 so that main exits without a second error line.
package commands
