// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"

	"github.com/bureau-foundation/verity/cmd/verity/cli"
	"github.com/bureau-foundation/verity/lib/bao"
)

// rejected reports whether err is a verification outcome (the proof
// did not match, or the inputs are structurally invalid) rather than
// a failure to carry out the verification.
func rejected(err error) bool {
	return errors.Is(err, bao.ErrHashMismatch) || errors.Is(err, bao.ErrMalformed)
}

// classify wraps a library error in the matching [cli.ToolError].
func classify(err error) error {
	if err == nil {
		return nil
	}
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		return err
	}
	if rejected(err) {
		return &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	}
	return cli.FileError(err)
}

// parseRoot parses a --root flag value.
func parseRoot(value string) (bao.Hash, error) {
	root, err := bao.ParseHash(value)
	if err != nil {
		return bao.Hash{}, cli.Validation("--root: %w", err)
	}
	return root, nil
}
