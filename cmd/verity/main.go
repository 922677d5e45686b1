// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command verity commits to files with BLAKE3 tree roots and verifies
// windows of them against outboard sidecars.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/verity/cmd/verity/commands"
)

// exitCoder is implemented by errors that carry their own exit status.
type exitCoder interface {
	ExitCode() int
}

func main() {
	err := commands.Root().Execute(os.Args[1:])
	if err == nil {
		return
	}

	// verify and check print their own verdict.
	var coder exitCoder
	if errors.As(err, &coder) {
		os.Exit(coder.ExitCode())
	}
	fmt.Fprintf(os.Stderr, "verity: %v\n", err)
	os.Exit(1)
}
