// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/verity/cmd/verity/cli"
	"github.com/bureau-foundation/verity/lib/version"
)

// Root builds and returns the complete verity CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "verity",
		Description: `verity: verified streaming for large files.

Commit to a file with a single 32-byte BLAKE3 root, then prove any
256 KiB window of it (or the whole file) against that root using a
small outboard tree kept in a sidecar file.`,
		Subcommands: []*cli.Command{
			hashCommand(),
			encodeCommand(),
			verifyCommand(),
			checkCommand(),
			sliceCommand(),
			decodeSliceCommand(),
			inspectCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("verity %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Encode a file, then prove its second window",
				Command:     "verity encode disk.img && dd if=disk.img bs=256K skip=1 count=1 of=w1 && verity verify -s disk.img.verity --offset 262144 w1",
			},
		},
	}
}
