// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/verity/cmd/verity/cli"
	"github.com/bureau-foundation/verity/lib/digest"
)

type hashParams struct {
	cli.ConfigParams
	cli.JSONOutput
}

// hashResult is one line of hash output.
type hashResult struct {
	Path   string        `json:"path"`
	Digest digest.Digest `json:"digest"`
}

func hashCommand() *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Print the BLAKE3 digest of files or stdin",
		Description: `Compute the 32-byte BLAKE3 digest of each file, streaming the
content through a fixed-size buffer. With no arguments, or with "-",
stdin is hashed.

The digest of a file equals the root that "verity encode" records in
its sidecar.`,
		Usage: "verity hash [flags] [file...]",
		Examples: []cli.Example{
			{
				Description: "Hash two files",
				Command:     "verity hash disk.img kernel.bin",
			},
			{
				Description: "Hash a stream",
				Command:     "curl -s https://example.com/disk.img | verity hash",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			_, logger, err := params.Setup("hash")
			if err != nil {
				return err
			}
			return runHash(&params, args, logger, os.Stdin, os.Stdout)
		},
	}
}

func runHash(params *hashParams, args []string, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		args = []string{"-"}
	}

	results := make([]hashResult, 0, len(args))
	for _, path := range args {
		var value digest.Digest
		var err error
		if path == "-" {
			value, err = digest.FromReader(stdin)
		} else {
			value, err = digest.FromFile(path)
		}
		if err != nil {
			return classify(fmt.Errorf("hashing %s: %w", path, err))
		}
		logger.Debug("hashed", "path", path, "digest", value)
		results = append(results, hashResult{Path: path, Digest: value})
	}

	if done, err := params.EmitJSON(stdout, results); done {
		return err
	}
	for _, result := range results {
		fmt.Fprintf(stdout, "%s  %s\n", result.Digest, result.Path)
	}
	return nil
}
