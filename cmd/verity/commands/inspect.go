// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/verity/cmd/verity/cli"
	"github.com/bureau-foundation/verity/lib/bao"
	"github.com/bureau-foundation/verity/lib/codec"
	"github.com/bureau-foundation/verity/lib/digest"
	"github.com/bureau-foundation/verity/lib/sidecar"
)

type inspectParams struct {
	cli.JSONOutput
	Diagnostic bool `json:"diag" flag:"diag" desc:"print the raw sidecar in CBOR diagnostic notation"`
}

type inspectResult struct {
	Path          string        `json:"path"`
	Version       int           `json:"version"`
	Length        uint64        `json:"length"`
	Root          bao.Hash      `json:"root"`
	Digest        digest.Digest `json:"digest"`
	Chunks        uint64        `json:"chunks"`
	Slices        uint64        `json:"slices"`
	OutboardBytes int           `json:"outboard_bytes"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show what a sidecar records",
		Description: `Load and validate a sidecar and print the content length, root,
digest, and tree shape it describes. With --diag, print the raw CBOR
record in diagnostic notation instead.`,
		Usage: "verity inspect [flags] <sidecar>",
		Examples: []cli.Example{
			{
				Description: "Summarize a sidecar",
				Command:     "verity inspect disk.img.verity",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			return runInspect(&params, args, os.Stdout)
		},
	}
}

func runInspect(params *inspectParams, args []string, stdout io.Writer) error {
	if err := cli.RequireArgs(args, 1, "verity inspect [flags] <sidecar>"); err != nil {
		return err
	}
	path := args[0]

	if params.Diagnostic {
		data, err := os.ReadFile(path)
		if err != nil {
			return cli.FileError(err)
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return cli.Validation("%s: %w", path, err)
		}
		fmt.Fprintln(stdout, notation)
		return nil
	}

	record, err := sidecar.ReadFile(path)
	if err != nil {
		return classify(err)
	}
	result := inspectResult{
		Path:          path,
		Version:       record.Version,
		Length:        record.Length,
		Root:          record.Root,
		Digest:        record.Digest,
		Chunks:        record.Chunks(),
		Slices:        record.Slices(),
		OutboardBytes: len(record.Outboard),
	}

	if done, err := params.EmitJSON(stdout, result); done {
		return err
	}

	writer := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Sidecar:\t%s\n", result.Path)
	fmt.Fprintf(writer, "Version:\t%d\n", result.Version)
	fmt.Fprintf(writer, "Length:\t%s (%s bytes)\n", humanize.IBytes(result.Length), humanize.Comma(int64(result.Length)))
	fmt.Fprintf(writer, "Root:\t%s\n", result.Root)
	fmt.Fprintf(writer, "Digest:\t%s\n", result.Digest)
	fmt.Fprintf(writer, "Chunks:\t%d\n", result.Chunks)
	fmt.Fprintf(writer, "Windows:\t%d\n", result.Slices)
	fmt.Fprintf(writer, "Outboard:\t%s\n", humanize.IBytes(uint64(result.OutboardBytes)))
	return writer.Flush()
}
