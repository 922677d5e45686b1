// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/verity/cmd/verity/cli"
	"github.com/bureau-foundation/verity/lib/bao"
	"github.com/bureau-foundation/verity/lib/config"
	"github.com/bureau-foundation/verity/lib/digest"
	"github.com/bureau-foundation/verity/lib/sidecar"
)

type encodeParams struct {
	cli.ConfigParams
	cli.JSONOutput
	Out string `json:"out" flag:"out,o" desc:"sidecar path (default <file>.verity, or inside paths.sidecar_dir)"`
}

type encodeResult struct {
	Path     string        `json:"path"`
	Sidecar  string        `json:"sidecar"`
	Length   uint64        `json:"length"`
	Root     bao.Hash      `json:"root"`
	Digest   digest.Digest `json:"digest"`
	Chunks   uint64        `json:"chunks"`
	Slices   uint64        `json:"slices"`
	Outboard int           `json:"outboard_bytes"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Write a sidecar (root, digest, outboard tree) for a file",
		Description: `Read the file once, computing its BLAKE3 digest and the outboard
tree together, and write both to a sidecar file. The sidecar is what
"verify", "slice" and "check" prove content against.

The sidecar is written atomically. Without --out it goes next to the
file, or into paths.sidecar_dir when the configuration sets one.`,
		Usage: "verity encode [flags] <file>",
		Examples: []cli.Example{
			{
				Description: "Encode a disk image",
				Command:     "verity encode disk.img",
			},
			{
				Description: "Write the sidecar somewhere else",
				Command:     "verity encode --out /var/lib/verity/disk.img.verity disk.img",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("encode")
			if err != nil {
				return err
			}
			return runEncode(&params, args, cfg, logger, os.Stdout)
		},
	}
}

func runEncode(params *encodeParams, args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	if err := cli.RequireArgs(args, 1, "verity encode [flags] <file>"); err != nil {
		return err
	}
	path := args[0]

	sidecarPath := params.Out
	if sidecarPath == "" {
		if cfg.Paths.SidecarDir != "" {
			if err := os.MkdirAll(cfg.Paths.SidecarDir, 0o755); err != nil {
				return cli.Internal("creating sidecar directory: %w", err)
			}
		}
		sidecarPath = sidecar.PathFor(path, cfg.Paths.SidecarDir)
	}

	record, err := sidecar.Create(path)
	if err != nil {
		return classify(err)
	}
	if err := record.WriteFile(sidecarPath); err != nil {
		return cli.Internal("%w", err)
	}

	result := encodeResult{
		Path:     path,
		Sidecar:  sidecarPath,
		Length:   record.Length,
		Root:     record.Root,
		Digest:   record.Digest,
		Chunks:   record.Chunks(),
		Slices:   record.Slices(),
		Outboard: len(record.Outboard),
	}
	logger.Info("encoded",
		"path", path,
		"sidecar", sidecarPath,
		"length", record.Length,
		"chunks", result.Chunks,
		"outboard_bytes", result.Outboard,
	)

	if done, err := params.EmitJSON(stdout, result); done {
		return err
	}
	fmt.Fprintf(stdout, "%s  %s\n", record.Root, path)
	fmt.Fprintf(stdout, "wrote %s (%s outboard for %s)\n",
		sidecarPath, humanize.IBytes(uint64(result.Outboard)), humanize.IBytes(record.Length))
	return nil
}
