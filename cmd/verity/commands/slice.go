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
	"github.com/bureau-foundation/verity/lib/compress"
	"github.com/bureau-foundation/verity/lib/config"
	"github.com/bureau-foundation/verity/lib/sidecar"
	"github.com/bureau-foundation/verity/lib/slicebundle"
)

type sliceParams struct {
	cli.ConfigParams
	cli.JSONOutput
	Sidecar     string `json:"sidecar"     flag:"sidecar,s"   desc:"sidecar written by encode (default: the file's sidecar path)"`
	Start       uint64 `json:"start"       flag:"start"       desc:"content offset of the window"`
	Length      uint64 `json:"length"      flag:"length"      desc:"window length in bytes" default:"262144"`
	Out         string `json:"out"         flag:"out,o"       desc:"bundle output path (required)"`
	Compression string `json:"compression" flag:"compression" desc:"payload compression: none, lz4, zstd, auto (default: slice.compression)"`
}

type sliceResult struct {
	Out         string             `json:"out"`
	Start       uint64             `json:"start"`
	Length      uint64             `json:"length"`
	Root        bao.Hash           `json:"root"`
	Compression compress.Algorithm `json:"compression"`
	SliceSize   uint64             `json:"slice_bytes"`
	PayloadSize int                `json:"payload_bytes"`
}

func sliceCommand() *cli.Command {
	var params sliceParams

	return &cli.Command{
		Name:    "slice",
		Summary: "Extract a verifiable slice bundle for a window of a file",
		Description: `Extract the parent nodes and chunks that prove the window
[--start, --start+--length) of <file>, and write them as a compressed
slice bundle. Anyone holding the bundle and the trusted root can
recover and verify the window with "verity decode-slice", without the
rest of the file.

The window is clamped to the end of the content. An empty window
still carries the chunk containing its start.`,
		Usage: "verity slice --out <bundle> [flags] <file>",
		Examples: []cli.Example{
			{
				Description: "Bundle the first MiB of a disk image",
				Command:     "verity slice --length 1048576 --out head.slice disk.img",
			},
			{
				Description: "Bundle without compression",
				Command:     "verity slice --start 0x40000 --compression none --out w1.slice disk.img",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("slice")
			if err != nil {
				return err
			}
			return runSlice(&params, args, cfg, logger, os.Stdout)
		},
	}
}

func runSlice(params *sliceParams, args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	if err := cli.RequireArgs(args, 1, "verity slice --out <bundle> [flags] <file>"); err != nil {
		return err
	}
	if params.Out == "" {
		return cli.Validation("--out is required")
	}
	path := args[0]

	algorithm, err := cfg.Compression()
	if err != nil {
		return cli.Validation("%w", err)
	}
	if params.Compression != "" {
		if algorithm, err = compress.Parse(params.Compression); err != nil {
			return cli.Validation("--compression: %w", err)
		}
	}

	sidecarPath := params.Sidecar
	if sidecarPath == "" {
		sidecarPath = sidecar.PathFor(path, cfg.Paths.SidecarDir)
	}
	record, err := sidecar.ReadFile(sidecarPath)
	if err != nil {
		return classify(err)
	}

	// Extraction seeks to each chunk, so this is a plain file rather
	// than a buffered sequential reader.
	content, err := os.Open(path)
	if err != nil {
		return cli.FileError(err)
	}
	defer content.Close()

	bundle, err := slicebundle.Extract(content, record.Outboard, record.Root, params.Start, params.Length, algorithm)
	if err != nil {
		return classify(err)
	}
	if err := writeBundle(params.Out, bundle); err != nil {
		return err
	}

	result := sliceResult{
		Out:         params.Out,
		Start:       bundle.Start,
		Length:      bundle.Length,
		Root:        bundle.Root,
		Compression: bundle.Compression,
		SliceSize:   bundle.SliceSize,
		PayloadSize: len(bundle.Payload),
	}
	logger.Info("slice extracted",
		"path", path,
		"start", bundle.Start,
		"length", bundle.Length,
		"compression", bundle.Compression.String(),
		"slice_bytes", bundle.SliceSize,
		"payload_bytes", len(bundle.Payload),
	)

	if done, err := params.EmitJSON(stdout, result); done {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s: window [%d, %d), %s slice as %s %s\n",
		params.Out, bundle.Start, bundle.Start+bundle.Length,
		humanize.IBytes(bundle.SliceSize), humanize.IBytes(uint64(len(bundle.Payload))), bundle.Compression)
	return nil
}

func writeBundle(path string, bundle *slicebundle.Bundle) error {
	file, err := os.Create(path)
	if err != nil {
		return cli.FileError(err)
	}
	if err := bundle.Write(file); err != nil {
		file.Close()
		return cli.Internal("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return cli.Internal("closing %s: %w", path, err)
	}
	return nil
}
