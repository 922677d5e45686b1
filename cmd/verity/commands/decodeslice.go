// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/verity/cmd/verity/cli"
	"github.com/bureau-foundation/verity/lib/slicebundle"
)

type decodeSliceParams struct {
	cli.ConfigParams
	Root string `json:"root" flag:"root" desc:"trusted root hash in hex (required)"`
	Out  string `json:"out"  flag:"out,o" desc:"write the verified window here instead of stdout"`
}

func decodeSliceCommand() *cli.Command {
	var params decodeSliceParams

	return &cli.Command{
		Name:    "decode-slice",
		Summary: "Verify a slice bundle and write out its window",
		Description: `Decompress a slice bundle, verify every parent node and chunk in
it against the trusted root, and write the window's content.

The root recorded inside the bundle is not trusted: --root must come
from a source the caller already trusts. Nothing is written unless
the whole window verifies.`,
		Usage: "verity decode-slice --root <hex> [flags] <bundle>",
		Examples: []cli.Example{
			{
				Description: "Recover a window",
				Command:     "verity decode-slice --root af1349b9... --out head.bin head.slice",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			_, logger, err := params.Setup("decode-slice")
			if err != nil {
				return err
			}
			return runDecodeSlice(&params, args, logger, os.Stdout)
		},
	}
}

func runDecodeSlice(params *decodeSliceParams, args []string, logger *slog.Logger, stdout io.Writer) error {
	if err := cli.RequireArgs(args, 1, "verity decode-slice --root <hex> [flags] <bundle>"); err != nil {
		return err
	}
	if params.Root == "" {
		return cli.Validation("--root is required")
	}
	root, err := parseRoot(params.Root)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return cli.FileError(err)
	}
	defer file.Close()

	bundle, err := slicebundle.Read(file)
	if err != nil {
		return cli.Validation("%w", err)
	}

	var window bytes.Buffer
	if err := bundle.Decode(&window, root); err != nil {
		return classify(fmt.Errorf("%s: %w", args[0], err))
	}
	logger.Info("slice verified",
		"bundle", args[0],
		"start", bundle.Start,
		"bytes", window.Len(),
	)

	if params.Out == "" {
		if _, err := window.WriteTo(stdout); err != nil {
			return cli.Internal("writing window: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(params.Out, window.Bytes(), 0o644); err != nil {
		return cli.Internal("writing %s: %w", params.Out, err)
	}
	return nil
}
