// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/verity/cmd/verity/cli"
	"github.com/bureau-foundation/verity/lib/bao"
	"github.com/bureau-foundation/verity/lib/fileio"
	"github.com/bureau-foundation/verity/lib/sidecar"
)

type verifyParams struct {
	cli.ConfigParams
	cli.JSONOutput
	Sidecar string `json:"sidecar" flag:"sidecar,s" desc:"sidecar written by encode (required)"`
	Offset  uint64 `json:"offset"  flag:"offset"    desc:"content offset of the window; a multiple of 262144 (0x40000)"`
	Root    string `json:"root"    flag:"root"      desc:"trusted root hash in hex (default: the root in the sidecar)"`
}

type verifyResult struct {
	Offset   uint64   `json:"offset"`
	Length   int      `json:"length"`
	Root     bao.Hash `json:"root"`
	Verified bool     `json:"verified"`
	Error    string   `json:"error,omitempty"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Verify one 256 KiB window of content against a sidecar",
		Description: `Prove that the bytes in <range-file> are exactly the 256 KiB
window at --offset of the content the root commits to, using only
the sidecar's outboard tree. The rest of the content is not needed.

The final window of a file may be shorter than 256 KiB; the range
file must hold exactly the bytes of the window.

Prints OK and exits 0 when the window verifies. Prints FAIL and
exits 1 when it does not, including when the offset is not a window
boundary or the range file has the wrong length.`,
		Usage: "verity verify --sidecar <sidecar> [flags] <range-file>",
		Examples: []cli.Example{
			{
				Description: "Verify the second window of a file",
				Command:     "verity verify --sidecar disk.img.verity --offset 0x40000 window.bin",
			},
			{
				Description: "Verify against a root obtained out of band",
				Command:     "verity verify -s disk.img.verity --root af1349b9... window.bin",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			_, logger, err := params.Setup("verify")
			if err != nil {
				return err
			}
			return runVerify(&params, args, logger, os.Stdout)
		},
	}
}

func runVerify(params *verifyParams, args []string, logger *slog.Logger, stdout io.Writer) error {
	if err := cli.RequireArgs(args, 1, "verity verify --sidecar <sidecar> [flags] <range-file>"); err != nil {
		return err
	}
	if params.Sidecar == "" {
		return cli.Validation("--sidecar is required")
	}

	record, err := sidecar.ReadFile(params.Sidecar)
	if err != nil {
		return classify(err)
	}
	root := record.Root
	if params.Root != "" {
		if root, err = parseRoot(params.Root); err != nil {
			return err
		}
	}

	rangeBytes, err := readWindow(args[0])
	if err != nil {
		return err
	}

	result := verifyResult{Offset: params.Offset, Length: len(rangeBytes), Root: root}
	err = bao.VerifySlice(rangeBytes, params.Offset, record.Outboard, root)
	switch {
	case err == nil:
		result.Verified = true
		logger.Debug("window verified", "offset", params.Offset, "length", len(rangeBytes))
	case rejected(err):
		result.Error = err.Error()
		logger.Warn("window rejected", "offset", params.Offset, "error", err)
	default:
		return classify(err)
	}

	if done, err := params.EmitJSON(stdout, result); done {
		if err != nil {
			return err
		}
	} else if result.Verified {
		fmt.Fprintf(stdout, "OK offset=%d length=%d\n", result.Offset, result.Length)
	} else {
		fmt.Fprintf(stdout, "FAIL offset=%d: %s\n", result.Offset, result.Error)
	}

	if !result.Verified {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// readWindow reads a range file, refusing anything larger than one
// window before reading it.
func readWindow(path string) ([]byte, error) {
	file, err := fileio.Open(path)
	if err != nil {
		return nil, cli.FileError(err)
	}
	defer file.Close()

	size, err := file.Size()
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	if size > bao.SliceWidth {
		return nil, cli.Validation("%s holds %d bytes; a window holds at most %d", path, size, bao.SliceWidth)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, cli.Internal("reading %s: %w", path, err)
	}
	return data, nil
}
