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
	"github.com/bureau-foundation/verity/lib/config"
	"github.com/bureau-foundation/verity/lib/fileio"
	"github.com/bureau-foundation/verity/lib/sidecar"
)

type checkParams struct {
	cli.ConfigParams
	cli.JSONOutput
	Sidecar string `json:"sidecar" flag:"sidecar,s" desc:"sidecar written by encode (default: the file's sidecar path)"`
	Root    string `json:"root"    flag:"root"      desc:"trusted root hash in hex (default: the root in the sidecar)"`
}

type checkResult struct {
	Path     string   `json:"path"`
	Length   uint64   `json:"length"`
	Root     bao.Hash `json:"root"`
	Windows  uint64   `json:"windows"`
	Verified bool     `json:"verified"`
	Error    string   `json:"error,omitempty"`
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Verify a whole file against its sidecar, window by window",
		Description: `Stream the file through the verifier one 256 KiB window at a time,
proving each window against the sidecar's outboard tree and root.
Memory use does not grow with the file.

Prints OK and exits 0 when every window verifies. Prints FAIL and
exits 1 at the first window that does not, or when the file is
longer or shorter than the sidecar records.`,
		Usage: "verity check [flags] <file>",
		Examples: []cli.Example{
			{
				Description: "Check a file against the sidecar next to it",
				Command:     "verity check disk.img",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("check")
			if err != nil {
				return err
			}
			return runCheck(&params, args, cfg, logger, os.Stdout)
		},
	}
}

func runCheck(params *checkParams, args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	if err := cli.RequireArgs(args, 1, "verity check [flags] <file>"); err != nil {
		return err
	}
	path := args[0]

	sidecarPath := params.Sidecar
	if sidecarPath == "" {
		sidecarPath = sidecar.PathFor(path, cfg.Paths.SidecarDir)
	}
	record, err := sidecar.ReadFile(sidecarPath)
	if err != nil {
		return classify(err)
	}
	root := record.Root
	if params.Root != "" {
		if root, err = parseRoot(params.Root); err != nil {
			return err
		}
	}

	content, err := fileio.Open(path)
	if err != nil {
		return cli.FileError(err)
	}
	defer content.Close()

	result := checkResult{Path: path, Length: record.Length, Root: root, Windows: record.Slices()}
	err = bao.VerifyContent(content, record.Outboard, root)
	switch {
	case err == nil:
		result.Verified = true
		logger.Info("content verified", "path", path, "windows", result.Windows)
	case rejected(err):
		result.Error = err.Error()
		logger.Warn("content rejected", "path", path, "error", err)
	default:
		return classify(err)
	}

	if done, err := params.EmitJSON(stdout, result); done {
		if err != nil {
			return err
		}
	} else if result.Verified {
		fmt.Fprintf(stdout, "OK %s (%d windows)\n", path, result.Windows)
	} else {
		fmt.Fprintf(stdout, "FAIL %s: %s\n", path, result.Error)
	}

	if !result.Verified {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
