// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slicebundle

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bureau-foundation/verity/lib/bao"
	"github.com/bureau-foundation/verity/lib/codec"
	"github.com/bureau-foundation/verity/lib/compress"
)

// Version is the bundle format version written by this package.
const Version = 1

// MaxSliceSize bounds the uncompressed slice size a bundle may claim,
// since decompression allocates it up front.
const MaxSliceSize uint64 = 1 << 32

// Bundle is a slice for the content window [Start, Start+Length).
type Bundle struct {
	Version     int                `cbor:"version"`
	Start       uint64             `cbor:"start"`
	Length      uint64             `cbor:"length"`
	Root        bao.Hash           `cbor:"root"`
	Compression compress.Algorithm `cbor:"compression"`
	SliceSize   uint64             `cbor:"slice_size"`
	Payload     []byte             `cbor:"payload"`
}

// Pack wraps slice bytes produced by bao.ExtractSlice for the given
// window.
func Pack(slice []byte, start, length uint64, root bao.Hash, algorithm compress.Algorithm) (*Bundle, error) {
	payload, used, err := compress.Compress(slice, algorithm)
	if err != nil {
		return nil, fmt.Errorf("compressing slice: %w", err)
	}
	return &Bundle{
		Version:     Version,
		Start:       start,
		Length:      length,
		Root:        root,
		Compression: used,
		SliceSize:   uint64(len(slice)),
		Payload:     payload,
	}, nil
}

// Extract reads the window [start, start+length) from content and
// outboard and packs it.
func Extract(content io.ReadSeeker, outboard []byte, root bao.Hash, start, length uint64, algorithm compress.Algorithm) (*Bundle, error) {
	if _, err := bao.ContentLength(outboard); err != nil {
		return nil, err
	}
	var slice bytes.Buffer
	if err := bao.ExtractSlice(&slice, content, bytes.NewReader(outboard), start, length); err != nil {
		return nil, fmt.Errorf("extracting slice [%d, +%d): %w", start, length, err)
	}
	return Pack(slice.Bytes(), start, length, root, algorithm)
}

// Slice returns the uncompressed slice bytes.
func (b *Bundle) Slice() ([]byte, error) {
	if b.Version != Version {
		return nil, fmt.Errorf("unsupported bundle version %d (want %d)", b.Version, Version)
	}
	if b.SliceSize < bao.HeaderSize || b.SliceSize > MaxSliceSize {
		return nil, fmt.Errorf("%w: bundle slice size %d is outside [%d, %d]",
			bao.ErrMalformed, b.SliceSize, bao.HeaderSize, MaxSliceSize)
	}
	slice, err := compress.Decompress(b.Payload, b.Compression, int(b.SliceSize))
	if err != nil {
		return nil, fmt.Errorf("%w: bundle payload: %v", bao.ErrMalformed, err)
	}
	return slice, nil
}

// Decode verifies the bundle against trustedRoot and writes the
// window's content to dst.
func (b *Bundle) Decode(dst io.Writer, trustedRoot bao.Hash) error {
	if b.Root != trustedRoot {
		return fmt.Errorf("%w: bundle was extracted against root %s, not the trusted root %s",
			bao.ErrHashMismatch, b.Root, trustedRoot)
	}
	slice, err := b.Slice()
	if err != nil {
		return err
	}
	reader := bytes.NewReader(slice)
	if err := bao.DecodeSlice(dst, reader, trustedRoot, b.Start, b.Length); err != nil {
		return err
	}
	if reader.Len() != 0 {
		return fmt.Errorf("%w: %d bytes after the end of the slice", bao.ErrMalformed, reader.Len())
	}
	return nil
}

// Write encodes the bundle to w.
func (b *Bundle) Write(w io.Writer) error {
	if err := codec.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return nil
}

// Read decodes one bundle from r.
func Read(r io.Reader) (*Bundle, error) {
	var bundle Bundle
	if err := codec.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decoding bundle: %w", err)
	}
	if bundle.Version != Version {
		return nil, fmt.Errorf("unsupported bundle version %d (want %d)", bundle.Version, Version)
	}
	return &bundle, nil
}
