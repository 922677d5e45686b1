// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sidecar

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/verity/lib/bao"
	"github.com/bureau-foundation/verity/lib/codec"
	"github.com/bureau-foundation/verity/lib/digest"
	"github.com/bureau-foundation/verity/lib/fileio"
)

// Version is the record format version written by this package.
const Version = 1

// Extension is appended to a content file name to form the default
// sidecar path.
const Extension = ".verity"

// Record is the on-disk sidecar.
type Record struct {
	Version  int           `cbor:"version"`
	Length   uint64        `cbor:"length"`
	Root     bao.Hash      `cbor:"root"`
	Digest   digest.Digest `cbor:"digest"`
	Outboard []byte        `cbor:"outboard"`
}

// Build reads r to the end once, feeding the digest accumulator and
// the tree encoder together.
func Build(r io.Reader) (*Record, error) {
	hasher := digest.NewHasher()
	encoder := bao.NewEncoder()

	buffer := make([]byte, bao.EncodeBufferSize)
	if _, err := io.CopyBuffer(io.MultiWriter(hasher, encoder), r, buffer); err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	record := &Record{
		Version: Version,
		Length:  encoder.Length(),
		Digest:  hasher.Sum(),
	}
	var outboard bytes.Buffer
	outboard.Grow(int(bao.OutboardSize(record.Length)))
	root, err := encoder.Finalize(&outboard)
	if err != nil {
		return nil, fmt.Errorf("finalizing outboard data: %w", err)
	}
	record.Root = root
	record.Outboard = outboard.Bytes()
	return record, nil
}

// Create builds a record for the file at contentPath.
func Create(contentPath string) (*Record, error) {
	file, err := fileio.Open(contentPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	record, err := Build(file)
	if err != nil {
		return nil, fmt.Errorf("building sidecar for %s: %w", contentPath, err)
	}
	return record, nil
}

// PathFor returns the sidecar path for contentPath: alongside it, or
// inside directory when directory is non-empty.
func PathFor(contentPath, directory string) string {
	if directory == "" {
		return contentPath + Extension
	}
	return filepath.Join(directory, filepath.Base(contentPath)+Extension)
}

// Validate checks that the record is internally consistent: a known
// version, and outboard data that matches the recorded length. Root
// and Digest come from different hash constructions and are not
// compared with each other; each is checked only against content.
func (r *Record) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("unsupported sidecar version %d (want %d)", r.Version, Version)
	}
	length, err := bao.ContentLength(r.Outboard)
	if err != nil {
		return fmt.Errorf("sidecar outboard data: %w", err)
	}
	if length != r.Length {
		return fmt.Errorf("sidecar records length %d but its outboard header says %d", r.Length, length)
	}
	return nil
}

// Write encodes the record to w.
func (r *Record) Write(w io.Writer) error {
	if err := codec.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encoding sidecar: %w", err)
	}
	return nil
}

// Decode reads one record from r and validates it.
func Decode(r io.Reader) (*Record, error) {
	var record Record
	if err := codec.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding sidecar: %w", err)
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return &record, nil
}

// WriteFile writes the record to path atomically: a temporary file in
// the same directory is written, synced, and renamed into place.
func (r *Record) WriteFile(path string) error {
	data, err := codec.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding sidecar: %w", err)
	}

	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary sidecar: %w", err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("syncing %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Chmod(temporaryPath, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("installing sidecar %s: %w", path, err)
	}
	return nil
}

// ReadFile loads and validates the sidecar at path.
func ReadFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	var record Record
	if err := codec.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding sidecar %s: %w", path, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &record, nil
}

// Chunks returns the number of tree leaves.
func (r *Record) Chunks() uint64 {
	return (bao.OutboardSize(r.Length)-bao.HeaderSize)/bao.ParentSize + 1
}

// Slices returns the number of SliceWidth windows.
func (r *Record) Slices() uint64 {
	return bao.SliceCount(r.Length)
}
