// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileio

import (
	"bufio"
	"fmt"
	"os"
)

// BufferSize is the size of the read buffer placed in front of the
// file. Reads into caller buffers at least this large bypass it.
const BufferSize = 64 * 1024

// File is a file opened for sequential reading.
type File struct {
	file   *os.File
	reader *bufio.Reader
}

// Open opens path for sequential reading.
func Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("opening %s: is a directory", path)
	}

	adviseSequential(file)

	return &File{
		file:   file,
		reader: bufio.NewReaderSize(file, BufferSize),
	}, nil
}

// Read reads the next bytes of the file.
func (f *File) Read(p []byte) (int, error) {
	return f.reader.Read(p)
}

// Size returns the current size of the file.
func (f *File) Size() (int64, error) {
	info, err := f.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", f.file.Name(), err)
	}
	return info.Size(), nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.file.Name()
}

// Close closes the file.
func (f *File) Close() error {
	return f.file.Close()
}
