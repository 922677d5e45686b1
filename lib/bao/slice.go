// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	lkbao "lukechampine.com/blake3/bao"
)

// ExtractSlice writes the slice for the content window [start,
// start+length) to dst. content is the full content, addressed by
// absolute offset; outboard is the outboard data produced for it.
//
// The window is widened to whole chunks and clamped to the content (see
// [window]). content is seeked once, to the first chunk of the window,
// and then read strictly forward; only the chunks inside the window are
// read from it.
func ExtractSlice(dst io.Writer, content io.ReadSeeker, outboard io.ReaderAt, start, length uint64) error {
	var header [HeaderSize]byte
	if _, err := outboard.ReadAt(header[:], 0); err != nil {
		return readError("outboard header", err)
	}
	contentLength := binary.LittleEndian.Uint64(header[:])
	span := newWindow(contentLength, start, length)
	low, high := span.chunkSpan()

	if _, err := content.Seek(int64(low), io.SeekStart); err != nil {
		return &IOError{Op: fmt.Sprintf("seeking to content offset %d", low), Err: err}
	}

	// The library walks the outboard nodes in order, so it gets a
	// buffered sequential view bounded to the size the header implies.
	nodes := bufio.NewReader(io.NewSectionReader(outboard, 0, int64(OutboardSize(contentLength))))
	sink := &recordingWriter{w: dst}
	if err := lkbao.ExtractSlice(sink, content, nodes, 0, low, high-low); err != nil {
		if sink.err != nil {
			return &IOError{Op: "writing slice", Err: sink.err}
		}
		return readError(fmt.Sprintf("slice input for [%d, %d)", low, high), err)
	}
	return nil
}

// ExtractWindowSlice is ExtractSlice for a caller that holds only the
// window's own content, as a forward-only stream whose first byte is
// at content offset start. start must be a multiple of ChunkSize and
// inside the content, so that the first chunk the extractor needs
// begins exactly where the stream does.
func ExtractWindowSlice(dst io.Writer, windowContent io.Reader, outboard io.ReaderAt, start, length uint64) error {
	if start%ChunkSize != 0 {
		return fmt.Errorf("%w: window offset %d is not a multiple of the %d-byte chunk size",
			ErrMalformed, start, ChunkSize)
	}
	return ExtractSlice(dst, NewForwardSeeker(windowContent, start), outboard, start, length)
}

// recordingWriter remembers the first error of the sink it wraps so
// that a failed write can be told apart from a failed read.
type recordingWriter struct {
	w   io.Writer
	err error
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	count, err := r.w.Write(p)
	if err != nil && r.err == nil {
		r.err = err
	}
	return count, err
}
