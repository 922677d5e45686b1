// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	lkbao "lukechampine.com/blake3/bao"
)

// DecodeSlice reads a slice produced by [ExtractSlice] for the window
// [start, start+length), verifies it against the trusted root, and
// writes the window's content bytes to dst.
//
// Every parent node and chunk is checked before any byte beneath it
// is written, so dst only ever receives verified content. On failure,
// dst may have received a verified prefix of the window; callers that
// need all-or-nothing semantics should buffer (see [VerifySlice]).
//
// The content length in the slice header is authenticated only as far
// as the tree shape along the verified path depends on it; it is fully
// authenticated when the window includes the final chunk.
func DecodeSlice(dst io.Writer, slice io.Reader, root Hash, start, length uint64) error {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(slice, header[:]); err != nil {
		return readError("slice header", err)
	}
	contentLength := binary.LittleEndian.Uint64(header[:])

	// The empty tree is a single empty chunk that the slice does not
	// carry; its root is still checked.
	if contentLength == 0 {
		if empty := chunkOutput(nil, 0); empty.rootHash() != root {
			return fmt.Errorf("%w: empty content", ErrHashMismatch)
		}
		return nil
	}

	span := newWindow(contentLength, start, length)
	low, high := span.chunkSpan()
	sink := &trimmingWriter{w: dst, position: low, start: span.start, end: span.end}

	ok, err := lkbao.DecodeSlice(sink, io.MultiReader(bytes.NewReader(header[:]), slice), 0, low, high-low, [32]byte(root))
	switch {
	case sink.err != nil:
		return &IOError{Op: "writing decoded content", Err: sink.err}
	case err != nil:
		return readError(fmt.Sprintf("slice for [%d, %d)", low, high), err)
	case !ok:
		return fmt.Errorf("%w: slice for [%d, %d)", ErrHashMismatch, low, high)
	}
	return nil
}

// trimmingWriter receives verified whole chunks starting at content
// offset position and passes on only the bytes inside [start, end).
type trimmingWriter struct {
	w          io.Writer
	position   uint64
	start, end uint64
	err        error
}

func (t *trimmingWriter) Write(p []byte) (int, error) {
	chunkStart := t.position
	t.position += uint64(len(p))

	low := max(chunkStart, t.start)
	high := min(t.position, t.end)
	if low >= high {
		return len(p), nil
	}
	if _, err := t.w.Write(p[low-chunkStart : high-chunkStart]); err != nil {
		t.err = err
		return 0, err
	}
	return len(p), nil
}
