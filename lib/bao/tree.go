// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
)

// Format constants. These match the established bao outboard format;
// stored outboard files are only interoperable while they hold.
const (
	// ChunkSize is the number of content bytes under each leaf.
	ChunkSize = 1024

	// HeaderSize is the size of the little-endian content length
	// that starts every outboard file and every slice.
	HeaderSize = 8

	// ParentSize is the size of a serialized parent node.
	ParentSize = 64

	// SliceWidth is the window size used by [VerifySlice]. Slice
	// offsets must be multiples of it.
	SliceWidth = 256 * 1024

	// EncodeBufferSize is the read buffer used by the encode helpers.
	// It affects throughput only.
	EncodeBufferSize = 256 * 1024
)

// chunkCount returns the number of leaves for a stream of the given
// length. The empty stream has one (empty) chunk.
func chunkCount(contentLength uint64) uint64 {
	count := contentLength / ChunkSize
	if contentLength%ChunkSize != 0 || count == 0 {
		count++
	}
	return count
}

// leftChunks returns the number of chunks in the left subtree of a
// parent over chunks > 1 leaves: the largest power of two strictly
// less than chunks.
func leftChunks(chunks uint64) uint64 {
	return 1 << (bits.Len64(chunks-1) - 1)
}

// OutboardSize returns the exact size of the outboard data for a
// stream of contentLength bytes.
func OutboardSize(contentLength uint64) uint64 {
	return HeaderSize + ParentSize*(chunkCount(contentLength)-1)
}

// SliceCount returns how many SliceWidth windows cover a stream of
// contentLength bytes. The empty stream has one empty window.
func SliceCount(contentLength uint64) uint64 {
	count := contentLength / SliceWidth
	if contentLength%SliceWidth != 0 || count == 0 {
		count++
	}
	return count
}

// ContentLength reads the content length from an outboard header and
// checks that the outboard holds exactly the nodes that length
// implies.
func ContentLength(outboard []byte) (uint64, error) {
	if len(outboard) < HeaderSize {
		return 0, fmt.Errorf("%w: outboard data is %d bytes, shorter than the %d-byte header",
			ErrMalformed, len(outboard), HeaderSize)
	}
	contentLength := binary.LittleEndian.Uint64(outboard[:HeaderSize])
	if want := OutboardSize(contentLength); uint64(len(outboard)) != want {
		return 0, fmt.Errorf("%w: outboard data is %d bytes, header length %d requires %d",
			ErrMalformed, len(outboard), contentLength, want)
	}
	return contentLength, nil
}

func putHeader(header []byte, contentLength uint64) {
	binary.LittleEndian.PutUint64(header, contentLength)
}

// window is the chunk range a slice covers. firstChunk and lastChunk
// are inclusive and always inside the tree: a zero-length request
// still covers the chunk at its start, and a start at or beyond the
// end of the content covers the final chunk so that a decoder can
// authenticate the length.
type window struct {
	contentLength uint64
	chunks        uint64
	firstChunk    uint64
	lastChunk     uint64

	// start and end bound the content bytes a decoder emits.
	start uint64
	end   uint64
}

func newWindow(contentLength, start, length uint64) window {
	chunks := chunkCount(contentLength)

	span := max(length, 1)
	last := start + span - 1
	if last < start {
		last = math.MaxUint64
	}

	end := start + length
	if end < start || end > contentLength {
		end = contentLength
	}

	return window{
		contentLength: contentLength,
		chunks:        chunks,
		firstChunk:    min(start/ChunkSize, chunks-1),
		lastChunk:     min(last/ChunkSize, chunks-1),
		start:         start,
		end:           end,
	}
}

// chunkSpan returns the content byte range [low, high) of the chunks
// the window covers.
func (w *window) chunkSpan() (low, high uint64) {
	low = w.firstChunk * ChunkSize
	high = w.contentLength
	if w.lastChunk < w.chunks-1 {
		high = (w.lastChunk + 1) * ChunkSize
	}
	return low, high
}
