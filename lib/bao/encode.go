// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/verity/lib/fileio"
)

// Result is the output of a complete encode: the tree root and the
// outboard data that proves slices against it.
type Result struct {
	Root     Hash
	Outboard []byte
}

// Encoder builds the outboard tree incrementally. Beyond the outboard
// nodes themselves it holds one chunk buffer and one chaining value
// per tree level, so its working state is O(log n) in the stream
// length.
//
// Parent nodes complete in post-order as the stream advances. They are
// recorded in that order and rearranged into the pre-order outboard
// layout once Finalize knows the total length.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	chunk       [ChunkSize]byte
	chunkLength int
	chunkIndex  uint64

	// stack holds the chaining values of completed subtrees that are
	// still waiting for a right sibling, largest first.
	stack [][32]byte

	// postOrder holds every parent node emitted so far.
	postOrder []byte

	length    uint64
	finalized bool
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Write feeds content into the tree. It never fails before Finalize;
// afterwards it returns ErrFinalize.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.finalized {
		return 0, fmt.Errorf("%w: write after finalize", ErrFinalize)
	}
	written := len(p)
	for len(p) > 0 {
		// A full chunk is only closed once more input arrives: the
		// last chunk of the stream may need the ROOT flag.
		if e.chunkLength == ChunkSize {
			closed := chunkOutput(e.chunk[:], e.chunkIndex)
			e.pushChunk(closed.nodeValue())
			e.chunkIndex++
			e.chunkLength = 0
		}
		copied := copy(e.chunk[e.chunkLength:], p)
		e.chunkLength += copied
		e.length += uint64(copied)
		p = p[copied:]
	}
	return written, nil
}

// pushChunk merges a closed chunk into the stack. Every trailing zero
// bit of the completed chunk count is a complete subtree whose two
// halves can be joined.
func (e *Encoder) pushChunk(chainingValue [32]byte) {
	completed := e.chunkIndex + 1
	for completed&1 == 0 {
		left := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		parent := e.emitParent(left, chainingValue)
		chainingValue = parent.nodeValue()
		completed >>= 1
	}
	e.stack = append(e.stack, chainingValue)
}

func (e *Encoder) emitParent(left, right [32]byte) output {
	e.postOrder = append(e.postOrder, left[:]...)
	e.postOrder = append(e.postOrder, right[:]...)
	return parentOutput(left, right)
}

// Length returns the number of content bytes written so far.
func (e *Encoder) Length() uint64 {
	return e.length
}

// Finalize closes the tree, writes the complete outboard data (header
// and pre-order parent nodes) to out, and returns the root hash.
// Finalize may be called once. A failed write to out leaves out in an
// unspecified state; encoding is not resumable and the caller must
// start over.
func (e *Encoder) Finalize(out io.Writer) (Hash, error) {
	if e.finalized {
		return Hash{}, fmt.Errorf("%w: already finalized", ErrFinalize)
	}
	e.finalized = true

	// Join the right spine from the deepest subtree up to the root.
	node := chunkOutput(e.chunk[:e.chunkLength], e.chunkIndex)
	for i := len(e.stack) - 1; i >= 0; i-- {
		node = e.emitParent(e.stack[i], node.nodeValue())
	}
	root := node.rootHash()
	e.stack = nil

	chunks := e.chunkIndex + 1
	if want := ParentSize * (chunks - 1); uint64(len(e.postOrder)) != want {
		return Hash{}, fmt.Errorf("%w: recorded %d bytes of parent nodes for %d chunks, want %d",
			ErrFinalize, len(e.postOrder), chunks, want)
	}

	outboard := make([]byte, HeaderSize, HeaderSize+len(e.postOrder))
	putHeader(outboard, e.length)
	outboard = appendPreOrder(outboard, e.postOrder, chunks)
	e.postOrder = nil

	if _, err := out.Write(outboard); err != nil {
		return Hash{}, &IOError{Op: "writing outboard data", Err: err}
	}
	return root, nil
}

// appendPreOrder appends the parent nodes of a subtree over chunks
// leaves in pre-order, given the same nodes in post-order. Post-order
// is left subtree, right subtree, node; pre-order is node, left,
// right.
func appendPreOrder(dst, postOrder []byte, chunks uint64) []byte {
	if chunks <= 1 {
		return dst
	}
	left := leftChunks(chunks)
	split := ParentSize * (left - 1)
	nodeStart := uint64(len(postOrder)) - ParentSize

	dst = append(dst, postOrder[nodeStart:]...)
	dst = appendPreOrder(dst, postOrder[:split], left)
	return appendPreOrder(dst, postOrder[split:nodeStart], chunks-left)
}

// EncodeReader encodes everything r produces using a freshly allocated
// EncodeBufferSize read buffer.
func EncodeReader(r io.Reader) (*Result, error) {
	return EncodeReaderBuffer(r, make([]byte, EncodeBufferSize))
}

// EncodeReaderBuffer encodes everything r produces, reading through
// the caller-owned scratch buffer. The buffer size affects throughput
// only; the result is identical for any non-empty buffer.
func EncodeReaderBuffer(r io.Reader, buffer []byte) (*Result, error) {
	if len(buffer) == 0 {
		return nil, fmt.Errorf("%w: empty read buffer", ErrMalformed)
	}

	encoder := NewEncoder()
	for {
		count, err := r.Read(buffer)
		if count > 0 {
			// Write cannot fail before Finalize.
			encoder.Write(buffer[:count])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &IOError{Op: "reading content", Err: err}
		}
	}

	var outboard bytes.Buffer
	outboard.Grow(int(OutboardSize(encoder.Length())))
	root, err := encoder.Finalize(&outboard)
	if err != nil {
		return nil, err
	}
	return &Result{Root: root, Outboard: outboard.Bytes()}, nil
}

// EncodeBytes encodes an in-memory buffer. It produces the same result
// as EncodeReader over the same bytes.
func EncodeBytes(data []byte) (*Result, error) {
	encoder := NewEncoder()
	encoder.Write(data)

	var outboard bytes.Buffer
	outboard.Grow(int(OutboardSize(uint64(len(data)))))
	root, err := encoder.Finalize(&outboard)
	if err != nil {
		return nil, err
	}
	return &Result{Root: root, Outboard: outboard.Bytes()}, nil
}

// EncodeFile encodes the file at path.
func EncodeFile(path string) (*Result, error) {
	file, err := fileio.Open(path)
	if err != nil {
		return nil, &IOError{Op: "opening content", Err: err}
	}
	defer file.Close()

	result, err := EncodeReader(file)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	return result, nil
}
