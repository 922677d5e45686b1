// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"encoding/binary"

	"lukechampine.com/blake3/guts"
)

// output is a tree node before its final compression. The same node
// yields a chaining value when it sits under a parent, or the root
// hash when it is the top of the tree, so the choice waits until the
// caller knows which.
type output struct {
	node guts.Node
}

// nodeValue returns the 32-byte chaining value of a non-root node.
func (o output) nodeValue() [32]byte {
	return cvBytes(guts.ChainingValue(o.node))
}

// rootHash returns the root hash. Only chunk 0 and parent nodes can be
// a root, and both carry counter zero.
func (o output) rootHash() Hash {
	root := o.node
	root.Flags |= guts.FlagRoot
	return Hash(cvBytes(guts.ChainingValue(root)))
}

// chunkOutput compresses one chunk of at most ChunkSize bytes. Only
// the empty stream has an empty chunk.
func chunkOutput(data []byte, chunkIndex uint64) output {
	return output{node: guts.CompressChunk(data, &guts.IV, chunkIndex, 0)}
}

// parentOutput joins two child chaining values. The 64 bytes left||right
// are exactly what the outboard stores for the node.
func parentOutput(left, right [32]byte) output {
	return output{node: guts.ParentNode(cvWords(left), cvWords(right), &guts.IV, 0)}
}

func cvWords(value [32]byte) [8]uint32 {
	var words [8]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(value[4*i:])
	}
	return words
}

func cvBytes(words [8]uint32) [32]byte {
	var value [32]byte
	for i, word := range words {
		binary.LittleEndian.PutUint32(value[4*i:], word)
	}
	return value
}
