// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/verity/lib/testutil"
)

// encodeSizes covers empty input, partial and exact blocks, chunk
// boundaries, unbalanced trees, and multi-window content.
var encodeSizes = []int{
	0, 1, 63, 64, 65, 1023, 1024, 1025, 2047, 2048, 2049,
	3072, 3073, 4096, 5000, 8193, 65536, 300000,
	SliceWidth, SliceWidth + 1, 3*SliceWidth + 100,
}

// referenceTree computes the subtree over chunks [low, low+chunks)
// directly from its definition and returns its value along with its
// parent nodes in pre-order.
func referenceTree(content []byte, low, chunks uint64, isRoot bool) ([32]byte, []byte) {
	if chunks == 1 {
		start := low * ChunkSize
		end := min(start+ChunkSize, uint64(len(content)))
		leaf := chunkOutput(content[start:end], low)
		if isRoot {
			return [32]byte(leaf.rootHash()), nil
		}
		return leaf.nodeValue(), nil
	}

	left := leftChunks(chunks)
	leftValue, leftNodes := referenceTree(content, low, left, false)
	rightValue, rightNodes := referenceTree(content, low+left, chunks-left, false)

	parent := parentOutput(leftValue, rightValue)
	nodes := append(append([]byte{}, leftValue[:]...), rightValue[:]...)
	nodes = append(nodes, leftNodes...)
	nodes = append(nodes, rightNodes...)
	if isRoot {
		return [32]byte(parent.rootHash()), nodes
	}
	return parent.nodeValue(), nodes
}

func TestRootMatchesBLAKE3(t *testing.T) {
	for _, size := range encodeSizes {
		content := testutil.Random(size, uint64(size))
		result, err := EncodeBytes(content)
		if err != nil {
			t.Fatalf("size %d: EncodeBytes: %v", size, err)
		}
		if want := Hash(blake3.Sum256(content)); result.Root != want {
			t.Errorf("size %d: root %s, want BLAKE3 %s", size, result.Root, want)
		}
	}
}

func TestOutboardLayout(t *testing.T) {
	for _, size := range encodeSizes {
		content := testutil.Random(size, uint64(size)+1)
		result, err := EncodeBytes(content)
		if err != nil {
			t.Fatalf("size %d: EncodeBytes: %v", size, err)
		}

		if got, want := uint64(len(result.Outboard)), OutboardSize(uint64(size)); got != want {
			t.Fatalf("size %d: outboard is %d bytes, want %d", size, got, want)
		}
		length, err := ContentLength(result.Outboard)
		if err != nil {
			t.Fatalf("size %d: ContentLength: %v", size, err)
		}
		if length != uint64(size) {
			t.Errorf("size %d: header says %d", size, length)
		}

		root, nodes := referenceTree(content, 0, chunkCount(uint64(size)), true)
		if Hash(root) != result.Root {
			t.Errorf("size %d: reference root %x, encoder root %s", size, root, result.Root)
		}
		if !bytes.Equal(nodes, result.Outboard[HeaderSize:]) {
			t.Errorf("size %d: encoder parent nodes are not the reference pre-order layout", size)
		}
	}
}

func TestEmptyStream(t *testing.T) {
	result, err := EncodeBytes(nil)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	const emptyRoot = "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"
	if result.Root.String() != emptyRoot {
		t.Errorf("empty root = %s, want %s", result.Root, emptyRoot)
	}
	if !bytes.Equal(result.Outboard, make([]byte, HeaderSize)) {
		t.Errorf("empty outboard = %x, want %d zero bytes", result.Outboard, HeaderSize)
	}
	if err := VerifySlice(nil, 0, result.Outboard, result.Root); err != nil {
		t.Errorf("VerifySlice of the empty window: %v", err)
	}
}

func TestBufferAndReaderAgree(t *testing.T) {
	content := testutil.Pattern(300000)
	fromBuffer, err := EncodeBytes(content)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	readers := map[string]func() (*Result, error){
		"default buffer": func() (*Result, error) {
			return EncodeReader(bytes.NewReader(content))
		},
		"one-byte reads": func() (*Result, error) {
			return EncodeReader(iotest.OneByteReader(bytes.NewReader(content)))
		},
		"half reads": func() (*Result, error) {
			return EncodeReader(iotest.HalfReader(bytes.NewReader(content)))
		},
		"odd buffer": func() (*Result, error) {
			return EncodeReaderBuffer(bytes.NewReader(content), make([]byte, 1000))
		},
		"tiny buffer": func() (*Result, error) {
			return EncodeReaderBuffer(bytes.NewReader(content), make([]byte, 3))
		},
		"chunk buffer": func() (*Result, error) {
			return EncodeReaderBuffer(bytes.NewReader(content), make([]byte, ChunkSize))
		},
		"data with EOF": func() (*Result, error) {
			return EncodeReader(iotest.DataErrReader(bytes.NewReader(content)))
		},
	}
	for name, encode := range readers {
		t.Run(name, func(t *testing.T) {
			result, err := encode()
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if result.Root != fromBuffer.Root {
				t.Errorf("root %s, buffer path gave %s", result.Root, fromBuffer.Root)
			}
			if !bytes.Equal(result.Outboard, fromBuffer.Outboard) {
				t.Error("outboard data differs from the buffer path")
			}
		})
	}
}

func TestEncoderWriteSplits(t *testing.T) {
	content := testutil.Random(10*ChunkSize+17, 3)
	want, err := EncodeBytes(content)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	// Writes that end exactly on chunk boundaries are the case where
	// a chunk must be held open until more input arrives.
	for _, step := range []int{1, ChunkSize, ChunkSize - 1, ChunkSize + 1, 2 * ChunkSize} {
		encoder := NewEncoder()
		for start := 0; start < len(content); start += step {
			encoder.Write(content[start:min(start+step, len(content))])
		}
		if encoder.Length() != uint64(len(content)) {
			t.Errorf("step %d: Length = %d, want %d", step, encoder.Length(), len(content))
		}
		var outboard bytes.Buffer
		root, err := encoder.Finalize(&outboard)
		if err != nil {
			t.Fatalf("step %d: Finalize: %v", step, err)
		}
		if root != want.Root || !bytes.Equal(outboard.Bytes(), want.Outboard) {
			t.Errorf("step %d: result differs from a single write", step)
		}
	}
}

func TestDistinctInputsDistinctRoots(t *testing.T) {
	first := testutil.Pattern(1 << 20)
	second := bytes.Clone(first)
	second[len(second)-1] ^= 0xff

	firstResult, err := EncodeBytes(first)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	secondResult, err := EncodeBytes(second)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	if firstResult.Root == secondResult.Root {
		t.Error("inputs differing in the last byte produced equal roots")
	}
	if blake3.Sum256(first) == blake3.Sum256(second) {
		t.Error("inputs differing in the last byte produced equal digests")
	}
}

func TestFinalizeTwice(t *testing.T) {
	encoder := NewEncoder()
	encoder.Write([]byte("content"))
	if _, err := encoder.Finalize(io.Discard); err != nil {
		t.Fatalf("first Finalize: %v", err)
	}
	if _, err := encoder.Finalize(io.Discard); !errors.Is(err, ErrFinalize) {
		t.Errorf("second Finalize: error = %v, want ErrFinalize", err)
	}
	if _, err := encoder.Write([]byte("more")); !errors.Is(err, ErrFinalize) {
		t.Errorf("Write after Finalize: error = %v, want ErrFinalize", err)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestFinalizeSinkFailure(t *testing.T) {
	failure := errors.New("sink closed")
	encoder := NewEncoder()
	encoder.Write(testutil.Pattern(5000))

	_, err := encoder.Finalize(failingWriter{failure})
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want *IOError", err)
	}
	if !errors.Is(err, failure) {
		t.Errorf("error = %v, want the sink's error in the chain", err)
	}
}

func TestEncodeReadFailure(t *testing.T) {
	failure := errors.New("device gone")
	reader := io.MultiReader(bytes.NewReader(testutil.Pattern(4000)), iotest.ErrReader(failure))

	_, err := EncodeReader(reader)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want *IOError", err)
	}
	if !errors.Is(err, failure) {
		t.Errorf("error = %v, want the reader's error in the chain", err)
	}
}

func TestEncodeEmptyBuffer(t *testing.T) {
	_, err := EncodeReaderBuffer(bytes.NewReader(nil), nil)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestEncodeFile(t *testing.T) {
	content := testutil.Random(SliceWidth+5000, 11)
	path := testutil.WriteFile(t, "content", content)

	result, err := EncodeFile(path)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	want, err := EncodeBytes(content)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	if result.Root != want.Root || !bytes.Equal(result.Outboard, want.Outboard) {
		t.Error("EncodeFile differs from EncodeBytes over the same content")
	}

	_, err = EncodeFile(path + ".missing")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("missing file: error = %v, want *IOError", err)
	}
}

func BenchmarkEncode(b *testing.B) {
	content := testutil.Random(16<<20, 1)
	b.SetBytes(int64(len(content)))
	for b.Loop() {
		if _, err := EncodeBytes(content); err != nil {
			b.Fatal(err)
		}
	}
}
