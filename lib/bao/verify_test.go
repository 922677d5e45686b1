// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/bureau-foundation/verity/lib/testutil"
)

func encode(t *testing.T, content []byte) *Result {
	t.Helper()
	result, err := EncodeBytes(content)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	return result
}

// windowAt returns the SliceWidth window of content at offset.
func windowAt(content []byte, offset uint64) []byte {
	return content[offset:min(offset+SliceWidth, uint64(len(content)))]
}

func TestVerifySliceScenario(t *testing.T) {
	content := testutil.Pattern(300000)
	result := encode(t, content)

	if err := VerifySlice(content[:SliceWidth], 0, result.Outboard, result.Root); err != nil {
		t.Fatalf("VerifySlice with the correct root: %v", err)
	}

	corrupted := bytes.Clone(result.Outboard)
	corrupted[5] ^= 0xff
	err := VerifySlice(content[:SliceWidth], 0, corrupted, result.Root)
	if err == nil {
		t.Fatal("VerifySlice accepted corrupted outboard data")
	}
	if !errors.Is(err, ErrMalformed) && !errors.Is(err, ErrHashMismatch) {
		t.Errorf("error = %v, want ErrMalformed or ErrHashMismatch", err)
	}
}

func TestVerifyEveryWindow(t *testing.T) {
	for _, size := range []int{1, 1024, 5000, SliceWidth - 1, SliceWidth, SliceWidth + 1, 3*SliceWidth + 100} {
		content := testutil.Random(size, uint64(size))
		result := encode(t, content)
		for offset := uint64(0); offset < uint64(size); offset += SliceWidth {
			if err := VerifySlice(windowAt(content, offset), offset, result.Outboard, result.Root); err != nil {
				t.Errorf("size %d offset %d: %v", size, offset, err)
			}
		}
	}
}

func TestVerifySliceTampering(t *testing.T) {
	content := testutil.Random(3*SliceWidth+100, 5)
	result := encode(t, content)
	lastOffset := uint64(3 * SliceWidth)

	tests := []struct {
		name     string
		window   []byte
		offset   uint64
		outboard []byte
		root     Hash
	}{
		{
			name:     "first byte of window",
			window:   testutil.FlipBit(windowAt(content, 0), 0),
			offset:   0,
			outboard: result.Outboard,
			root:     result.Root,
		},
		{
			name:     "middle of interior window",
			window:   testutil.FlipBit(windowAt(content, SliceWidth), 100000),
			offset:   SliceWidth,
			outboard: result.Outboard,
			root:     result.Root,
		},
		{
			name:     "last byte of final window",
			window:   testutil.FlipBit(windowAt(content, lastOffset), 99),
			offset:   lastOffset,
			outboard: result.Outboard,
			root:     result.Root,
		},
		{
			name:     "root parent node",
			window:   windowAt(content, SliceWidth),
			offset:   SliceWidth,
			outboard: testutil.FlipBit(result.Outboard, HeaderSize+10),
			root:     result.Root,
		},
		{
			name:     "deep parent node",
			window:   windowAt(content, 0),
			offset:   0,
			outboard: testutil.FlipBit(result.Outboard, HeaderSize+ParentSize+40),
			root:     result.Root,
		},
		{
			name:     "root hash",
			window:   windowAt(content, 0),
			offset:   0,
			outboard: result.Outboard,
			root:     Hash(testutil.FlipBit(result.Root[:], 31)),
		},
		{
			name:     "window from another offset",
			window:   windowAt(content, 0),
			offset:   SliceWidth,
			outboard: result.Outboard,
			root:     result.Root,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := VerifySlice(test.window, test.offset, test.outboard, test.root)
			if !errors.Is(err, ErrHashMismatch) {
				t.Errorf("error = %v, want ErrHashMismatch", err)
			}
		})
	}
}

func TestVerifySliceMalformed(t *testing.T) {
	content := testutil.Random(3*SliceWidth+100, 9)
	result := encode(t, content)

	tests := []struct {
		name     string
		window   []byte
		offset   uint64
		outboard []byte
	}{
		{"misaligned offset", windowAt(content, 0), 1024, result.Outboard},
		{"offset beyond final window", nil, 4 * SliceWidth, result.Outboard},
		{"offset past end", nil, 8 * SliceWidth, result.Outboard},
		{"window too short", windowAt(content, 0)[:SliceWidth-1], 0, result.Outboard},
		{"window too long", content[:SliceWidth+1], 0, result.Outboard},
		{"final window at interior offset", content[3*SliceWidth:], 2 * SliceWidth, result.Outboard},
		{"truncated outboard", windowAt(content, 0), 0, result.Outboard[:len(result.Outboard)-1]},
		{"outboard missing header", windowAt(content, 0), 0, result.Outboard[:4]},
		{"outboard with trailing node", windowAt(content, 0), 0, append(bytes.Clone(result.Outboard), make([]byte, ParentSize)...)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := VerifySlice(test.window, test.offset, test.outboard, result.Root)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestVerifySliceHeaderLength(t *testing.T) {
	content := testutil.Random(2*SliceWidth+75000, 19)
	result := encode(t, content)

	// 599288 becomes 599289: still 586 chunks, so the tree shape holds
	// and only the final chunk's length changes.
	altered := bytes.Clone(result.Outboard)
	altered[0] ^= 1
	if _, err := ContentLength(altered); err != nil {
		t.Fatalf("ContentLength: %v", err)
	}

	for _, offset := range []uint64{0, SliceWidth} {
		if err := VerifySlice(windowAt(content, offset), offset, altered, result.Root); err != nil {
			t.Errorf("offset %d: window off the final chunk's path: %v", offset, err)
		}
	}

	last := uint64(2 * SliceWidth)
	if err := VerifySlice(windowAt(content, last), last, altered, result.Root); !errors.Is(err, ErrMalformed) {
		t.Errorf("final window at its true length: error = %v, want ErrMalformed", err)
	}
	padded := append(bytes.Clone(windowAt(content, last)), 0)
	if err := VerifySlice(padded, last, altered, result.Root); !errors.Is(err, ErrHashMismatch) {
		t.Errorf("final window at the altered length: error = %v, want ErrHashMismatch", err)
	}
	if err := VerifyContent(bytes.NewReader(content), altered, result.Root); !errors.Is(err, ErrMalformed) {
		t.Errorf("VerifyContent: error = %v, want ErrMalformed", err)
	}
}

func TestVerifySliceDoesNotModifyInput(t *testing.T) {
	content := testutil.Random(SliceWidth+10, 13)
	result := encode(t, content)
	window := bytes.Clone(windowAt(content, 0))
	outboard := bytes.Clone(result.Outboard)

	if err := VerifySlice(window, 0, outboard, result.Root); err != nil {
		t.Fatalf("VerifySlice: %v", err)
	}
	if !bytes.Equal(window, windowAt(content, 0)) || !bytes.Equal(outboard, result.Outboard) {
		t.Error("VerifySlice modified its inputs")
	}
}

func TestExpectedWindowLength(t *testing.T) {
	tests := []struct {
		contentLength uint64
		offset        uint64
		want          uint64
		wantErr       bool
	}{
		{0, 0, 0, false},
		{0, SliceWidth, 0, true},
		{1, 0, 1, false},
		{SliceWidth, 0, SliceWidth, false},
		{SliceWidth, SliceWidth, 0, true},
		{SliceWidth + 1, SliceWidth, 1, false},
		{3*SliceWidth + 100, 3 * SliceWidth, 100, false},
		{3*SliceWidth + 100, 1, 0, true},
	}
	for _, test := range tests {
		got, err := ExpectedWindowLength(test.contentLength, test.offset)
		if test.wantErr {
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("ExpectedWindowLength(%d, %d): error = %v, want ErrMalformed",
					test.contentLength, test.offset, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExpectedWindowLength(%d, %d): %v", test.contentLength, test.offset, err)
			continue
		}
		if got != test.want {
			t.Errorf("ExpectedWindowLength(%d, %d) = %d, want %d",
				test.contentLength, test.offset, got, test.want)
		}
	}
}

func TestVerifyContent(t *testing.T) {
	for _, size := range []int{0, 1, 5000, SliceWidth, 3*SliceWidth + 100} {
		content := testutil.Random(size, uint64(size)+21)
		result := encode(t, content)
		if err := VerifyContent(bytes.NewReader(content), result.Outboard, result.Root); err != nil {
			t.Errorf("size %d: %v", size, err)
		}
		if err := VerifyContent(iotest.HalfReader(bytes.NewReader(content)), result.Outboard, result.Root); err != nil {
			t.Errorf("size %d half reads: %v", size, err)
		}
	}
}

func TestVerifyContentFailures(t *testing.T) {
	content := testutil.Random(2*SliceWidth+3000, 17)
	result := encode(t, content)
	readFailure := errors.New("network reset")

	tests := []struct {
		name    string
		content io.Reader
		want    error
	}{
		{"tampered", bytes.NewReader(testutil.FlipBit(content, SliceWidth+7)), ErrHashMismatch},
		{"short", bytes.NewReader(content[:len(content)-1]), ErrMalformed},
		{"trailing data", bytes.NewReader(append(bytes.Clone(content), 0)), ErrMalformed},
		{"read failure", io.MultiReader(bytes.NewReader(content[:1000]), iotest.ErrReader(readFailure)), readFailure},
		{"failure after content", io.MultiReader(bytes.NewReader(content), iotest.ErrReader(readFailure)), readFailure},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := VerifyContent(test.content, result.Outboard, result.Root)
			if !errors.Is(err, test.want) {
				t.Errorf("error = %v, want %v", err, test.want)
			}
		})
	}
}

func BenchmarkVerifySlice(b *testing.B) {
	content := testutil.Random(64<<20, 1)
	result, err := EncodeBytes(content)
	if err != nil {
		b.Fatal(err)
	}
	offset := uint64(100 * SliceWidth)
	window := windowAt(content, offset)
	b.SetBytes(int64(len(window)))
	for b.Loop() {
		if err := VerifySlice(window, offset, result.Outboard, result.Root); err != nil {
			b.Fatal(err)
		}
	}
}
