// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/bureau-foundation/verity/lib/testutil"
)

func TestRoundTrip(t *testing.T) {
	text := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 2000))
	inputs := map[string][]byte{
		"empty":  nil,
		"text":   text,
		"random": testutil.Random(100_000, 1),
		"zeros":  make([]byte, 300_000),
	}

	for name, data := range inputs {
		for _, algorithm := range []Algorithm{None, LZ4, Zstd, Auto} {
			t.Run(name+"/"+algorithm.String(), func(t *testing.T) {
				compressed, used, err := Compress(data, algorithm)
				if err != nil {
					t.Fatalf("Compress: %v", err)
				}
				if used == Auto {
					t.Fatal("Compress reported Auto as the stored algorithm")
				}
				restored, err := Decompress(compressed, used, len(data))
				if err != nil {
					t.Fatalf("Decompress: %v", err)
				}
				if !bytes.Equal(restored, data) {
					t.Error("round trip changed the data")
				}
			})
		}
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	data := testutil.Random(50_000, 2)
	for _, algorithm := range []Algorithm{LZ4, Zstd, Auto} {
		compressed, used, err := Compress(data, algorithm)
		if err != nil {
			t.Fatalf("%s: Compress: %v", algorithm, err)
		}
		if used != None {
			t.Errorf("%s: random data stored as %s, want none", algorithm, used)
		}
		if !bytes.Equal(compressed, data) {
			t.Errorf("%s: fallback did not return the input", algorithm)
		}
	}
}

func TestSelect(t *testing.T) {
	if got := Select(nil); got != None {
		t.Errorf("Select(empty) = %s, want none", got)
	}
	if got := Select(make([]byte, 100_000)); got != Zstd {
		t.Errorf("Select(zeros) = %s, want zstd", got)
	}
	if got := Select(testutil.Random(100_000, 3)); got != None {
		t.Errorf("Select(random) = %s, want none", got)
	}
}

func TestDecompressSizeMismatch(t *testing.T) {
	data := make([]byte, 10_000)
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		compressed, used, err := Compress(data, algorithm)
		if err != nil {
			t.Fatalf("%s: Compress: %v", algorithm, err)
		}
		if _, err := Decompress(compressed, used, len(data)+1); err == nil {
			t.Errorf("%s: Decompress accepted the wrong uncompressed size", algorithm)
		}
	}
}

func TestDecompressStopsAtExpectedSize(t *testing.T) {
	zeros := make([]byte, 64<<20)

	// EncodeAll records the content size in the frame header; a
	// streaming writer does not, so the limit must hold block by block.
	declared, used, err := Compress(zeros, Zstd)
	if err != nil || used != Zstd {
		t.Fatalf("Compress = (%s, %v), want zstd", used, err)
	}
	var undeclared bytes.Buffer
	writer, err := zstd.NewWriter(&undeclared)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := writer.Write(zeros); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	frames := map[string][]byte{
		"declared size":   declared,
		"undeclared size": undeclared.Bytes(),
	}
	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, err := Decompress(frame, Zstd, 4096)
			runtime.ReadMemStats(&after)

			if err == nil {
				t.Fatal("Decompress accepted a payload larger than the expected size")
			}
			if grown := after.TotalAlloc - before.TotalAlloc; grown > 32<<20 {
				t.Errorf("Decompress allocated %d bytes for a 4096-byte result", grown)
			}
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	data := make([]byte, 10_000)
	compressed, used, err := Compress(data, Zstd)
	if err != nil || used != Zstd {
		t.Fatalf("Compress = (%s, %v), want zstd", used, err)
	}
	if _, err := Decompress(compressed[:len(compressed)/2], Zstd, len(data)); err == nil {
		t.Error("Decompress accepted a truncated zstd frame")
	}
}

func TestParse(t *testing.T) {
	for _, algorithm := range []Algorithm{None, LZ4, Zstd, Auto} {
		parsed, err := Parse(algorithm.String())
		if err != nil {
			t.Errorf("Parse(%q): %v", algorithm, err)
		}
		if parsed != algorithm {
			t.Errorf("Parse(%q) = %s", algorithm, parsed)
		}
	}
	if _, err := Parse("brotli"); err == nil {
		t.Error("Parse should reject an unknown name")
	}

	var algorithm Algorithm
	if err := algorithm.UnmarshalText([]byte("zstd")); err != nil || algorithm != Zstd {
		t.Errorf("UnmarshalText(zstd) = (%s, %v)", algorithm, err)
	}
}

func TestUnsupported(t *testing.T) {
	if _, _, err := Compress([]byte("x"), Algorithm(9)); err == nil {
		t.Error("Compress accepted an unknown algorithm")
	}
	if _, err := Decompress([]byte("x"), Auto, 1); err == nil {
		t.Error("Decompress accepted Auto")
	}
}
