// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"math/rand/v2"
	"os"
	"path/filepath"
)

// Pattern returns size bytes counting up from zero and wrapping at 256.
func Pattern(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

// Random returns size pseudo-random bytes determined entirely by seed.
func Random(size int, seed uint64) []byte {
	source := rand.NewChaCha8([32]byte{
		byte(seed), byte(seed >> 8), byte(seed >> 16), byte(seed >> 24),
		byte(seed >> 32), byte(seed >> 40), byte(seed >> 48), byte(seed >> 56),
	})
	data := make([]byte, size)
	source.Read(data)
	return data
}

// WriteFile writes data to name inside a fresh temporary directory and
// returns the full path.
//
//	path := testutil.WriteFile(t, "content", testutil.Pattern(4096))
func WriteFile(t interface {
	Helper()
	TempDir() string
	Fatalf(format string, args ...any)
}, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// FlipBit returns a copy of data with the low bit of data[index]
// inverted. The original is not modified.
func FlipBit(data []byte, index int) []byte {
	modified := make([]byte, len(data))
	copy(modified, data)
	modified[index] ^= 0x01
	return modified
}
