// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/verity/lib/fileio"
)

// Size is the length of a digest in bytes.
const Size = 32

// ReadBufferSize is the read buffer used by [FromReader] and
// [FromFile].
const ReadBufferSize = 1 << 20

// Digest is a 32-byte BLAKE3 hash of a complete stream.
type Digest [Size]byte

// Hasher accumulates a digest incrementally. It implements io.Writer
// so it can sit behind io.Copy or an io.MultiWriter.
type Hasher struct {
	hasher *blake3.Hasher
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{hasher: blake3.New()}
}

// Write adds p to the digest. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.hasher.Write(p)
}

// Sum returns the digest of everything written so far. It does not
// reset the Hasher.
func (h *Hasher) Sum() Digest {
	var digest Digest
	h.hasher.Sum(digest[:0])
	return digest
}

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

// FromReader hashes everything r produces with a ReadBufferSize
// buffer.
func FromReader(r io.Reader) (Digest, error) {
	return FromReaderBuffer(r, make([]byte, ReadBufferSize))
}

// FromReaderBuffer hashes everything r produces, reading through the
// caller-owned buffer.
func FromReaderBuffer(r io.Reader, buffer []byte) (Digest, error) {
	if len(buffer) == 0 {
		return Digest{}, errors.New("digest: empty read buffer")
	}
	hasher := NewHasher()
	if _, err := io.CopyBuffer(writerOnly{hasher}, readerOnly{r}, buffer); err != nil {
		return Digest{}, fmt.Errorf("digest: reading content: %w", err)
	}
	return hasher.Sum(), nil
}

// FromFile hashes the file at path.
func FromFile(path string) (Digest, error) {
	file, err := fileio.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("digest: %w", err)
	}
	defer file.Close()

	digest, err := FromReader(file)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// FromBytes converts a variable-length buffer into a Digest. Any
// length other than Size is an error.
func FromBytes(data []byte) (Digest, error) {
	var digest Digest
	if len(data) != Size {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(data), Size)
	}
	copy(digest[:], data)
	return digest, nil
}

// Parse parses a 64-character hex string into a Digest.
func Parse(hexString string) (Digest, error) {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return Digest{}, fmt.Errorf("parsing digest: %w", err)
	}
	return FromBytes(decoded)
}

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText encodes the digest as hex.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a hex-encoded digest.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// io.CopyBuffer ignores the buffer when either side implements
// WriterTo or ReaderFrom. These wrappers hide both so the caller's
// buffer size is what actually reaches the hasher.
type readerOnly struct{ io.Reader }

type writerOnly struct{ io.Writer }
