// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"encoding/hex"
	"fmt"
)

// Hash is a 32-byte tree root. It equals the plain BLAKE3 hash of the
// content but is deliberately a distinct type from digest.Digest: a
// root is only meaningful together with its outboard data, and the two
// namespaces must not be mixed up by accident.
type Hash [32]byte

// HashFromBytes converts a variable-length buffer into a Hash. Any
// length other than 32 is an error; the buffer is never truncated or
// padded.
func HashFromBytes(data []byte) (Hash, error) {
	var hash Hash
	if len(data) != len(hash) {
		return hash, fmt.Errorf("%w: root hash is %d bytes, want %d", ErrMalformed, len(data), len(hash))
	}
	copy(hash[:], data)
	return hash, nil
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: parsing root hash: %v", ErrMalformed, err)
	}
	return HashFromBytes(decoded)
}

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText encodes the hash as hex so that it reads naturally in
// JSON output and CBOR diagnostic notation.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a hex-encoded hash.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
