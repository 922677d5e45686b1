// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"fmt"
	"io"
)

// ForwardSeeker presents a sequential reader as an io.ReadSeeker for
// slice extraction. It holds only the content of a window that begins
// at content offset base, and reports base plus the bytes consumed so
// far as its position.
//
// The extractor reads window chunks in ascending order and seeks to
// each chunk's start before reading it, which is always the position
// the previous read left off at. ForwardSeeker accepts exactly those
// seeks as no-ops. Any other target (backward, a forward skip, or
// relative to the end) fails loudly rather than silently reading the
// wrong bytes.
type ForwardSeeker struct {
	reader   io.Reader
	base     uint64
	consumed uint64
}

// NewForwardSeeker wraps r, whose first byte is at content offset base.
func NewForwardSeeker(r io.Reader, base uint64) *ForwardSeeker {
	return &ForwardSeeker{reader: r, base: base}
}

// Read reads from the underlying reader and advances the position.
func (s *ForwardSeeker) Read(p []byte) (int, error) {
	count, err := s.reader.Read(p)
	s.consumed += uint64(count)
	return count, err
}

// Position returns the content offset of the next byte Read returns.
func (s *ForwardSeeker) Position() uint64 {
	return s.base + s.consumed
}

// Seek succeeds only when the target is the current position.
func (s *ForwardSeeker) Seek(offset int64, whence int) (int64, error) {
	position := int64(s.Position())

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = position + offset
	default:
		return position, fmt.Errorf("forward-only reader cannot seek with whence %d", whence)
	}

	if target != position {
		return position, fmt.Errorf("forward-only reader is at offset %d, cannot seek to %d", position, target)
	}
	return position, nil
}
