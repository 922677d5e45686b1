// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	lkbao "lukechampine.com/blake3/bao"
)

// ExpectedWindowLength returns how many content bytes the SliceWidth
// window at offset holds for a stream of contentLength bytes, after
// checking that offset names a window inside the content. The empty
// stream has exactly one window, at offset zero, of length zero.
func ExpectedWindowLength(contentLength, offset uint64) (uint64, error) {
	if offset%SliceWidth != 0 {
		return 0, fmt.Errorf("%w: offset %d is not a multiple of the %d-byte slice width",
			ErrMalformed, offset, SliceWidth)
	}
	if offset > contentLength || (offset == contentLength && contentLength > 0) {
		return 0, fmt.Errorf("%w: offset %d is outside %d bytes of content",
			ErrMalformed, offset, contentLength)
	}
	return min(SliceWidth, contentLength-offset), nil
}

// VerifySlice proves that rangeBytes is exactly the SliceWidth window
// at offset of the content committed to by root, using only the
// outboard data. It returns nil on success. Verification is
// all-or-nothing: there is no partially verified outcome.
//
// Structural problems (outboard size disagreeing with its header, an
// unaligned or out-of-range offset, rangeBytes of the wrong length)
// are reported as ErrMalformed before any hashing is done. A window
// that does not match the tree is reported as ErrHashMismatch.
//
// The window bytes are consumed strictly forward through a
// [ForwardSeeker]; rangeBytes is never read out of order or modified.
//
// The content length in the outboard header is authenticated only by
// windows whose path reaches the final chunk. A header altered without
// changing the chunk count still verifies every other window; use
// [VerifyContent] to authenticate the length.
func VerifySlice(rangeBytes []byte, offset uint64, outboard []byte, root Hash) error {
	contentLength, err := ContentLength(outboard)
	if err != nil {
		return err
	}
	length, err := ExpectedWindowLength(contentLength, offset)
	if err != nil {
		return err
	}
	if uint64(len(rangeBytes)) != length {
		return fmt.Errorf("%w: window at offset %d holds %d bytes, got %d",
			ErrMalformed, offset, length, len(rangeBytes))
	}

	var slice bytes.Buffer
	err = ExtractWindowSlice(&slice, bytes.NewReader(rangeBytes), bytes.NewReader(outboard), offset, length)
	if err != nil {
		return fmt.Errorf("extracting slice at offset %d: %w", offset, err)
	}

	if err := DecodeSlice(io.Discard, &slice, root, offset, length); err != nil {
		return fmt.Errorf("verifying slice at offset %d: %w", offset, err)
	}
	return nil
}

// VerifyContent verifies a complete stream against its outboard data
// and root in a single forward pass, holding one chunk at a time.
// Content beyond the length recorded in the outboard header is an
// ErrMalformed failure.
func VerifyContent(content io.Reader, outboard []byte, root Hash) error {
	if _, err := ContentLength(outboard); err != nil {
		return err
	}

	ok, err := lkbao.Decode(io.Discard, content, bytes.NewReader(outboard), 0, [32]byte(root))
	if err != nil {
		return readError("content", err)
	}
	if !ok {
		return fmt.Errorf("%w: content does not match the root", ErrHashMismatch)
	}

	var extra [1]byte
	count, err := io.ReadFull(content, extra[:])
	switch {
	case count > 0:
		return fmt.Errorf("%w: content is longer than the length recorded in the outboard data", ErrMalformed)
	case errors.Is(err, io.EOF):
		return nil
	default:
		return &IOError{Op: "reading content", Err: err}
	}
}
