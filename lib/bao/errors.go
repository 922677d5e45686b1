// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"errors"
	"io"
)

var (
	// ErrHashMismatch reports that a recomputed chaining value or root
	// did not match what the parent (or the trusted root) committed
	// to. This is the expected outcome for corrupted or tampered data.
	ErrHashMismatch = errors.New("bao: hash mismatch")

	// ErrMalformed reports structurally invalid input: a root of the
	// wrong length, outboard data whose size disagrees with its
	// header, a truncated slice, a misaligned offset, or a window
	// that does not fit the content.
	ErrMalformed = errors.New("bao: malformed input")

	// ErrFinalize reports that the encoder could not produce a root,
	// or that it was used again after Finalize.
	ErrFinalize = errors.New("bao: encoder finalize failed")
)

// IOError wraps a failure of the caller's byte source or sink. Op
// names what was being read or written.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "bao: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// readError classifies a failed io.ReadFull: running out of input is
// a structural problem with what the caller supplied, anything else
// is an I/O failure of the source.
func readError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &truncatedError{op: op}
	}
	return &IOError{Op: op, Err: err}
}

type truncatedError struct {
	op string
}

func (e *truncatedError) Error() string {
	return "bao: malformed input: truncated while reading " + e.op
}

func (e *truncatedError) Is(target error) bool {
	return target == ErrMalformed
}
