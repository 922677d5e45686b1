// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bao implements BLAKE3 verified streaming over outboard tree
// data: an incremental encoder that produces a root hash plus a side
// file of parent nodes, and a slice verifier that proves an arbitrary
// contiguous window of the content against that root without reading
// anything outside the window.
//
// The tree is the BLAKE3 tree. Content is split into 1024-byte chunks;
// the left subtree of every parent holds the largest power of two
// chunks strictly smaller than the parent's total. The root hash is
// therefore identical to the plain BLAKE3 hash of the content, which
// lets callers that already hold a BLAKE3 hash start verifying slices
// as soon as they obtain the outboard file.
//
// Outboard layout:
//
//	[8-byte little-endian content length][parent nodes in pre-order]
//
// Each parent node is 64 bytes: the left child's chaining value
// followed by the right child's. Content bytes are never duplicated
// into the outboard data. A stream of n bytes has
// max(1, ceil(n/1024)) chunks and therefore 8 + 64*(chunks-1) bytes of
// outboard data.
//
// A slice (see [ExtractSlice] and [DecodeSlice]) is the header, then
// in pre-order every parent node whose subtree overlaps the window and
// every chunk that overlaps it. A decoder holding only the trusted
// root walks the slice top-down, checking each node against the
// chaining value its parent committed to.
//
// Node compression comes from lukechampine.com/blake3/guts, and the
// slice and full-content walks from lukechampine.com/blake3/bao with
// one chunk per group. The encoder keeps its own chaining-value stack
// because it must accept a stream whose length is not known until
// Finalize.
//
// Four failure kinds are distinguishable with errors.Is and errors.As:
// [ErrHashMismatch] (verification failure), [ErrMalformed] (truncated
// or inconsistent input, detected before hashing where possible),
// [ErrFinalize] (the encoder cannot produce a root), and [*IOError]
// (the underlying source or sink failed). None of them are logged by
// this package.
//
// The chunk size, slice width, and header layout are format constants.
// Changing them breaks compatibility with every stored outboard file.
package bao
