// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sidecar stores the outboard data for a content file next to
// it. A [Record] carries everything a verifier needs apart from the
// content itself: the content length, the tree root, the whole-stream
// digest, and the outboard bytes.
//
// Records are deterministic CBOR (see lib/codec). [Build] computes the
// root and the digest in a single read of the content. [ReadFile] and
// [Decode] validate what they load: an unknown version, outboard data
// whose header disagrees with the recorded length, or outboard data of
// the wrong size is rejected before the record is returned.
//
// The root and the digest of the same content are equal by
// construction, and Validate checks that too: a record whose root and
// digest differ was not produced by Build.
package sidecar
