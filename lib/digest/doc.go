// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes whole-stream BLAKE3 digests for integrity
// comparisons that need no partial verification: cache keys, change
// detection, checksums printed for a human.
//
// A [Digest] is its own 32-byte type. It happens to equal the root of
// the verified-streaming tree over the same bytes (see lib/bao), but a
// digest carries no outboard data and is never accepted where a tree
// root is expected.
//
// [FromReader] and [FromBytes] produce identical results for the same
// bytes; the read buffer size affects throughput only.
package digest
