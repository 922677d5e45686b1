// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress compresses slice bundle payloads. A slice is mostly
// raw content, so whether compression helps depends entirely on the
// content: [Select] samples with zstd and picks zstd, LZ4, or nothing
// by the achieved ratio.
//
// Payloads are compressed as single blocks: LZ4 block format, or a
// single zstd frame. The uncompressed size is recorded alongside the
// payload by the caller and checked exactly on decompression.
package compress
