// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fileio opens files for the sequential whole-file reads that
// hashing and encoding perform. [Open] returns a buffered [File] and,
// where the platform supports it, tells the kernel the file will be
// read front to back so readahead can be sized accordingly. The advice
// is best-effort: platforms without it, or filesystems that reject it,
// read exactly the same bytes.
//
// This package has no dependencies on other verity packages.
package fileio
