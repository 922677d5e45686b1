// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for verity packages.
//
// [Pattern] and [Random] build deterministic content of any size, so a
// failing test can be reproduced from its size and seed alone.
// [WriteFile] places content in a test's temporary directory and
// [FlipBit] returns a copy of a buffer with one bit changed, for
// tamper tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no verity-internal dependencies.
package testutil
