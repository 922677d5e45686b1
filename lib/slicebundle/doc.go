// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package slicebundle packages an extracted slice as a self-describing
// file that can be shipped to a verifier which holds only a trusted
// root. A [Bundle] records the window it covers, the root it was
// extracted against, and the slice bytes, optionally compressed.
//
// The embedded root is advisory. [Bundle.Decode] verifies against the
// root the caller trusts and refuses a bundle whose embedded root
// differs, so a bundle can never vouch for itself.
package slicebundle
