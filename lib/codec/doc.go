// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides verity's standard CBOR encoding configuration.
//
// verity uses two serialization formats with a clear boundary:
//
//   - JSON for CLI output (--json) and JSONC configuration files.
//   - CBOR for files that carry binary payloads: sidecar records
//     (content length, digests, outboard data) and slice bundles.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same record always produces identical bytes, so a sidecar file can
// itself be hashed and compared.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// # Struct Tag Rules
//
// Types only ever written as CBOR use `cbor` tags. Types that also
// appear in --json output use `json` tags, which fxamacker/cbor reads
// as a fallback. Never put both on the same field.
package codec
