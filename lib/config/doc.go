// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the verity CLI.
//
// Configuration is loaded from a single file specified by either the
// VERITY_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without either, the CLI runs on
// [Default].
//
// Files ending in .json or .jsonc are parsed as JSONC: comments and
// trailing commas are allowed. Everything else is parsed as YAML.
// Fields absent from the file keep their default values.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Tree constants (chunk size, slice width) and read buffer sizes are
// format properties, not configuration, and cannot be set here.
//
// This package depends on lib/compress for the compression names it
// accepts, and on no other verity packages.
package config
