// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// FormatVersion is the sidecar and slice bundle format version this
// build writes. It is reported alongside the release version so that
// files can be matched to the tool that reads them.
const FormatVersion = 1

// commit returns GitCommit, falling back to the VCS stamp the Go
// toolchain embeds when ldflags were not supplied.
func commit() (string, bool) {
	if GitCommit != "unknown" {
		return GitCommit, GitDirty == "true"
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit, false
	}
	revision, modified := GitCommit, false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	return revision, modified
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	revision, modified := commit()
	dirty := ""
	if modified {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, revision, dirty, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Format: %d\n  Go: %s\n  Platform: %s/%s",
		Info(), FormatVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	revision, _ := commit()
	return revision
}
