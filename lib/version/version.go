// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/bureau-foundation/graphcodec/lib/bincodec"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// buildSettings reads the VCS stamp from the embedded build info.
func buildSettings() (commit string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return commit, dirty
}

// Commit returns the git commit SHA, from -ldflags when injected and
// from the embedded VCS stamp otherwise.
func Commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	commit, dirty := buildSettings()
	if commit == "" {
		return GitCommit
	}
	if dirty {
		commit += "-dirty"
	}
	return commit
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit(), BuildTime)
}

// Full returns detailed version information including the Go version
// and the binary wire-format constants.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s\n  Wire: %d-byte length prefix, null sentinel %#08x",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH, bincodec.PrefixSize, bincodec.NullLength)
}

// Short returns just the version number.
func Short() string {
	return Version
}
