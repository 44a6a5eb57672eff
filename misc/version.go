// Package misc keeps program identity shared by all other packages.
package misc

import (
	"runtime/debug"
)

const appName = "lfmt"

// Set at link time with -ldflags "-X lfmt/misc.version=... -X lfmt/misc.gitHash=...".
var (
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash program was built from. When not provided at
// link time VCS information recorded by the go tool is used.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}
