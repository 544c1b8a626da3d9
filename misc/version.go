// Package misc keeps program identity: name, version and source revision.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X mbr/misc.version=... -X mbr/misc.gitHash=..." by the
// release build.
var (
	appName = "mbr"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns revision program was built from. When it was not
// provided at link time VCS information embedded by the toolchain is used.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
