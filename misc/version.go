// Package misc keeps program identification helpers used across the code for
// logging, reporting and version output.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "cssmix"

// set by the build via -ldflags "-X cssmix/misc.version=..."
var version = "development"

// GetAppName returns program name to be used in logs and generated file names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

var getGitHash = sync.OnceValue(func() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var hash, modified string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			hash = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				modified = "*"
			}
		}
	}
	if len(hash) == 0 {
		return "unknown"
	}
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return hash + modified
})

// GetGitHash returns abbreviated git revision recorded in the build info.
func GetGitHash() string {
	return getGitHash()
}
