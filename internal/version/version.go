// Package version provides application version information.
// The version can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/MD-Companion/internal/version.Version=v1.2.3"
package version

import "runtime"

// Version is the application version. It defaults to "dev".
var Version = "dev"

// Commit is the source revision, set via ldflags alongside Version.
var Commit = "unknown"

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}

// Get returns the build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, GoVersion: runtime.Version()}
}
