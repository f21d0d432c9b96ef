// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/battlesnakeio/arena/version.Version=...".
package version

// Version is the current arena build.
var Version = "dev"
