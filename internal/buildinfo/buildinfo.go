// Package buildinfo carries version strings stamped at link time:
//
//	go build -ldflags "-X dotsphere/internal/buildinfo.Version=v0.3.0 -X dotsphere/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the most specific identifier available: the version if
// stamped, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String is the full build line used by -version.
func String() string {
	return fmt.Sprintf("dotsphere %s (commit %s, built %s)", Version, Commit, Date)
}
