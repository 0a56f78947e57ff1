package version

import "fmt"

// These variables are set at build time via ldflags:
//
//	-X github.com/example/stackarch/internal/version.Commit=$(git rev-parse HEAD)
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string (commit-hash based, no semver)
func String() string {
	return fmt.Sprintf("stackarch dev (commit: %s, built: %s)", shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
