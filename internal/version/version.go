// Package version exposes build information stamped via ldflags.
package version

import "fmt"

var (
	// Version is the release version, set at build time with
	// -ldflags "-X .../internal/version.Version=v1.2.3".
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the human readable version line.
func String() string {
	return fmt.Sprintf("staticdatagen %s (commit %s, built %s)", Version, Commit, Date)
}
