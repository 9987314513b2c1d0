// Package version records build metadata stamped in at link time.
package version

var (
	// Version is the semantic version of the tool, overridden via
	// -ldflags "-X github.com/impass-go/impass/internal/version.Version=...".
	Version = "0.1.0-dev"

	// GitCommit is the commit hash of the build, when stamped.
	GitCommit = ""

	// BuildDate is the UTC build timestamp, when stamped.
	BuildDate = ""
)
