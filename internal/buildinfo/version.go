// Package buildinfo carries version information stamped in at build time:
//
//	go build -ldflags "-X storyshuffle/internal/buildinfo.Version=v0.3.0 \
//	    -X storyshuffle/internal/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X storyshuffle/internal/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns the version alone, as reported to MCP clients.
func Short() string {
	if Version == "dev" && Commit != "none" {
		return Version + "+" + Commit
	}
	return Version
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
