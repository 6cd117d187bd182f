// Package version provides build-time version information for elunadoc.
package version

// These variables are set at build time via ldflags:
//
//	-X github.com/open-cli-collective/elunadoc/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
