// Package version holds build information, set at link time with
// -ldflags "-X github.com/opsdesk/incidents/internal/version.Version=...".
package version

var (
	Version = "dev"
	Commit  = "none"
)
