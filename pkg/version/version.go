package version

// Version, Commit and Date identify the driftwatch build.
// They are overridden at build time via ldflags:
//
//	-ldflags "-X github.com/cloudposse/driftwatch/pkg/version.Version=v1.2.3"
var (
	Version = "0.0.1"
	Commit  = "none"
	Date    = "unknown"
)
