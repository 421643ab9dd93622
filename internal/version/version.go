// Package version exposes build metadata for the habitflow binary.
package version

import "runtime/debug"

// Set at release time via ldflags. Left at these defaults for
// `go install` builds, where build info fills them in instead.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full is the long form shown by `habitflow version`.
func Full() string {
	return Version + " (" + Commit + ") " + Date
}

// Short is just the version number, used on the dashboard.
func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		backfill(info)
	}
}

// backfill fills Version, Commit, and Date from build info for variables
// still at their ldflag defaults. Explicit ldflags always win. A build
// from an untagged HEAD reports "(devel)", which stays "dev".
func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && s.Value != "" {
				rev := s.Value
				if len(rev) > 7 {
					rev = rev[:7]
				}
				Commit = rev
			}
		case "vcs.time":
			if Date == "unknown" && s.Value != "" {
				Date = s.Value
			}
		}
	}
}
