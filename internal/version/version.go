// Package version reports the triage build identity.
package version

import (
	"fmt"
	"runtime/debug"
)

const (
	defaultVersion = "dev"
	defaultCommit  = "none"
	defaultDate    = "unknown"
)

// Set at build time via -ldflags "-X github.com/rnwolfe/triage/internal/version.Version=...".
var (
	Version = defaultVersion
	Commit  = defaultCommit
	Date    = defaultDate
)

// Info is the build identity as printed by `triage version --json`.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build identity.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Full is "<version> (<commit>) <date>".
func Full() string {
	return fmt.Sprintf("%s (%s) %s", Version, Commit, Date)
}

func Short() string {
	return Version
}

// UserAgent is sent with every request to the scoring service.
func UserAgent() string {
	return "triage/" + Version
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	backfill(info)
}

// backfill fills any field still at its default from module build info.
// ldflags always win. An untagged build reports "(devel)" and keeps "dev".
func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	if Version == defaultVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Value == "" {
			continue
		}
		switch s.Key {
		case "vcs.revision":
			if Commit == defaultCommit {
				Commit = shortRev(s.Value)
			}
		case "vcs.time":
			if Date == defaultDate {
				Date = s.Value
			}
		}
	}
}

func shortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
