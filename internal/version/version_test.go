package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withDefaults(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = defaultVersion, defaultCommit, defaultDate
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFull(t *testing.T) {
	withDefaults(t)
	if got, want := Full(), "dev (none) unknown"; got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}
}

func TestShortAndUserAgent(t *testing.T) {
	withDefaults(t)
	Version = "v1.2.3"
	if Short() != "v1.2.3" {
		t.Errorf("Short() = %q", Short())
	}
	if !strings.HasPrefix(UserAgent(), "triage/v1.2.3") {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
	if got := Get(); got.Version != "v1.2.3" || got.Commit != defaultCommit {
		t.Errorf("Get() = %+v", got)
	}
}

func TestBackfill(t *testing.T) {
	tests := []struct {
		name        string
		preset      string
		info        *debug.BuildInfo
		wantVersion string
		wantCommit  string
		wantDate    string
	}{
		{
			name:        "nil info",
			info:        nil,
			wantVersion: defaultVersion, wantCommit: defaultCommit, wantDate: defaultDate,
		},
		{
			name: "tagged module with vcs settings",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "v0.4.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2026-02-24T09:00:00Z"},
				},
			},
			wantVersion: "v0.4.0", wantCommit: "0123456", wantDate: "2026-02-24T09:00:00Z",
		},
		{
			name:        "devel build keeps dev",
			info:        &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: defaultVersion, wantCommit: defaultCommit, wantDate: defaultDate,
		},
		{
			name:   "ldflags win",
			preset: "v9.9.9",
			info: &debug.BuildInfo{
				Main:     debug.Module{Version: "v0.4.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}},
			},
			wantVersion: "v9.9.9", wantCommit: "abc", wantDate: defaultDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withDefaults(t)
			if tt.preset != "" {
				Version = tt.preset
			}
			backfill(tt.info)
			if Version != tt.wantVersion || Commit != tt.wantCommit || Date != tt.wantDate {
				t.Errorf("got (%s, %s, %s), want (%s, %s, %s)",
					Version, Commit, Date, tt.wantVersion, tt.wantCommit, tt.wantDate)
			}
		})
	}
}
