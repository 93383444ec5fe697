package cmd

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rnwolfe/triage/internal/config"
	"github.com/rnwolfe/triage/internal/logging"
	"github.com/rnwolfe/triage/internal/scorer"
	"github.com/rnwolfe/triage/internal/store"
	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/ui"
)

// configTestEnv points XDG dirs at a temp dir and clears TRIAGE_* vars.
func configTestEnv(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvStrategy, "")
	t.Setenv(config.EnvLogLevel, "")
	return tmpDir
}

// captureOutput redirects ui.Stdout and ui.Stderr to buffers.
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	ui.Stdout, ui.Stderr = stdout, stderr
	t.Cleanup(func() { ui.Stdout, ui.Stderr = os.Stdout, os.Stderr })
	return stdout, stderr
}

// resetFlags restores every package-level flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	flagStrategy = strategyFlag{}
	flagAPI = ""
	flagVerbose = false
	flagNoColor = true
	flagJSON = false
	bulkFormat = ""
	analyzeDeadline = ""
	analyzeDifficulty = 2
	analyzeImportance = 2
	analyzeHours = 1
	versionShort = false
	serveAddr = ""
	serveDB = ""
}

// startScorer runs the local scoring service on an in-memory store and
// returns its API root.
func startScorer(t *testing.T) string {
	t.Helper()
	db, err := store.Open(store.Memory)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := scorer.NewServer(scorer.NewRepo(db.Conn()), scorer.WithLogger(logging.Discard()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL + "/api/tasks"
}

// setupApp resets flags, isolates config and runs setup against apiURL.
func setupApp(t *testing.T, apiURL string) {
	t.Helper()
	configTestEnv(t)
	resetFlags(t)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	flagAPI = apiURL
	if err := setup(nil, nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// daysFromNow returns a deadline string relative to today.
func daysFromNow(days int) string {
	return task.NewDate(time.Now().AddDate(0, 0, days)).String()
}
