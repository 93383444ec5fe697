package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/ui"
)

func TestRunSuggest_Empty(t *testing.T) {
	setupApp(t, startScorer(t))
	stdout, _ := captureOutput(t)

	if err := runSuggest(nil, nil); err != nil {
		t.Fatalf("runSuggest: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != ui.NoSuggestions {
		t.Fatalf("got %q", stdout.String())
	}
}

func TestRunSuggest_AfterAnalyze(t *testing.T) {
	setupApp(t, startScorer(t))
	stdout, _ := captureOutput(t)

	path := writeTasks(t, "["+strings.Join([]string{
		taskJSON("a", 1, 1, 1, 20),
		taskJSON("b", 3, 3, 1, 0),
		taskJSON("c", 2, 2, 1, 2),
		taskJSON("d", 1, 2, 1, 20),
	}, ",")+"]")
	if err := runBulk(nil, []string{path}); err != nil {
		t.Fatalf("runBulk: %v", err)
	}

	stdout.Reset()
	flagJSON = true
	if err := runSuggest(nil, nil); err != nil {
		t.Fatalf("runSuggest: %v", err)
	}

	var got []task.Scored
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("not JSON: %v\n%s", err, stdout.String())
	}
	if len(got) != 3 || got[0].Description != "b" || got[1].Description != "c" {
		t.Fatalf("suggestions = %+v", got)
	}
}
