// Package tips holds the one-line hints shown under an empty ranked list.
package tips

import "time"

var all = []string{
	"`triage analyze \"Fix login\" --deadline 2026-03-01 --importance 3` to score a single task.",
	"`triage bulk tasks.json` to score up to 20 tasks at once.",
	"`cat tasks.json | triage bulk` reads the task array from stdin.",
	"`triage --strategy fastest` puts the low-effort tasks first.",
	"`triage --strategy deadline` sorts by due date, earliest first.",
	"`triage suggest` asks the scoring service what to do next.",
	"`triage browse tasks.json` opens the browser with your tasks preloaded.",
	"press tab in the browser to cycle through sort strategies.",
	"`triage config set display.strategy impact` changes the default order.",
	"`triage serve` runs a local scoring service for offline use.",
}

// All returns every tip.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
