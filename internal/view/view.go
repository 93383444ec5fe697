// Package view projects the working set into a renderable, ranked list.
// It owns no state: the same tasks, strategy and instant always produce the
// same View.
package view

import (
	"fmt"
	"time"

	"github.com/rnwolfe/triage/internal/rank"
	"github.com/rnwolfe/triage/internal/task"
)

// EmptyHint is shown when nothing has been analyzed yet.
const EmptyHint = "Analyze one or more tasks to see results here."

// Item is one ranked row.
type Item struct {
	task.Scored
	Level       rank.Level `json:"level"`
	Band        rank.Band  `json:"band"`
	DaysLeft    int        `json:"days_left"`
	Explanation string     `json:"explanation"`
	Score       string     `json:"score"` // two decimals
}

// View is the ranked projection of a working set.
type View struct {
	// Empty is set when the working set holds no tasks at all, as opposed
	// to a populated set that renders zero rows.
	Empty         bool          `json:"empty"`
	Strategy      rank.Strategy `json:"-"`
	StrategyName  string        `json:"strategy"`
	StrategyLabel string        `json:"strategy_label"`
	Summary       string        `json:"summary"`
	Items         []Item        `json:"items"`
}

// Build ranks tasks under s and annotates every row relative to now.
func Build(tasks []task.Scored, s rank.Strategy, now time.Time) View {
	v := View{
		Strategy:      s,
		StrategyName:  s.String(),
		StrategyLabel: s.Label(),
	}
	if len(tasks) == 0 {
		v.Empty = true
		v.Summary = EmptyHint
		return v
	}

	sorted := rank.Sort(tasks, s)
	v.Items = make([]Item, len(sorted))
	for i, t := range sorted {
		v.Items[i] = buildItem(t, now)
	}
	v.Summary = fmt.Sprintf("Showing %d tasks sorted by %s.", len(sorted), s.Label())
	return v
}

func buildItem(t task.Scored, now time.Time) Item {
	days := rank.DaysLeft(t.Deadline.Time, now)
	band := rank.BandForDays(days)
	return Item{
		Scored:      t,
		Level:       rank.Classify(t.PriorityScore),
		Band:        band,
		DaysLeft:    days,
		Explanation: Explain(t, band),
		Score:       FormatScore(t.PriorityScore),
	}
}

// Explain renders the rationale line for a task.
func Explain(t task.Scored, band rank.Band) string {
	return fmt.Sprintf("Because importance is %d, difficulty is %d, and %s.",
		t.Importance, t.Difficulty, band.Phrase())
}

// FormatScore renders a score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// FormatHours renders an estimate like "1.5h" or "3h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%gh", h)
}
