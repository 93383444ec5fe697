// Package scorer is a local implementation of the remote prioritization
// service. It scores tasks, keeps them in SQLite and suggests the top ones.
package scorer

import (
	"math"
	"time"

	"github.com/rnwolfe/triage/internal/task"
)

// Weights of the priority formula.
const (
	ImportanceWeight = 0.5
	DifficultyWeight = 0.3
	DeadlineWeight   = 0.2
)

// SuggestLimit is how many tasks GET /suggest/ returns.
const SuggestLimit = 3

// DeadlineScore rates closeness: 3 when due within a day (or overdue),
// 2 within three days, 1 otherwise.
func DeadlineScore(deadline task.Date, today time.Time) int {
	days := DaysUntil(deadline, today)
	switch {
	case days <= 1:
		return 3
	case days <= 3:
		return 2
	default:
		return 1
	}
}

// DaysUntil counts whole calendar days from today's date to the deadline.
func DaysUntil(deadline task.Date, today time.Time) int {
	from := task.NewDate(today).Time
	to := task.NewDate(deadline.Time).Time
	return int(to.Sub(from).Hours() / 24)
}

// Score computes importance*0.5 + difficulty*0.3 + deadlineScore*0.2,
// rounded to two decimals.
func Score(req task.Request, today time.Time) float64 {
	raw := float64(req.Importance)*ImportanceWeight +
		float64(req.Difficulty)*DifficultyWeight +
		float64(DeadlineScore(req.Deadline, today))*DeadlineWeight
	return math.Round(raw*100) / 100
}
