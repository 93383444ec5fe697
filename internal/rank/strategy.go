package rank

import (
	"sort"
	"strings"

	"github.com/rnwolfe/triage/internal/task"
)

// Strategy selects the ordering applied to the working set. The zero value
// is Balanced.
type Strategy int

const (
	// Balanced orders by priority score, highest first.
	Balanced Strategy = iota
	// Fastest orders by estimated time, shortest first.
	Fastest
	// Impact orders by importance, highest first.
	Impact
	// Deadline orders by deadline, earliest first.
	Deadline
)

// Strategies lists every strategy in display order.
var Strategies = []Strategy{Balanced, Fastest, Impact, Deadline}

func (s Strategy) String() string {
	switch s {
	case Fastest:
		return "fastest"
	case Impact:
		return "impact"
	case Deadline:
		return "deadline"
	default:
		return "balanced"
	}
}

// Label returns the human-readable strategy name.
func (s Strategy) Label() string {
	switch s {
	case Fastest:
		return "Fastest Wins (low effort first)"
	case Impact:
		return "High Impact (importance first)"
	case Deadline:
		return "Deadline Driven (earliest due first)"
	default:
		return "Smart Balance (overall score)"
	}
}

// Next cycles to the following strategy, wrapping around.
func (s Strategy) Next() Strategy {
	return Strategies[(int(s.normalize())+1)%len(Strategies)]
}

func (s Strategy) normalize() Strategy {
	switch s {
	case Balanced, Fastest, Impact, Deadline:
		return s
	default:
		return Balanced
	}
}

// LookupStrategy resolves a strategy identifier. Accepts full names and
// short aliases: b=balanced, f=fastest, i=impact, d=deadline.
func LookupStrategy(name string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "balanced", "balance", "b", "":
		return Balanced, true
	case "fastest", "fast", "f":
		return Fastest, true
	case "impact", "i":
		return Impact, true
	case "deadline", "d":
		return Deadline, true
	default:
		return Balanced, false
	}
}

// ParseStrategy resolves a strategy identifier; anything unrecognised
// falls back to Balanced.
func ParseStrategy(name string) Strategy {
	s, _ := LookupStrategy(name)
	return s
}

// Sort returns a new slice ordered by the strategy. The input is not
// modified. Ties on the primary key are broken by priority score
// descending; fully equal items keep their insertion order.
func Sort(tasks []task.Scored, s Strategy) []task.Scored {
	out := make([]task.Scored, len(tasks))
	copy(out, tasks)

	less := lessFor(s.normalize())
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func lessFor(s Strategy) func(a, b task.Scored) bool {
	switch s {
	case Fastest:
		return func(a, b task.Scored) bool {
			if a.EstimatedTime != b.EstimatedTime {
				return a.EstimatedTime < b.EstimatedTime
			}
			return byScore(a, b)
		}
	case Impact:
		return func(a, b task.Scored) bool {
			if a.Importance != b.Importance {
				return a.Importance > b.Importance
			}
			return byScore(a, b)
		}
	case Deadline:
		return func(a, b task.Scored) bool {
			if !a.Deadline.Equal(b.Deadline.Time) {
				return a.Deadline.Before(b.Deadline.Time)
			}
			return byScore(a, b)
		}
	default:
		return byScore
	}
}

func byScore(a, b task.Scored) bool {
	return a.PriorityScore > b.PriorityScore
}
