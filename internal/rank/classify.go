// Package rank holds the pure ranking rules: score classification, deadline
// banding and the interchangeable sort strategies.
package rank

import (
	"math"
	"time"
)

// Level is the urgency class derived from a priority score.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Score thresholds. Each band includes its lower bound.
const (
	HighThreshold   = 2.5
	MediumThreshold = 1.8
)

// Classify maps a priority score to a Level.
func Classify(score float64) Level {
	switch {
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Label returns the upper-case display form, e.g. "HIGH".
func (l Level) Label() string {
	switch l {
	case LevelHigh:
		return "HIGH"
	case LevelMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Band is the deadline-proximity bucket used in explanations.
type Band string

const (
	BandVeryClose   Band = "very_close"
	BandComingUp    Band = "coming_up"
	BandFurtherAway Band = "further_away"
)

// DaysLeft returns the signed number of whole days from now until deadline,
// rounded half up. Overdue deadlines are negative.
func DaysLeft(deadline, now time.Time) int {
	days := deadline.Sub(now).Hours() / 24
	return int(math.Floor(days + 0.5))
}

// BandFor buckets the distance between now and deadline.
func BandFor(deadline, now time.Time) Band {
	return BandForDays(DaysLeft(deadline, now))
}

// BandForDays buckets an already computed days-left value.
func BandForDays(daysLeft int) Band {
	switch {
	case daysLeft <= 1:
		return BandVeryClose
	case daysLeft <= 3:
		return BandComingUp
	default:
		return BandFurtherAway
	}
}

// Phrase is the canned explanation fragment for the band.
func (b Band) Phrase() string {
	switch b {
	case BandVeryClose:
		return "deadline is very close"
	case BandComingUp:
		return "deadline is coming up soon"
	default:
		return "deadline is further away"
	}
}
