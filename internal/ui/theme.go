package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rnwolfe/triage/internal/rank"
)

// triage's palette: hot reds for urgent, amber for soon, greens for later.
var (
	Gold     = lipgloss.Color("#FFD700")
	Amber    = lipgloss.Color("#FFBF00")
	Stone    = lipgloss.Color("#8B8680")
	Emerald  = lipgloss.Color("#50C878")
	Ruby     = lipgloss.Color("#E0115F")
	Sapphire = lipgloss.Color("#0F52BA")
	Dim      = lipgloss.Color("#666666")
	Bright   = lipgloss.Color("#FFFFFF")
	Ink      = lipgloss.Color("#1A1A1A")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Gold)

	Success = lipgloss.NewStyle().
		Foreground(Emerald)

	Error = lipgloss.NewStyle().
		Foreground(Ruby)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Sapphire)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	// Component styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)

	TaskTitle = lipgloss.NewStyle().
			Bold(true)

	Score = lipgloss.NewStyle().
		Foreground(Gold)

	pill = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true)

	PillHigh   = pill.Foreground(Bright).Background(Ruby)
	PillMedium = pill.Foreground(Ink).Background(Amber)
	PillLow    = pill.Foreground(Ink).Background(Emerald)
)

// LevelStyle picks the pill style for a priority level.
func LevelStyle(l rank.Level) lipgloss.Style {
	switch l {
	case rank.LevelHigh:
		return PillHigh
	case rank.LevelMedium:
		return PillMedium
	default:
		return PillLow
	}
}

// BandStyle colors the deadline line by closeness.
func BandStyle(b rank.Band) lipgloss.Style {
	switch b {
	case rank.BandVeryClose:
		return Error
	case rank.BandComingUp:
		return Warning
	default:
		return Muted
	}
}

const (
	IconWarn  = "⚠️ "
	IconError = "✗ "
	IconOk    = "✓ "
	IconArrow = "→"
	IconDot   = "·"
)
