// Package theme holds the colors and styles shared by console output and
// the answer prompt.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary = lipgloss.Color("#6366F1") // indigo
	Accent  = lipgloss.Color("#14B8A6") // teal
	Success = lipgloss.Color("#22C55E")
	Error   = lipgloss.Color("#F43F5E")
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

var (
	// Title heads the main menu and the prompt header.
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	// Hint is used for labels, key hints and the per-drill summary.
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Shown is the term or definition put in front of the learner.
	Shown = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Progress bar cells and the question card.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Accent)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)
