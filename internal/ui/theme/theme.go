// Package theme holds the TUI palette and shared styles: Pompeian red,
// laurel and gold on dark stone.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#C2410C") // Pompeian red
	Secondary = lipgloss.Color("#65A30D") // laurel
	Accent    = lipgloss.Color("#EAB308") // gold
	Gilt      = lipgloss.Color("#FACC15")
	Mosaic    = lipgloss.Color("#2DD4BF")

	Success = lipgloss.Color("#22C55E")
	Error   = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#FAF5EB") // parchment
	TextDim = lipgloss.Color("#A8A29E")
	BgDark  = lipgloss.Color("#1C1917")
	BgCard  = lipgloss.Color("#292524")
	Border  = lipgloss.Color("#44403C")
)

var (
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Latin words and sentences, set apart from English everywhere.
	Latin = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)
