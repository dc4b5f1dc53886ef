package components

import (
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

const (
	maxPanelWidth = 60
	minPanelWidth = 20
)

// PanelWidth is the width every panel on a screen of the given width uses,
// so that stacked panels line up.
func PanelWidth(screenWidth int) int {
	// frame border and padding
	return max(minPanelWidth, min(screenWidth-6, maxPanelWidth))
}

// Frame draws the double border around a whole screen and centers content
// inside it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel is a rounded box of width w, used for flashcards and stats.
func Panel(content string, w int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(w - 2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

// Button renders a bordered label. The focused button is filled gold and
// carries a marker.
func Button(label string, focused bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder())
	if !focused {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Gilt).
		BorderForeground(theme.Gilt).
		Render("▸ " + label)
}
