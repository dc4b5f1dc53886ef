package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// Meter draws a score as a laurel-green bar of the given width. percent is
// clamped to 0..100.
func Meter(percent, width int) string {
	width = max(width, 4)
	percent = max(0, min(percent, 100))
	filled := width * percent / 100

	on := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled))
	off := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
	return on + off
}
