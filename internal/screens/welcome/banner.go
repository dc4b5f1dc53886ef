package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

const bannerArt = `
██╗     ██╗   ██╗██████╗ ██╗   ██╗███████╗
██║     ██║   ██║██╔══██╗██║   ██║██╔════╝
██║     ██║   ██║██║  ██║██║   ██║███████╗
██║     ██║   ██║██║  ██║██║   ██║╚════██║
███████╗╚██████╔╝██████╔╝╚██████╔╝███████║
╚══════╝ ╚═════╝ ╚═════╝  ╚═════╝ ╚══════╝`

const bannerCompact = "L U D U S"

// RenderBanner returns the LUDUS banner in the primary color, or a compact
// fallback for terminals narrower than 46 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 46 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
