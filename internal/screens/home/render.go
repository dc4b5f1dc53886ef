package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/screens/welcome"
	"github.com/xamuil2/digitalludus/internal/ui/components"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

const (
	titleShort  = "L · U · D · U · S"
	buttonWidth = 22
)

// centre pads s to the panel width with every line centred.
func centre(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func renderTitle(cw int, compact bool) string {
	if compact {
		return centre(lipgloss.NewStyle().Foreground(theme.Gilt).Bold(true).Render(titleShort), cw)
	}
	return centre(welcome.RenderBanner(cw), cw)
}

type tally struct {
	glyph string
	label string
	n     int
	color lipgloss.Style
}

// renderStatsBar shows the course totals in a double-bordered strip.
func renderStatsBar(lessons, words, questions, cw int, compact bool) string {
	tallies := []tally{
		{"§", "LESSONS", lessons, lipgloss.NewStyle().Foreground(theme.Gilt)},
		{"✎", "WORDS", words, lipgloss.NewStyle().Foreground(theme.Accent)},
		{"?", "QUESTIONS", questions, lipgloss.NewStyle().Foreground(theme.Mosaic)},
	}
	parts := make([]string, len(tallies))
	for i, t := range tallies {
		text := fmt.Sprintf("%s %d %s", t.glyph, t.n, t.label)
		if compact {
			text = fmt.Sprintf("%s%d", t.glyph, t.n)
		}
		parts[i] = t.color.Bold(true).Render(text)
	}
	sep := "  "
	if compact {
		sep = " "
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Mosaic).
		Width(cw - 2).
		Padding(0, 1).
		Align(lipgloss.Center).
		Render(strings.Join(parts, sep))
}

func renderMenuButtons(items []string, selected, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.Button(label, i == selected, buttonWidth)
	}
	return centre(strings.Join(buttons, "\n"), cw)
}

// renderMenuCompact lists the items as plain lines for terminals too short
// for bordered buttons.
func renderMenuCompact(items []string, selected, cw int) string {
	on := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Gilt).Bold(true)
	off := lipgloss.NewStyle().Foreground(theme.Text)
	lines := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			lines[i] = on.Render(" ▸ " + label + " ")
			continue
		}
		lines[i] = off.Render("   " + label + " ")
	}
	return centre(strings.Join(lines, "\n"), cw)
}

func renderCaption(text string, cw int) string {
	return centre(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(text), cw)
}

func renderDemoBanner(cw int) string {
	return centre(lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ No LLM configured: tutor in demo mode"), cw)
}
