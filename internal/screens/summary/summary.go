// Package summary shows the result of a finished drill or quiz.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/scoring"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/ui/components"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// SummaryScreen displays a scoring.Summary with options to retry, move on
// to the next lesson or go back.
type SummaryScreen struct {
	summary scoring.Summary
	menu    components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. again builds a fresh run of the same
// selection; next, if non-nil, builds a run for the offered next lesson.
func New(sum scoring.Summary, again func() screen.Screen, next func(lesson int) screen.Screen) *SummaryScreen {
	items := []components.MenuItem{
		{Label: "Try again", Action: func() tea.Cmd { return router.ReplaceCmd(again()) }},
	}
	if sum.NextLesson != nil && next != nil {
		lesson := *sum.NextLesson
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Continue to Lesson %d", lesson),
			Action: func() tea.Cmd { return router.ReplaceCmd(next(lesson)) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Back",
		Action: func() tea.Cmd { return router.PopCmd },
	})
	return &SummaryScreen{summary: sum, menu: components.NewMenu(items)}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.summary.Kind == scoring.KindQuiz {
		return "Quiz Results"
	}
	return "Drill Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	headline := theme.Title
	if !sum.Passed() {
		headline = headline.Foreground(theme.Accent)
	}
	b.WriteString(center.Render(headline.Render(sum.Headline)))
	b.WriteString("\n\n")

	b.WriteString(center.Render(theme.Body.Render(
		fmt.Sprintf("%d of %d correct    %d%%", sum.Correct, sum.Total, sum.Percentage))))
	b.WriteString("\n\n")

	b.WriteString(center.Render(components.Meter(sum.Percentage, min(width-8, 40))))
	b.WriteString("\n\n")

	if sum.Message != "" {
		b.WriteString(center.Render(theme.Subtitle.Render(sum.Message)))
		b.WriteString("\n")
	}
	if sum.Kind == scoring.KindDrill && sum.BestStreak > 0 {
		b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("Best streak: %d", sum.BestStreak))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
