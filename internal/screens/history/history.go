// Package history lists recent exchanges with the tutor.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/store"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

const (
	pageSize = 50
	indent   = "      "
)

type loadedMsg struct {
	exchanges []store.TutorExchange
	err       error
}

// HistoryScreen shows past tutor exchanges, newest first. Enter folds a
// reply open or shut.
type HistoryScreen struct {
	repo      store.TutorRepo
	exchanges []store.TutorExchange
	cursor    int
	open      map[int]bool
	loaded    bool
	err       error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New returns the screen; a nil repo gives an empty history.
func New(repo store.TutorRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, open: map[int]bool{}}
}

func (s *HistoryScreen) Title() string { return "Tutor History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Show reply"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return loadedMsg{}
		}
		ex, err := repo.RecentExchanges(context.Background(), store.QueryOpts{Limit: pageSize})
		return loadedMsg{exchanges: ex, err: err}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded, s.exchanges, s.err = true, msg.exchanges, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.PopCmd
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.exchanges)-1), 0)
		case "enter":
			if s.cursor < len(s.exchanges) {
				id := s.exchanges[s.cursor].ID
				s.open[id] = !s.open[id]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	notice := func(c color.Color, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(c).Render("\n\n" + text)
	}
	switch {
	case s.err != nil:
		return notice(theme.Error, "Error: "+s.err.Error())
	case !s.loaded:
		return notice(theme.TextDim, "Loading history...")
	case len(s.exchanges) == 0:
		return notice(theme.TextDim, "No questions yet. Ask Magister Marcellus something!")
	}

	textWidth := max(width-16, 20)
	var b strings.Builder
	b.WriteString("\n")
	for i, ex := range s.exchanges {
		b.WriteString("  " + s.row(i, ex, textWidth-30) + "\n")
		if s.open[ex.ID] {
			b.WriteString(detail(ex, textWidth))
		}
	}
	return b.String()
}

// row is the one-line summary of an exchange: when, where and what was asked.
func (s *HistoryScreen) row(i int, ex store.TutorExchange, questionWidth int) string {
	marker := "  "
	style := lipgloss.NewStyle().Foreground(statusColor(ex))
	if i == s.cursor {
		marker = "> "
		style = style.Bold(true)
	}
	where := ex.Channel
	if ex.Lesson != nil {
		where = fmt.Sprintf("%s · L%d", where, *ex.Lesson)
	}
	return style.Render(fmt.Sprintf("%s%s  %-10s %s", marker, ex.Timestamp.Format("Jan 02 15:04"), where, clip(ex.Question, questionWidth)))
}

func detail(ex store.TutorExchange, width int) string {
	meta := fmt.Sprintf("%d ms", ex.LatencyMs)
	if ex.Demo {
		meta += " · demo"
	} else if ex.Fallback {
		meta += " · failed: " + ex.ErrorMessage
	}
	reply := indent + strings.ReplaceAll(layout.Wrap(ex.Reply, width), "\n", "\n"+indent)
	return lipgloss.NewStyle().Foreground(theme.Text).Render(reply) + "\n" +
		theme.Hint.Render(indent+meta) + "\n\n"
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:max(width-1, 1)]) + "…"
}

func statusColor(ex store.TutorExchange) color.Color {
	switch {
	case ex.Fallback:
		return theme.Error
	case ex.Demo:
		return theme.TextDim
	}
	return theme.Text
}
