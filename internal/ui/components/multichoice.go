package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// MultiChoice lists lettered options under a question. It only moves the
// cursor; the owning screen submits and then calls Reveal.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	revealed        bool
	chosen, correct int
}

func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{Question: question, Options: options, chosen: -1, correct: -1}
}

// Update moves the cursor with the arrow keys or jumps with 1-9.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.revealed || len(m.Options) == 0 {
		return m, nil
	}
	last := len(m.Options) - 1
	switch s := key.String(); s {
	case "up", "k":
		m.Selected = max(m.Selected-1, 0)
	case "down", "j":
		m.Selected = min(m.Selected+1, last)
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' && int(s[0]-'1') <= last {
			m.Selected = int(s[0] - '1')
		}
	}
	return m, nil
}

// Reveal freezes the options and colours the chosen and correct ones.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed, m.chosen, m.correct = true, chosen, correct
}

func (m MultiChoice) Revealed() bool { return m.revealed }

func (m MultiChoice) optionStyle(i int) lipgloss.Style {
	if !m.revealed {
		if i == m.Selected {
			return theme.Selected
		}
		return theme.Unselected
	}
	switch i {
	case m.correct:
		return theme.Correct
	case m.chosen:
		return theme.Incorrect
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim)
}

func (m MultiChoice) View() string {
	lines := []string{lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question), ""}
	for i, opt := range m.Options {
		cursor := "  "
		if !m.revealed && i == m.Selected {
			cursor = "▸ "
		}
		lines = append(lines, m.optionStyle(i).Render(fmt.Sprintf("%s%c)  %s", cursor, 'A'+rune(i), opt)))
	}
	return strings.Join(lines, "\n") + "\n"
}
