package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Action runs on enter.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor skips disabled items and
// wraps at both ends; digits 1-9 jump straight to an item.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the cursor by delta to the next enabled item.
func (m *Menu) move(delta int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+delta*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	if item := m.Items[m.Selected]; !item.Disabled && item.Action != nil {
		return item.Action()
	}
	return nil
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		return m, m.activate()
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(m.Items) || m.Items[n-1].Disabled {
			return m, nil
		}
		m.Selected = n - 1
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines[i] = lipgloss.NewStyle().Foreground(theme.Border).Render("    " + item.Label)
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + item.Label)
		default:
			lines[i] = theme.Unselected.Render("    " + item.Label)
		}
	}
	return strings.Join(lines, "\n")
}
