// Package welcome is the splash screen shown when the TUI starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// The temple rises line by line until phase1End, the laurels sway until
// phase2End and the banner stays up from then on. The clock stops at totalDur.
const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

var temple = []string{
	"        ▲",
	"     ╱     ╲",
	"  ╱ S·P·Q·R ╲",
	" ═════════════",
	"  ║ ║ ║ ║ ║ ║",
	"  ║ ║ ║ ║ ║ ║",
	" ▀▀▀▀▀▀▀▀▀▀▀▀▀",
}

var laurels = [2]string{"❦", "✦"}

const tagline = "Disce Latine! Learn Latin, one lesson at a time."

type tickMsg time.Time

// WelcomeScreen plays a short splash and waits for a key before handing
// over to the home screen.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frame   int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that replaces itself with next() on the first key.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }
func (w *WelcomeScreen) Title() string { return "" }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.frame++
		return w, tick()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.ReplaceCmd(w.next())
	}
	return w, nil
}

// visibleRows is how much of the temple has risen so far.
func (w *WelcomeScreen) visibleRows() int {
	if w.elapsed >= phase1End {
		return len(temple)
	}
	return 1 + int(w.elapsed)*(len(temple)-1)/int(phase1End)
}

func (w *WelcomeScreen) View(width, height int) string {
	stone := lipgloss.NewStyle().Foreground(theme.Accent)
	rows := make([]string, 0, len(temple))
	for i, line := range temple[len(temple)-w.visibleRows():] {
		line = stone.Render(line)
		if w.elapsed >= phase1End && i%3 == 0 {
			left := lipgloss.NewStyle().Foreground(theme.Secondary).Render(laurels[w.frame%2])
			right := stone.Render(laurels[(w.frame+1)%2])
			line = left + "  " + line + "  " + right
		}
		rows = append(rows, line)
	}
	body := strings.Join(rows, "\n")

	if w.elapsed >= phase2End {
		body += "\n\n" + RenderBanner(width) +
			"\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline) +
			"\n\n" + theme.Hint.Render("press any key to continue")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
