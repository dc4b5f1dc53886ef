// Package app is the root Bubble Tea model of the TUI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/screens/home"
	"github.com/xamuil2/digitalludus/internal/screens/welcome"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
)

var (
	quitHint  = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	backHint  = layout.KeyHint{Key: "Esc", Description: "Back"}
	menuHints = []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quitHint,
	}
)

// AppModel owns the screen stack and draws the header and footer around
// the active screen.
type AppModel struct {
	router        *router.Router
	width, height int
}

type Option func(*options)

type options struct {
	start func(screen.Deps) screen.Screen
}

// WithStartScreen skips the splash and opens fn's screen over the home
// screen, so Esc leads back home.
func WithStartScreen(fn func(screen.Deps) screen.Screen) Option {
	return func(o *options) { o.start = fn }
}

func newAppModel(deps screen.Deps, start func(screen.Deps) screen.Screen) AppModel {
	newHome := func() screen.Screen { return home.New(deps) }
	if start == nil {
		return AppModel{router: router.New(welcome.New(newHome))}
	}
	r := router.New(newHome())
	r.Push(start(deps))
	return AppModel{router: r}
}

func (m AppModel) Init() tea.Cmd { return m.router.Active().Init() }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Esc always means back; the root screen ignores it.
			if m.router.Depth() == 1 {
				return m, nil
			}
			return m, router.PopCmd
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}
	active := m.router.Active()
	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)
	body := m.router.View(m.width, max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer)))
	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

// hints prefers the active screen's own key hints.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if own := kp.KeyHints(); len(own) > 0 {
			return append(own, quitHint)
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{backHint, quitHint}
	}
	return menuHints
}

// Run blocks until the user quits.
func Run(deps screen.Deps, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := tea.NewProgram(newAppModel(deps, o.start)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
