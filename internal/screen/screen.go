// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/shuffle"
	"github.com/xamuil2/digitalludus/internal/store"
	"github.com/xamuil2/digitalludus/internal/tutor"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns the stack of screens and
// forwards every message to the one on top.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area between header and footer.
	View(width, height int) string

	// Title is shown in the middle of the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen put a short status (score, streak, lesson)
// on the right of the header.
type StatusProvider interface {
	Status() string
}

// Deps is what screens need to build the screens they lead to.
type Deps struct {
	Catalog *catalog.Catalog
	Tutor   *tutor.Relay

	// Exchanges is nil when no database is open.
	Exchanges store.TutorRepo

	// Rand seeds each new drill or quiz; nil means shuffle.Default.
	Rand func() shuffle.Source
}

// NewRand returns the randomness for one new session.
func (d Deps) NewRand() shuffle.Source {
	if d.Rand == nil {
		return shuffle.Default
	}
	return d.Rand()
}
