// Package session holds the practice screens: the flashcard drill and the
// multiple-choice quiz.
package session

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
)

// filterCycle is the order the f key steps through.
var filterCycle = []pool.Filter{pool.All, pool.Easy, pool.Medium, pool.Hard}

func nextFilter(f pool.Filter) pool.Filter {
	for i, c := range filterCycle {
		if c == f {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return pool.All
}

// DrillScreen runs a flashcard drill over a lesson selection.
type DrillScreen struct {
	deps   screen.Deps
	sel    pool.Selector
	drill  *drill.Session
	errMsg string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)

// NewDrill starts a drill. A selection that names an unknown lesson shows
// an error and any key goes back.
func NewDrill(deps screen.Deps, sel pool.Selector, f pool.Filter, mode drill.Mode) *DrillScreen {
	s := &DrillScreen{deps: deps, sel: sel}
	d, err := drill.Start(deps.Catalog, sel, f, drill.WithMode(mode), drill.WithRand(deps.NewRand()))
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.drill = d
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	return nil
}

func (s *DrillScreen) Title() string {
	return "Vocabulary Drill"
}

func (s *DrillScreen) Status() string {
	if s.drill == nil {
		return ""
	}
	t := s.drill.Tally()
	return fmt.Sprintf("✓ %d/%d   ★ %d", t.Correct, t.Total, s.drill.Streak())
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.drill == nil || s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.drill.Revealed() {
		return []layout.KeyHint{
			{Key: "Y", Description: "Knew it"},
			{Key: "N", Description: "Missed it"},
			{Key: "M", Description: "Flip"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Reveal"},
		{Key: "M", Description: "Flip"},
		{Key: "F", Description: "Difficulty"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	// A failed start or selection change leaves only the error on screen.
	if s.drill == nil || s.errMsg != "" {
		return s, router.PopCmd
	}

	d := s.drill
	switch kmsg.String() {
	case "space", "enter":
		if !d.Revealed() {
			_ = d.Reveal()
		}
	case "y", "n":
		if err := d.Mark(kmsg.String() == "y"); err != nil {
			return s, nil
		}
		if d.Complete() {
			return s, s.finish()
		}
	case "m":
		d.ToggleMode()
	case "f":
		if err := d.ChangeSelection(s.sel, nextFilter(d.Filter())); err != nil {
			s.errMsg = err.Error()
		}
	case "r":
		_ = d.Reset()
	}
	return s, nil
}

func (s *DrillScreen) finish() tea.Cmd {
	st := s.drill.Snapshot()
	if st.Summary == nil {
		return nil
	}
	f, mode := s.drill.Filter(), s.drill.Mode()
	again := func() screen.Screen { return NewDrill(s.deps, s.sel, f, mode) }
	next := func(lesson int) screen.Screen { return NewDrill(s.deps, pool.One(lesson), f, mode) }
	return router.ReplaceCmd(newSummaryScreenAdapter(*st.Summary, again, next))
}

func (s *DrillScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	return renderCard(s.drill.Snapshot(), width, height)
}
