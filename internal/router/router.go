// Package router keeps the TUI's screen stack. Screens navigate by
// returning one of the commands below; the app feeds the resulting
// messages back through Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }
	// ReplaceScreenMsg swaps the top screen for Screen, e.g. a finished
	// drill for its summary, without growing the stack.
	ReplaceScreenMsg struct{ Screen screen.Screen }
	// PopScreenMsg goes back one screen.
	PopScreenMsg struct{}
	// PopToRootMsg goes back to the lesson menu at the bottom.
	PopToRootMsg struct{}
)

func PushCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func ReplaceCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

func PopCmd() tea.Msg       { return PopScreenMsg{} }
func PopToRootCmd() tea.Msg { return PopToRootMsg{} }

// Router is a stack of screens that always holds at least the root.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace puts s in place of the active screen and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[r.top()] = s
	return s.Init()
}

// Pop closes the active screen. The root stays.
func (r *Router) Pop() tea.Cmd {
	r.truncate(r.top())
	return nil
}

func (r *Router) PopToRoot() tea.Cmd {
	r.truncate(1)
	return nil
}

func (r *Router) truncate(n int) {
	r.stack = r.stack[:max(n, 1)]
}

func (r *Router) Active() screen.Screen { return r.stack[r.top()] }
func (r *Router) Depth() int            { return len(r.stack) }

// Update applies navigation messages. Anything else goes to the active
// screen, whose returned value takes its place.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen)
	case ReplaceScreenMsg:
		return r.Replace(m.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}
	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
