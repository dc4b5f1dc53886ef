package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "lessons"})
	drill := &stubScreen{title: "drill"}
	r.Push(drill)

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "drill" {
		t.Errorf("Active() = %q, want drill", r.Active().Title())
	}
	if !drill.initRan {
		t.Error("Push did not run Init")
	}
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&stubScreen{title: "lessons"})
	r.Push(&stubScreen{title: "lesson 1"})
	r.Pop()
	r.Pop()

	if r.Depth() != 1 || r.Active().Title() != "lessons" {
		t.Errorf("after two pops: depth %d active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopToRoot(t *testing.T) {
	r := New(&stubScreen{title: "lessons"})
	r.Push(&stubScreen{title: "lesson 2"})
	r.Push(&stubScreen{title: "quiz"})
	r.Update(PopToRootMsg{})

	if r.Depth() != 1 || r.Active().Title() != "lessons" {
		t.Errorf("after PopToRootMsg: depth %d active %q", r.Depth(), r.Active().Title())
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name      string
		pushFirst bool
		wantDepth int
	}{
		{"root", false, 1},
		{"top of stack", true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "lessons"})
			if tt.pushFirst {
				r.Push(&stubScreen{title: "drill"})
			}
			summary := &stubScreen{title: "summary"}
			r.Update(ReplaceScreenMsg{Screen: summary})

			if r.Depth() != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", r.Depth(), tt.wantDepth)
			}
			if r.Active() != summary || !summary.initRan {
				t.Errorf("replacement not active or not initialised")
			}
		})
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	root := &stubScreen{title: "lessons"}
	top := &stubScreen{title: "tutor"}
	r := New(root)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if len(top.got) != 1 || len(root.got) != 0 {
		t.Errorf("messages: top %d root %d, want 1 and 0", len(top.got), len(root.got))
	}
}

func TestCommands(t *testing.T) {
	s := &stubScreen{title: "quiz"}
	if msg, ok := PushCmd(s)().(PushScreenMsg); !ok || msg.Screen != s {
		t.Errorf("PushCmd produced %#v", msg)
	}
	if _, ok := ReplaceCmd(s)().(ReplaceScreenMsg); !ok {
		t.Error("ReplaceCmd produced the wrong message")
	}
	if _, ok := PopCmd().(PopScreenMsg); !ok {
		t.Error("PopCmd produced the wrong message")
	}
	if _, ok := PopToRootCmd().(PopToRootMsg); !ok {
		t.Error("PopToRootCmd produced the wrong message")
	}
}
