package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/scoring"
	"github.com/xamuil2/digitalludus/internal/screen"
)

type stubScreen struct{ lesson int }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "stub" }

func again() screen.Screen     { return &stubScreen{} }
func next(n int) screen.Screen { return &stubScreen{lesson: n} }
func down() tea.KeyPressMsg    { return tea.KeyPressMsg{Code: tea.KeyDown} }
func enter() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestSummaryScreen_PassedOffersNextLesson(t *testing.T) {
	sum := scoring.Drill(9, 10, 6).WithNextLesson(2, true)
	s := New(sum, again, next)

	view := s.View(80, 24)
	for _, want := range []string{"Excellent Work!", "9 of 10 correct", "90%", "Best streak: 6", "Continue to Lesson 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(down())
	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected a command from the menu")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if got := msg.Screen.(*stubScreen).lesson; got != 2 {
		t.Errorf("next lesson = %d, want 2", got)
	}
}

func TestSummaryScreen_FailedHasNoNextLesson(t *testing.T) {
	sum := scoring.Quiz(1, 4).WithNextLesson(2, true)
	s := New(sum, again, next)

	if strings.Contains(s.View(80, 24), "Continue to Lesson") {
		t.Error("failed summary should not offer the next lesson")
	}
	if s.Title() != "Quiz Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Results")
	}

	// Second item is Back.
	s.Update(down())
	_, cmd := s.Update(enter())
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestSummaryScreen_TryAgain(t *testing.T) {
	s := New(scoring.Drill(0, 3, 0), again, nil)
	_, cmd := s.Update(enter())
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
}
