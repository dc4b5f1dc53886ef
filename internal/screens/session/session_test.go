package session

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/screens/summary"
	"github.com/xamuil2/digitalludus/internal/shuffle"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDeps(t *testing.T) screen.Deps {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return screen.Deps{
		Catalog: c,
		Rand:    func() shuffle.Source { return shuffle.Seeded(7) },
	}
}

func TestDrillScreen_Title(t *testing.T) {
	s := NewDrill(testDeps(t), pool.One(1), pool.All, drill.LatinToEnglish)
	if s.Title() != "Vocabulary Drill" {
		t.Errorf("Title = %q, want %q", s.Title(), "Vocabulary Drill")
	}
}

func TestDrillScreen_RevealAndMark(t *testing.T) {
	s := NewDrill(testDeps(t), pool.One(2), pool.Medium, drill.LatinToEnglish)
	item, ok := s.drill.Current()
	if !ok {
		t.Fatal("expected a current card")
	}

	view := s.View(80, 24)
	if !strings.Contains(view, item.Latin) {
		t.Errorf("view should show the Latin prompt %q", item.Latin)
	}
	if strings.Contains(view, item.English) {
		t.Error("answer should be hidden before reveal")
	}

	// Marking before reveal is ignored.
	s.Update(keyPress('y'))
	if s.drill.Tally().Total != 0 {
		t.Error("mark before reveal should be ignored")
	}

	s.Update(specialKey(tea.KeySpace))
	if !s.drill.Revealed() {
		t.Fatal("space should reveal the answer")
	}
	if !strings.Contains(s.View(80, 24), item.English) {
		t.Error("revealed view should show the answer")
	}

	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("marking the last card should replace the screen with the summary")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Fatalf("expected summary screen, got %T", msg.Screen)
	}
	if !strings.Contains(msg.Screen.View(80, 24), "1 of 1 correct") {
		t.Error("summary should count the marked card")
	}
}

func TestDrillScreen_FlipMode(t *testing.T) {
	s := NewDrill(testDeps(t), pool.One(1), pool.All, drill.LatinToEnglish)
	item, _ := s.drill.Current()

	s.Update(keyPress('m'))
	if s.drill.Mode() != drill.EnglishToLatin {
		t.Fatalf("Mode = %v, want %v", s.drill.Mode(), drill.EnglishToLatin)
	}
	if !strings.Contains(s.View(80, 24), "English → Latin") {
		t.Error("view should show the flipped direction")
	}
	if !strings.Contains(s.View(80, 24), item.English) {
		t.Error("flipped card should prompt with the English meaning")
	}
}

func TestDrillScreen_CycleDifficulty(t *testing.T) {
	s := NewDrill(testDeps(t), pool.One(3), pool.All, drill.LatinToEnglish)

	tests := []struct {
		want  pool.Filter
		size  int
		empty bool
	}{
		{pool.Easy, 13, false},
		{pool.Medium, 5, false},
		{pool.Hard, 0, true},
		{pool.All, 18, false},
	}
	for _, tt := range tests {
		s.Update(keyPress('f'))
		if got := s.drill.Filter(); got != tt.want {
			t.Errorf("Filter = %v, want %v", got, tt.want)
		}
		if got := s.drill.Len(); got != tt.size {
			t.Errorf("Len after %v = %d, want %d", tt.want, got, tt.size)
		}
		if got := strings.Contains(s.View(80, 24), "Nothing matches"); got != tt.empty {
			t.Errorf("empty message shown for %v = %v, want %v", tt.want, got, tt.empty)
		}
	}
}

func TestDrillScreen_UnknownLesson(t *testing.T) {
	s := NewDrill(testDeps(t), pool.One(9), pool.All, drill.LatinToEnglish)
	if !strings.Contains(s.View(80, 24), "Something went wrong") {
		t.Error("expected error view")
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestFailedSelectionChangeGoesBack(t *testing.T) {
	deps := testDeps(t)
	d := NewDrill(deps, pool.One(1), pool.All, drill.LatinToEnglish)
	q := NewQuiz(deps, pool.One(1), pool.All)
	// the selection no longer resolves, so cycling the difficulty fails
	d.sel, q.sel = pool.One(9), pool.One(9)

	tests := []struct {
		name   string
		screen screen.Screen
		hints  func() []layout.KeyHint
	}{
		{"drill", d, d.KeyHints},
		{"quiz", q, q.KeyHints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.screen.Update(keyPress('f'))
			if !strings.Contains(tt.screen.View(80, 24), "Something went wrong") {
				t.Fatal("expected error view")
			}
			if hints := tt.hints(); len(hints) != 1 || hints[0].Description != "Back" {
				t.Errorf("KeyHints = %v, want only Back", hints)
			}
			_, cmd := tt.screen.Update(specialKey(tea.KeyEnter))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if _, ok := cmd().(router.PopScreenMsg); !ok {
				t.Fatalf("expected PopScreenMsg, got %T", cmd())
			}
		})
	}
	if d.drill.Revealed() {
		t.Error("keys after the error should not reach the drill")
	}
}

func TestQuizScreen_Flow(t *testing.T) {
	s := NewQuiz(testDeps(t), pool.One(2), pool.Easy)
	if s.quiz.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.quiz.Len())
	}

	var cmd tea.Cmd
	for i := range 4 {
		q, _ := s.quiz.Current()
		if want := fmt.Sprintf("Question %d/4", i+1); !strings.Contains(s.View(100, 30), want) {
			t.Errorf("view missing %q", want)
		}

		// Choose the correct option by number, then submit.
		s.Update(keyPress(rune('1' + q.CorrectAnswer)))
		s.Update(specialKey(tea.KeyEnter))
		if !s.quiz.ShowResult() {
			t.Fatalf("question %d: enter should submit", i+1)
		}
		if !strings.Contains(s.View(100, 30), "Correct!") {
			t.Errorf("question %d: expected correct verdict", i+1)
		}
		_, cmd = s.Update(specialKey(tea.KeyEnter))
	}

	if cmd == nil {
		t.Fatal("finishing the quiz should show the summary")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	view := msg.Screen.View(80, 24)
	if !strings.Contains(view, "4 of 4 correct") {
		t.Errorf("summary view missing score: %q", view)
	}
	if !strings.Contains(view, "Continue to Lesson 3") {
		t.Error("a perfect quiz should offer the next lesson")
	}
}

func TestQuizScreen_WrongAnswer(t *testing.T) {
	s := NewQuiz(testDeps(t), pool.One(1), pool.All)
	q, _ := s.quiz.Current()
	wrong := (q.CorrectAnswer + 1) % len(q.Options)

	s.Update(keyPress(rune('1' + wrong)))
	s.Update(specialKey(tea.KeyEnter))
	if !strings.Contains(s.View(100, 30), "Not quite.") {
		t.Error("expected incorrect verdict")
	}
	if got := s.quiz.Tally(); got.Correct != 0 || got.Total != 1 {
		t.Errorf("Tally = %+v, want 0/1", got)
	}

	// Keys other than enter do nothing while the result shows.
	s.Update(keyPress('f'))
	if !s.quiz.ShowResult() {
		t.Error("f should not change the selection while a result is shown")
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s := NewQuiz(testDeps(t), pool.One(1), pool.All)
	if got := s.KeyHints()[1].Description; got != "Submit" {
		t.Errorf("hint = %q, want %q", got, "Submit")
	}
	s.Update(specialKey(tea.KeyEnter))
	if got := s.KeyHints()[0].Description; got != "Next" {
		t.Errorf("hint after submit = %q, want %q", got, "Next")
	}
}
