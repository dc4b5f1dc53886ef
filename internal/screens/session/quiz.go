package session

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/quiz"
	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/ui/components"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
)

// QuizScreen runs a multiple-choice quiz over a lesson selection.
type QuizScreen struct {
	deps   screen.Deps
	sel    pool.Selector
	quiz   *quiz.Session
	choice components.MultiChoice
	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// NewQuiz starts a quiz.
func NewQuiz(deps screen.Deps, sel pool.Selector, f pool.Filter) *QuizScreen {
	s := &QuizScreen{deps: deps, sel: sel}
	q, err := quiz.Start(deps.Catalog, sel, f, quiz.WithRand(deps.NewRand()))
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.quiz = q
	s.loadQuestion()
	return s
}

// loadQuestion points the choice component at the current question.
func (s *QuizScreen) loadQuestion() {
	q, ok := s.quiz.Current()
	if !ok {
		s.choice = components.NewMultiChoice("", nil)
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options)
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Lesson Quiz"
}

func (s *QuizScreen) Status() string {
	if s.quiz == nil {
		return ""
	}
	t := s.quiz.Tally()
	return fmt.Sprintf("✓ %d/%d", t.Correct, t.Total)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quiz == nil, s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quiz.ShowResult():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/1-4", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "F", Description: "Difficulty"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.quiz == nil || s.errMsg != "" {
		return s, router.PopCmd
	}

	q := s.quiz
	switch kmsg.String() {
	case "enter":
		if q.ShowResult() {
			return s, s.advance()
		}
		return s, s.submit()
	case "f":
		if q.ShowResult() {
			return s, nil
		}
		if err := q.ChangeSelection(s.sel, nextFilter(q.Filter())); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.loadQuestion()
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) submit() tea.Cmd {
	q := s.quiz
	if err := q.SelectAnswer(s.choice.Selected); err != nil {
		return nil
	}
	if err := q.Submit(); err != nil {
		return nil
	}
	cur, _ := q.Current()
	s.choice.Reveal(s.choice.Selected, cur.CorrectAnswer)
	return nil
}

func (s *QuizScreen) advance() tea.Cmd {
	q := s.quiz
	if err := q.Advance(); err != nil {
		return nil
	}
	if !q.Complete() {
		s.loadQuestion()
		return nil
	}
	st := q.Snapshot()
	if st.Summary == nil {
		return nil
	}
	f := q.Filter()
	again := func() screen.Screen { return NewQuiz(s.deps, s.sel, f) }
	next := func(lesson int) screen.Screen { return NewQuiz(s.deps, pool.One(lesson), f) }
	return router.ReplaceCmd(newSummaryScreenAdapter(*st.Summary, again, next))
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	return renderQuestion(s.quiz.Snapshot(), s.choice, width, height)
}
