// Package quiz runs a multiple-choice quiz over a shuffled question pool.
//
// A question is answered in two steps: SelectAnswer may be called any
// number of times until Submit locks the choice in and shows the result.
// Advance then moves on. Quizzes keep a cumulative tally and no streak.
package quiz

import (
	"errors"
	"fmt"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/scoring"
	"github.com/xamuil2/digitalludus/internal/shuffle"
)

var (
	ErrNotStarted       = errors.New("quiz has not started")
	ErrComplete         = errors.New("quiz is complete")
	ErrNoSelection      = errors.New("no answer selected")
	ErrAlreadySubmitted = errors.New("answer already submitted")
	ErrNotSubmitted     = errors.New("answer has not been submitted")
	ErrNoSource         = errors.New("quiz has no pool source")
)

// OptionOutOfRangeError is returned by SelectAnswer for an index the
// current question does not have.
type OptionOutOfRangeError struct {
	Index   int
	Options int
}

func (e *OptionOutOfRangeError) Error() string {
	return fmt.Sprintf("option %d out of range (question has %d options)", e.Index, e.Options)
}

// Phase is the lifecycle state of a quiz.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseActive   Phase = "active"
	PhaseComplete Phase = "complete"
)

// Tally counts submitted answers.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Answer is one submitted choice.
type Answer struct {
	QuestionID string `json:"questionId"`
	Selected   int    `json:"selected"`
	Correct    bool   `json:"correct"`
}

// Session is one pass through a shuffled question pool.
type Session struct {
	questions  []catalog.QuizQuestion
	cursor     int
	selected   int // -1 when nothing is selected
	showResult bool
	history    []Answer
	tally      Tally
	phase      Phase

	src      pool.Source
	selector pool.Selector
	filter   pool.Filter
	rng      shuffle.Source
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the randomness used for shuffling.
func WithRand(r shuffle.Source) Option {
	return func(s *Session) { s.rng = r }
}

// WithSource lets the session rebuild its pool on ChangeSelection.
func WithSource(src pool.Source) Option {
	return func(s *Session) { s.src = src }
}

// New returns a quiz in the loading phase.
func New(opts ...Option) *Session {
	s := &Session{phase: PhaseLoading, filter: pool.All, selected: -1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the question pool for a selection and initializes on it.
func Start(src pool.Source, sel pool.Selector, f pool.Filter, opts ...Option) (*Session, error) {
	s := New(append([]Option{WithSource(src)}, opts...)...)
	if err := s.ChangeSelection(sel, f); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize shuffles a copy of questions and clears all progress.
func (s *Session) Initialize(questions []catalog.QuizQuestion) {
	s.questions = shuffle.Copy(s.rng, questions)
	s.cursor = 0
	s.selected = -1
	s.showResult = false
	s.history = nil
	s.tally = Tally{}
	if len(s.questions) == 0 {
		s.phase = PhaseComplete
	} else {
		s.phase = PhaseActive
	}
}

func (s *Session) ready() error {
	switch s.phase {
	case PhaseLoading:
		return ErrNotStarted
	case PhaseComplete:
		return ErrComplete
	}
	return nil
}

// SelectAnswer chooses option i of the current question, replacing any
// earlier choice. It does nothing once the result is shown.
func (s *Session) SelectAnswer(i int) error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.showResult {
		return nil
	}
	q := s.questions[s.cursor]
	if i < 0 || i >= len(q.Options) {
		return &OptionOutOfRangeError{Index: i, Options: len(q.Options)}
	}
	s.selected = i
	return nil
}

// Submit locks in the selected answer and scores it.
func (s *Session) Submit() error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.showResult {
		return ErrAlreadySubmitted
	}
	if s.selected < 0 {
		return ErrNoSelection
	}

	q := s.questions[s.cursor]
	correct := q.IsCorrect(s.selected)
	s.showResult = true
	s.history = append(s.history, Answer{QuestionID: q.ID, Selected: s.selected, Correct: correct})
	s.tally.Total++
	if correct {
		s.tally.Correct++
	}
	return nil
}

// Advance moves past a submitted question, completing the quiz after the
// last one.
func (s *Session) Advance() error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.showResult {
		return ErrNotSubmitted
	}
	if s.cursor == len(s.questions)-1 {
		s.phase = PhaseComplete
		return nil
	}
	s.cursor++
	s.selected = -1
	s.showResult = false
	return nil
}

// Reset reshuffles the current questions and starts over.
func (s *Session) Reset() error {
	if s.phase == PhaseLoading {
		return ErrNotStarted
	}
	s.Initialize(s.questions)
	return nil
}

// ChangeSelection rebuilds the pool for a new selection. On error the
// current quiz is left as it was.
func (s *Session) ChangeSelection(sel pool.Selector, f pool.Filter) error {
	if s.src == nil {
		return ErrNoSource
	}
	qs, err := pool.Questions(s.src, sel, f)
	if err != nil {
		return err
	}
	s.selector = sel
	s.filter = f
	s.Initialize(qs)
	return nil
}

func (s *Session) Phase() Phase            { return s.phase }
func (s *Session) Complete() bool          { return s.phase == PhaseComplete }
func (s *Session) Cursor() int             { return s.cursor }
func (s *Session) Len() int                { return len(s.questions) }
func (s *Session) Tally() Tally            { return s.tally }
func (s *Session) ShowResult() bool        { return s.showResult }
func (s *Session) Selector() pool.Selector { return s.selector }
func (s *Session) Filter() pool.Filter     { return s.filter }

// Selected returns the chosen option of the current question.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// History returns the submitted answers in order.
func (s *Session) History() []Answer {
	out := make([]Answer, len(s.history))
	copy(out, s.history)
	return out
}

// Order returns the question ids in working order.
func (s *Session) Order() []string {
	ids := make([]string, len(s.questions))
	for i, q := range s.questions {
		ids[i] = q.ID
	}
	return ids
}

// Current returns the question under the cursor. The last question stays
// current after completion so its result can still be shown.
func (s *Session) Current() (catalog.QuizQuestion, bool) {
	if s.phase == PhaseLoading || len(s.questions) == 0 {
		return catalog.QuizQuestion{}, false
	}
	return s.questions[s.cursor], true
}

// Summary scores the quiz so far, offering the next lesson the way the
// drill does.
func (s *Session) Summary() scoring.Summary {
	sum := scoring.Quiz(s.tally.Correct, s.tally.Total)
	if next, ok := s.nextLesson(); ok {
		sum = sum.WithNextLesson(next, true)
	}
	return sum
}
