// Package drill implements the vocabulary flashcard session: a shuffled
// pool, a cursor, reveal state, running tally and streak counters.
//
// Every transition runs to completion synchronously. A Session is not safe
// for concurrent use; front ends that share one across goroutines must
// serialise access.
package drill

import (
	"errors"
	"fmt"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/scoring"
	"github.com/xamuil2/digitalludus/internal/shuffle"
)

var (
	// ErrNotStarted is returned by transitions that need an initialized pool.
	ErrNotStarted = errors.New("drill has not started")
	// ErrComplete is returned by Reveal and Mark once the pool is exhausted.
	ErrComplete = errors.New("drill is complete")
	// ErrNotRevealed is returned by Mark before the answer was shown.
	ErrNotRevealed = errors.New("answer has not been revealed")
	// ErrNoSource is returned by ChangeSelection on a session built without
	// a pool source.
	ErrNoSource = errors.New("drill has no pool source")
)

// Phase is the lifecycle state of a session.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseActive   Phase = "active"
	PhaseComplete Phase = "complete"
)

// Mode is the direction cards are asked in.
type Mode string

const (
	LatinToEnglish Mode = "latin-to-english"
	EnglishToLatin Mode = "english-to-latin"
)

// ParseMode accepts the full mode names and the short forms "la" and "en".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "la", "latin", string(LatinToEnglish):
		return LatinToEnglish, nil
	case "en", "english", string(EnglishToLatin):
		return EnglishToLatin, nil
	}
	return "", fmt.Errorf("unknown drill mode %q", s)
}

// Flip returns the opposite direction.
func (m Mode) Flip() Mode {
	if m == EnglishToLatin {
		return LatinToEnglish
	}
	return EnglishToLatin
}

// Tally counts marked cards.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Session is one run through a shuffled vocabulary pool.
type Session struct {
	items      []catalog.VocabItem
	cursor     int
	revealed   bool
	mode       Mode
	tally      Tally
	streak     int
	bestStreak int
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

// WithMode sets the initial card direction.
func WithMode(m Mode) Option {
	return func(s *Session) { s.mode = m }
}

// WithSource lets the session rebuild its pool on ChangeSelection.
func WithSource(src pool.Source) Option {
	return func(s *Session) { s.src = src }
}

// New returns a session in the loading phase.
func New(opts ...Option) *Session {
	s := &Session{mode: LatinToEnglish, phase: PhaseLoading, filter: pool.All}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the pool for a selection and initializes a session on it.
func Start(src pool.Source, sel pool.Selector, f pool.Filter, opts ...Option) (*Session, error) {
	s := New(append([]Option{WithSource(src)}, opts...)...)
	if err := s.ChangeSelection(sel, f); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize shuffles a copy of items into a fresh working order and
// zeroes all counters. An empty pool completes immediately.
func (s *Session) Initialize(items []catalog.VocabItem) {
	s.items = shuffle.Copy(s.rng, items)
	s.restart()
}

func (s *Session) restart() {
	s.cursor = 0
	s.revealed = false
	s.tally = Tally{}
	s.streak = 0
	s.bestStreak = 0
	if len(s.items) == 0 {
		s.phase = PhaseComplete
	} else {
		s.phase = PhaseActive
	}
}

// Reveal shows the answer of the current card. Revealing twice has no
// further effect.
func (s *Session) Reveal() error {
	switch s.phase {
	case PhaseLoading:
		return ErrNotStarted
	case PhaseComplete:
		return ErrComplete
	}
	s.revealed = true
	return nil
}

// Mark records whether the learner knew the revealed card and advances.
func (s *Session) Mark(correct bool) error {
	switch {
	case s.phase == PhaseLoading:
		return ErrNotStarted
	case s.phase == PhaseComplete:
		return ErrComplete
	case !s.revealed:
		return ErrNotRevealed
	}

	s.tally.Total++
	if correct {
		s.tally.Correct++
		s.streak++
		s.bestStreak = max(s.bestStreak, s.streak)
	} else {
		s.streak = 0
	}

	s.cursor++
	s.revealed = false
	if s.cursor == len(s.items) {
		s.phase = PhaseComplete
	}
	return nil
}

// ToggleMode flips the card direction and hides the answer.
func (s *Session) ToggleMode() {
	s.mode = s.mode.Flip()
	s.revealed = false
}

// Reset reshuffles the current pool and starts over.
func (s *Session) Reset() error {
	if s.phase == PhaseLoading {
		return ErrNotStarted
	}
	s.Initialize(s.items)
	return nil
}

// ChangeSelection rebuilds the pool for a new selection and initializes
// on it. On error the current session is left as it was.
func (s *Session) ChangeSelection(sel pool.Selector, f pool.Filter) error {
	if s.src == nil {
		return ErrNoSource
	}
	items, err := pool.Vocabulary(s.src, sel, f)
	if err != nil {
		return err
	}
	s.selector = sel
	s.filter = f
	s.Initialize(items)
	return nil
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Complete reports whether every card has been marked.
func (s *Session) Complete() bool { return s.phase == PhaseComplete }

// Mode returns the current card direction.
func (s *Session) Mode() Mode { return s.mode }

// Revealed reports whether the current answer is shown.
func (s *Session) Revealed() bool { return s.revealed }

// Cursor returns the index of the current card.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the number of cards in the pool.
func (s *Session) Len() int { return len(s.items) }

// Tally returns the running score.
func (s *Session) Tally() Tally { return s.tally }

// Streak returns the current run of correct marks.
func (s *Session) Streak() int { return s.streak }

// BestStreak returns the longest run of correct marks this session.
func (s *Session) BestStreak() int { return s.bestStreak }

// Selector returns the lesson selection the pool was built from.
func (s *Session) Selector() pool.Selector { return s.selector }

// Filter returns the difficulty filter the pool was built with.
func (s *Session) Filter() pool.Filter { return s.filter }

// Order returns the ids of the pool in working order.
func (s *Session) Order() []string {
	ids := make([]string, len(s.items))
	for i, it := range s.items {
		ids[i] = it.ID
	}
	return ids
}

// Current returns the current item, or false when there is none.
func (s *Session) Current() (catalog.VocabItem, bool) {
	if s.phase != PhaseActive {
		return catalog.VocabItem{}, false
	}
	return s.items[s.cursor], true
}

// Summary scores the session so far and, for a single-lesson selection,
// offers the lesson after it.
func (s *Session) Summary() scoring.Summary {
	sum := scoring.Drill(s.tally.Correct, s.tally.Total, s.bestStreak)
	if next, ok := s.nextLesson(); ok {
		sum = sum.WithNextLesson(next, true)
	}
	return sum
}
