package drill

import (
	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/scoring"
)

// Card is the face of the current item as a front end shows it.
type Card struct {
	ID             string `json:"id"`
	Prompt         string `json:"prompt"`
	Answer         string `json:"answer,omitempty"`
	PrincipalParts string `json:"principalParts,omitempty"`
	PartOfSpeech   string `json:"partOfSpeech"`
	Etymology      string `json:"etymology,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Difficulty     string `json:"difficulty"`
	Lesson         int    `json:"lesson"`
}

// CardFor renders item in the given mode. The answer and study notes are
// only filled in when revealed is true.
func CardFor(item catalog.VocabItem, mode Mode, revealed bool) Card {
	c := Card{
		ID:           item.ID,
		PartOfSpeech: item.PartOfSpeech,
		Difficulty:   string(item.Difficulty),
		Lesson:       item.Lesson,
	}
	prompt, answer := item.Latin, item.English
	if mode == EnglishToLatin {
		prompt, answer = item.English, item.Latin
	}
	c.Prompt = prompt
	if revealed {
		c.Answer = answer
		c.PrincipalParts = item.PrincipalParts
		c.Etymology = item.Etymology
		c.Notes = item.Notes
	}
	return c
}

// State is a serializable snapshot of a session.
type State struct {
	Phase      Phase            `json:"phase"`
	Mode       Mode             `json:"mode"`
	Lessons    []int            `json:"lessons"`
	Difficulty string           `json:"difficulty"`
	Cursor     int              `json:"cursor"`
	Size       int              `json:"size"`
	Revealed   bool             `json:"revealed"`
	Tally      Tally            `json:"tally"`
	Streak     int              `json:"streak"`
	BestStreak int              `json:"bestStreak"`
	Complete   bool             `json:"complete"`
	Card       *Card            `json:"card,omitempty"`
	Summary    *scoring.Summary `json:"summary,omitempty"`
}

// Snapshot captures the session for rendering or transport.
func (s *Session) Snapshot() State {
	st := State{
		Phase:      s.phase,
		Mode:       s.mode,
		Lessons:    s.selector.IDs(),
		Difficulty: string(s.filter),
		Cursor:     s.cursor,
		Size:       len(s.items),
		Revealed:   s.revealed,
		Tally:      s.tally,
		Streak:     s.streak,
		BestStreak: s.bestStreak,
		Complete:   s.phase == PhaseComplete,
	}
	if item, ok := s.Current(); ok {
		card := CardFor(item, s.mode, s.revealed)
		st.Card = &card
	}
	if st.Complete {
		sum := s.Summary()
		st.Summary = &sum
	}
	return st
}

type nextLessoner interface {
	NextLesson(id int) (int, bool)
}

// nextLesson offers the lesson after a single-lesson selection.
func (s *Session) nextLesson() (int, bool) {
	ids := s.selector.IDs()
	nl, ok := s.src.(nextLessoner)
	if !ok || len(ids) != 1 {
		return 0, false
	}
	return nl.NextLesson(ids[0])
}
