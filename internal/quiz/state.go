package quiz

import (
	"github.com/xamuil2/digitalludus/internal/scoring"
)

// Question is the current question as a front end shows it. Correct and
// Explanation are only set once the answer is submitted.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	Lesson      int      `json:"lesson"`
	Correct     *int     `json:"correctAnswer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// State is a serializable snapshot of a quiz.
type State struct {
	Phase      Phase            `json:"phase"`
	Lessons    []int            `json:"lessons"`
	Difficulty string           `json:"difficulty"`
	Cursor     int              `json:"cursor"`
	Size       int              `json:"size"`
	Selected   *int             `json:"selectedAnswer"`
	ShowResult bool             `json:"showResult"`
	Tally      Tally            `json:"tally"`
	History    []Answer         `json:"history"`
	Complete   bool             `json:"complete"`
	Question   *Question        `json:"question,omitempty"`
	Summary    *scoring.Summary `json:"summary,omitempty"`
}

// Snapshot captures the quiz for rendering or transport.
func (s *Session) Snapshot() State {
	st := State{
		Phase:      s.phase,
		Lessons:    s.selector.IDs(),
		Difficulty: string(s.filter),
		Cursor:     s.cursor,
		Size:       len(s.questions),
		ShowResult: s.showResult,
		Tally:      s.tally,
		History:    s.History(),
		Complete:   s.phase == PhaseComplete,
	}
	if sel, ok := s.Selected(); ok {
		st.Selected = &sel
	}
	if q, ok := s.Current(); ok && !st.Complete {
		view := Question{
			ID:         q.ID,
			Prompt:     q.Question,
			Options:    append([]string(nil), q.Options...),
			Category:   string(q.Category),
			Difficulty: string(q.Difficulty),
			Lesson:     q.Lesson,
		}
		if s.showResult {
			correct := q.CorrectAnswer
			view.Correct = &correct
			view.Explanation = q.Explanation
		}
		st.Question = &view
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

func (s *Session) nextLesson() (int, bool) {
	ids := s.selector.IDs()
	nl, ok := s.src.(nextLessoner)
	if !ok || len(ids) != 1 {
		return 0, false
	}
	return nl.NextLesson(ids[0])
}
