package quiz

import (
	"errors"
	"slices"
	"testing"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/shuffle"
)

func questions(ids ...string) []catalog.QuizQuestion {
	out := make([]catalog.QuizQuestion, len(ids))
	for i, id := range ids {
		out[i] = catalog.QuizQuestion{
			ID:            id,
			Question:      "q-" + id,
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 1,
			Explanation:   "because " + id,
			Lesson:        1,
			Difficulty:    catalog.DifficultyEasy,
			Category:      catalog.CategoryVocabulary,
		}
	}
	return out
}

func newQuiz(ids ...string) *Session {
	s := New(WithRand(shuffle.Seeded(7)))
	s.Initialize(questions(ids...))
	return s
}

func answer(t *testing.T, s *Session, i int) {
	t.Helper()
	if err := s.SelectAnswer(i); err != nil {
		t.Fatalf("SelectAnswer(%d): %v", i, err)
	}
	if err := s.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
}

func TestQuiz_FullRun(t *testing.T) {
	s := newQuiz("a", "b", "c", "d")
	answer(t, s, 1)
	answer(t, s, 0)
	answer(t, s, 1)
	answer(t, s, 1)

	if !s.Complete() {
		t.Fatal("expected complete")
	}
	if s.Tally() != (Tally{Correct: 3, Total: 4}) {
		t.Errorf("tally = %+v, want {3 4}", s.Tally())
	}
	sum := s.Summary()
	if sum.Percentage != 75 || sum.Message != "Good work! Review the areas you missed." {
		t.Errorf("summary = %+v", sum)
	}
	if len(s.History()) != 4 {
		t.Errorf("history len = %d, want 4", len(s.History()))
	}
}

func TestSelectAnswer_Overwrites(t *testing.T) {
	s := newQuiz("a")
	if err := s.SelectAnswer(0); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectAnswer(1); err != nil {
		t.Fatal(err)
	}
	if sel, ok := s.Selected(); !ok || sel != 1 {
		t.Errorf("selected = %d, %v; want 1", sel, ok)
	}
	if err := s.Submit(); err != nil {
		t.Fatal(err)
	}
	if s.Tally().Correct != 1 {
		t.Errorf("overwritten selection was not the one scored")
	}
}

func TestSelectAnswer_NoOpAfterSubmit(t *testing.T) {
	s := newQuiz("a", "b")
	_ = s.SelectAnswer(2)
	_ = s.Submit()

	if err := s.SelectAnswer(1); err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if sel, _ := s.Selected(); sel != 2 {
		t.Errorf("selected = %d, want 2", sel)
	}
	if h := s.History(); h[0].Selected != 2 || h[0].Correct {
		t.Errorf("history = %+v", h)
	}
}

func TestSelectAnswer_OutOfRange(t *testing.T) {
	s := newQuiz("a")
	for _, i := range []int{-1, 4, 10} {
		err := s.SelectAnswer(i)
		var oor *OptionOutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("SelectAnswer(%d) err = %v, want OptionOutOfRangeError", i, err)
		}
	}
	if _, ok := s.Selected(); ok {
		t.Error("rejected selection was stored")
	}
}

func TestSubmit_Guards(t *testing.T) {
	s := newQuiz("a", "b")
	if err := s.Submit(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
	_ = s.SelectAnswer(0)
	if err := s.Submit(); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("err = %v, want ErrAlreadySubmitted", err)
	}
	if s.Tally().Total != 1 {
		t.Errorf("total = %d, want 1", s.Tally().Total)
	}
}

func TestAdvance_RequiresSubmit(t *testing.T) {
	s := newQuiz("a", "b")
	_ = s.SelectAnswer(0)
	if err := s.Advance(); !errors.Is(err, ErrNotSubmitted) {
		t.Errorf("err = %v, want ErrNotSubmitted", err)
	}
	if s.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", s.Cursor())
	}
}

func TestAdvance_ClearsSelection(t *testing.T) {
	s := newQuiz("a", "b")
	_ = s.SelectAnswer(3)
	_ = s.Submit()
	_ = s.Advance()

	if s.Cursor() != 1 || s.ShowResult() {
		t.Errorf("cursor = %d showResult = %v", s.Cursor(), s.ShowResult())
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection survived Advance")
	}
}

func TestComplete_RejectsTransitions(t *testing.T) {
	s := newQuiz("a")
	answer(t, s, 1)

	for name, fn := range map[string]func() error{
		"select":  func() error { return s.SelectAnswer(0) },
		"submit":  s.Submit,
		"advance": s.Advance,
	} {
		if err := fn(); !errors.Is(err, ErrComplete) {
			t.Errorf("%s err = %v, want ErrComplete", name, err)
		}
	}
	if s.Tally().Total != 1 {
		t.Errorf("total = %d, want 1", s.Tally().Total)
	}
}

func TestEmptyPool(t *testing.T) {
	s := New()
	s.Initialize(nil)
	if !s.Complete() || s.Tally() != (Tally{}) {
		t.Errorf("complete = %v tally = %+v", s.Complete(), s.Tally())
	}
	if sum := s.Summary(); sum.Percentage != 0 {
		t.Errorf("percentage = %d, want 0", sum.Percentage)
	}
}

func TestLoading(t *testing.T) {
	s := New()
	if err := s.SelectAnswer(0); !errors.Is(err, ErrNotStarted) {
		t.Errorf("err = %v", err)
	}
	if err := s.Reset(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("err = %v", err)
	}
}

func TestReset_ClearsHistory(t *testing.T) {
	s := newQuiz("a", "b", "c")
	answer(t, s, 1)
	answer(t, s, 0)

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.Cursor() != 0 || s.Tally() != (Tally{}) || len(s.History()) != 0 || s.ShowResult() {
		t.Errorf("reset state = %+v", s.Snapshot())
	}
	order := s.Order()
	slices.Sort(order)
	if !slices.Equal(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", s.Order())
	}
}

func TestStart_DefaultCatalog(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	s, err := Start(c, pool.One(2), pool.All, WithRand(shuffle.Seeded(1)))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := c.QuizByLesson(2)
	if s.Len() != len(want) {
		t.Errorf("len = %d, want %d", s.Len(), len(want))
	}

	if err := s.ChangeSelection(pool.One(42), pool.All); !errors.Is(err, catalog.ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
	if s.Selector().String() != "2" {
		t.Errorf("selector = %s, want 2", s.Selector())
	}
}

func TestSnapshot_HidesCorrectUntilSubmit(t *testing.T) {
	s := newQuiz("a", "b")
	st := s.Snapshot()
	if st.Question == nil || st.Question.Correct != nil || st.Question.Explanation != "" {
		t.Fatalf("question = %+v", st.Question)
	}
	if st.Selected != nil {
		t.Errorf("selected = %v, want nil", *st.Selected)
	}

	_ = s.SelectAnswer(0)
	_ = s.Submit()
	st = s.Snapshot()
	if st.Question.Correct == nil || *st.Question.Correct != 1 {
		t.Errorf("correct = %v, want 1", st.Question.Correct)
	}
	if st.Selected == nil || *st.Selected != 0 {
		t.Errorf("selected = %v, want 0", st.Selected)
	}
}

func TestSnapshot_SummaryNextLesson(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	s, err := Start(c, pool.One(1), pool.All)
	if err != nil {
		t.Fatal(err)
	}
	for !s.Complete() {
		q, _ := s.Current()
		answer(t, s, q.CorrectAnswer)
	}
	st := s.Snapshot()
	if st.Summary == nil || st.Summary.Percentage != 100 {
		t.Fatalf("summary = %+v", st.Summary)
	}
	if st.Summary.NextLesson == nil || *st.Summary.NextLesson != 2 {
		t.Errorf("next lesson = %v, want 2", st.Summary.NextLesson)
	}
	if sum := s.Summary(); sum.NextLesson == nil || *sum.NextLesson != 2 {
		t.Errorf("Summary().NextLesson = %v, want 2", sum.NextLesson)
	}
}
