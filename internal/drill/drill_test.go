package drill

import (
	"errors"
	"slices"
	"testing"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/shuffle"
)

func items(ids ...string) []catalog.VocabItem {
	out := make([]catalog.VocabItem, len(ids))
	for i, id := range ids {
		out[i] = catalog.VocabItem{ID: id, Latin: "la-" + id, English: "en-" + id, Lesson: 1, Difficulty: catalog.DifficultyEasy}
	}
	return out
}

func newSession(ids ...string) *Session {
	s := New(WithRand(shuffle.Seeded(1)))
	s.Initialize(items(ids...))
	return s
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScenario_ThreeCards(t *testing.T) {
	s := newSession("A", "B", "C")

	mustNil(t, s.Reveal())
	mustNil(t, s.Mark(true))
	mustNil(t, s.Reveal())
	mustNil(t, s.Mark(false))
	mustNil(t, s.Reveal())
	mustNil(t, s.Mark(true))

	if got := s.Tally(); got != (Tally{Correct: 2, Total: 3}) {
		t.Errorf("tally = %+v, want {2 3}", got)
	}
	if s.Streak() != 1 {
		t.Errorf("streak = %d, want 1", s.Streak())
	}
	if s.BestStreak() < 1 {
		t.Errorf("bestStreak = %d, want >= 1", s.BestStreak())
	}
	if !s.Complete() {
		t.Error("expected session to be complete")
	}
}

func TestInitialize_IsPermutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for seed := uint64(0); seed < 20; seed++ {
		s := New(WithRand(shuffle.Seeded(seed)))
		s.Initialize(items(ids...))

		order := s.Order()
		if len(order) != len(ids) {
			t.Fatalf("len = %d, want %d", len(order), len(ids))
		}
		slices.Sort(order)
		if !slices.Equal(order, ids) {
			t.Fatalf("seed %d: order %v is not a permutation", seed, s.Order())
		}
	}
}

func TestInitialize_ResetsCounters(t *testing.T) {
	s := newSession("a", "b")
	if s.Phase() != PhaseActive || s.Cursor() != 0 || s.Revealed() || s.Tally() != (Tally{}) || s.Streak() != 0 {
		t.Errorf("fresh session state = %+v", s.Snapshot())
	}
}

func TestInitialize_EmptyPoolCompletes(t *testing.T) {
	s := New()
	s.Initialize(nil)

	if !s.Complete() {
		t.Fatal("empty pool should complete immediately")
	}
	if s.Tally() != (Tally{}) {
		t.Errorf("tally = %+v, want {0 0}", s.Tally())
	}
	if err := s.Reveal(); !errors.Is(err, ErrComplete) {
		t.Errorf("Reveal err = %v, want ErrComplete", err)
	}
}

func TestLoading_RejectsTransitions(t *testing.T) {
	s := New()
	if s.Phase() != PhaseLoading {
		t.Fatalf("phase = %s, want loading", s.Phase())
	}
	if err := s.Reveal(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Reveal err = %v", err)
	}
	if err := s.Mark(true); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Mark err = %v", err)
	}
	if err := s.Reset(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Reset err = %v", err)
	}
}

func TestReveal_Idempotent(t *testing.T) {
	s := newSession("a", "b")
	mustNil(t, s.Reveal())
	before := s.Snapshot()
	mustNil(t, s.Reveal())
	after := s.Snapshot()

	if !after.Revealed {
		t.Fatal("expected revealed")
	}
	if before.Cursor != after.Cursor || before.Tally != after.Tally || before.Streak != after.Streak {
		t.Errorf("second Reveal changed state: %+v -> %+v", before, after)
	}
}

func TestMark_RequiresReveal(t *testing.T) {
	s := newSession("a")
	if err := s.Mark(true); !errors.Is(err, ErrNotRevealed) {
		t.Fatalf("err = %v, want ErrNotRevealed", err)
	}
	if s.Tally().Total != 0 || s.Cursor() != 0 {
		t.Error("rejected Mark changed the session")
	}
}

func TestMark_TallyAndStreak(t *testing.T) {
	marks := []bool{true, true, false, true, true, true, false, true}
	s := newSession("1", "2", "3", "4", "5", "6", "7", "8")

	prevStreak, prevBest := 0, 0
	for i, m := range marks {
		mustNil(t, s.Reveal())
		mustNil(t, s.Mark(m))

		tally := s.Tally()
		if tally.Total != i+1 {
			t.Errorf("after %d marks total = %d", i+1, tally.Total)
		}
		if tally.Correct > tally.Total {
			t.Errorf("correct %d > total %d", tally.Correct, tally.Total)
		}
		if m && s.Streak() != prevStreak+1 {
			t.Errorf("mark %d: streak = %d, want %d", i, s.Streak(), prevStreak+1)
		}
		if !m && s.Streak() != 0 {
			t.Errorf("mark %d: streak = %d, want 0", i, s.Streak())
		}
		if s.BestStreak() < prevBest {
			t.Errorf("bestStreak decreased from %d to %d", prevBest, s.BestStreak())
		}
		if s.Revealed() {
			t.Errorf("mark %d left the card revealed", i)
		}
		prevStreak, prevBest = s.Streak(), s.BestStreak()
	}

	if s.BestStreak() != 3 {
		t.Errorf("bestStreak = %d, want 3", s.BestStreak())
	}
}

func TestCompletion_IffCursorAtEnd(t *testing.T) {
	s := newSession("a", "b", "c")
	for i := 0; i < 3; i++ {
		if s.Complete() != (s.Cursor() == s.Len()) {
			t.Fatalf("complete = %v with cursor %d/%d", s.Complete(), s.Cursor(), s.Len())
		}
		mustNil(t, s.Reveal())
		mustNil(t, s.Mark(i%2 == 0))
	}
	if !s.Complete() || s.Cursor() != s.Len() {
		t.Fatalf("complete = %v cursor = %d", s.Complete(), s.Cursor())
	}

	before := s.Snapshot()
	if err := s.Reveal(); !errors.Is(err, ErrComplete) {
		t.Errorf("Reveal err = %v", err)
	}
	if err := s.Mark(true); !errors.Is(err, ErrComplete) {
		t.Errorf("Mark err = %v", err)
	}
	after := s.Snapshot()
	if before.Tally != after.Tally || before.Cursor != after.Cursor || after.Revealed {
		t.Errorf("no-op transitions changed a complete session")
	}
}

func TestToggleMode_HidesAnswer(t *testing.T) {
	s := newSession("a", "b")
	mustNil(t, s.Reveal())
	s.ToggleMode()

	if s.Mode() != EnglishToLatin {
		t.Errorf("mode = %s, want english-to-latin", s.Mode())
	}
	if s.Revealed() {
		t.Error("toggle must hide the answer")
	}
	s.ToggleMode()
	if s.Mode() != LatinToEnglish {
		t.Errorf("mode = %s, want latin-to-english", s.Mode())
	}
}

func TestReset(t *testing.T) {
	s := newSession("a", "b", "c")
	mustNil(t, s.Reveal())
	mustNil(t, s.Mark(true))
	mustNil(t, s.Reveal())

	mustNil(t, s.Reset())

	if s.Phase() != PhaseActive || s.Cursor() != 0 || s.Revealed() || s.Tally() != (Tally{}) || s.Streak() != 0 {
		t.Errorf("reset state = %+v", s.Snapshot())
	}
	order := s.Order()
	slices.Sort(order)
	if !slices.Equal(order, []string{"a", "b", "c"}) {
		t.Errorf("reset changed pool contents: %v", s.Order())
	}
}

func TestReset_FromComplete(t *testing.T) {
	s := newSession("a")
	mustNil(t, s.Reveal())
	mustNil(t, s.Mark(false))
	if !s.Complete() {
		t.Fatal("expected complete")
	}
	mustNil(t, s.Reset())
	if s.Complete() {
		t.Error("reset from complete should be active")
	}
}

type fakeSource struct {
	vocab   []catalog.VocabItem
	lessons map[int]bool
}

func (f fakeSource) HasLesson(id int) bool             { return f.lessons[id] }
func (f fakeSource) Vocabulary() []catalog.VocabItem   { return f.vocab }
func (f fakeSource) Questions() []catalog.QuizQuestion { return nil }
func (f fakeSource) NextLesson(id int) (int, bool)     { return id + 1, f.lessons[id+1] }

func newFakeSource() fakeSource {
	return fakeSource{
		vocab: []catalog.VocabItem{
			{ID: "1a", Lesson: 1, Difficulty: catalog.DifficultyEasy},
			{ID: "1b", Lesson: 1, Difficulty: catalog.DifficultyHard},
			{ID: "2a", Lesson: 2, Difficulty: catalog.DifficultyEasy},
		},
		lessons: map[int]bool{1: true, 2: true},
	}
}

func TestStart_AndChangeSelection(t *testing.T) {
	s, err := Start(newFakeSource(), pool.One(1), pool.All, WithRand(shuffle.Seeded(3)))
	mustNil(t, err)
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}

	mustNil(t, s.Reveal())
	mustNil(t, s.Mark(true))

	mustNil(t, s.ChangeSelection(pool.Set(1, 2), pool.Easy))
	order := s.Order()
	slices.Sort(order)
	if !slices.Equal(order, []string{"1a", "2a"}) {
		t.Errorf("order = %v, want 1a and 2a", order)
	}
	if s.Tally() != (Tally{}) {
		t.Errorf("tally = %+v, want zero after selection change", s.Tally())
	}
}

func TestChangeSelection_NotFoundKeepsSession(t *testing.T) {
	s, err := Start(newFakeSource(), pool.One(1), pool.All)
	mustNil(t, err)
	before := s.Order()

	err = s.ChangeSelection(pool.One(9), pool.All)
	if !errors.Is(err, catalog.ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
	if !slices.Equal(before, s.Order()) || s.Selector().String() != "1" {
		t.Error("failed selection change altered the session")
	}
}

func TestChangeSelection_NoSource(t *testing.T) {
	if err := New().ChangeSelection(pool.One(1), pool.All); !errors.Is(err, ErrNoSource) {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestChangeSelection_EmptyResultCompletes(t *testing.T) {
	s, err := Start(newFakeSource(), pool.One(2), pool.Hard)
	mustNil(t, err)
	if !s.Complete() || s.Len() != 0 {
		t.Errorf("complete = %v len = %d", s.Complete(), s.Len())
	}
}

func TestSnapshot_CardRespectsModeAndReveal(t *testing.T) {
	s := newSession("x")

	st := s.Snapshot()
	if st.Card == nil || st.Card.Prompt != "la-x" || st.Card.Answer != "" {
		t.Fatalf("card = %+v", st.Card)
	}

	mustNil(t, s.Reveal())
	st = s.Snapshot()
	if st.Card.Answer != "en-x" {
		t.Errorf("answer = %q, want en-x", st.Card.Answer)
	}

	s.ToggleMode()
	st = s.Snapshot()
	if st.Card.Prompt != "en-x" || st.Card.Answer != "" {
		t.Errorf("flipped card = %+v", st.Card)
	}
}

func TestSnapshot_SummaryOffersNextLesson(t *testing.T) {
	s, err := Start(newFakeSource(), pool.One(1), pool.All)
	mustNil(t, err)
	for !s.Complete() {
		mustNil(t, s.Reveal())
		mustNil(t, s.Mark(true))
	}

	st := s.Snapshot()
	if st.Card != nil {
		t.Error("complete session should have no card")
	}
	if st.Summary == nil {
		t.Fatal("expected a summary")
	}
	if st.Summary.Percentage != 100 || st.Summary.Headline != "Excellent Work!" {
		t.Errorf("summary = %+v", st.Summary)
	}
	if st.Summary.NextLesson == nil || *st.Summary.NextLesson != 2 {
		t.Errorf("next lesson = %v, want 2", st.Summary.NextLesson)
	}
	if sum := s.Summary(); sum.NextLesson == nil || *sum.NextLesson != 2 {
		t.Errorf("Summary().NextLesson = %v, want 2", sum.NextLesson)
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{"": LatinToEnglish, "la": LatinToEnglish, "en": EnglishToLatin, "english-to-latin": EnglishToLatin}
	for in, want := range tests {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseMode("greek"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
