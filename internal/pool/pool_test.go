package pool

import (
	"errors"
	"strings"
	"testing"

	"github.com/xamuil2/digitalludus/internal/catalog"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

// every non-empty subset of the catalog's lessons
func allSelectors(ids []int) []Selector {
	var out []Selector
	for mask := 1; mask < 1<<len(ids); mask++ {
		var pick []int
		for i, id := range ids {
			if mask&(1<<i) != 0 {
				pick = append(pick, id)
			}
		}
		out = append(out, Set(pick...))
	}
	return out
}

func TestVocabulary_FilterCorrectness(t *testing.T) {
	c := defaultCatalog(t)
	filters := []Filter{All, Easy, Medium, Hard}

	for _, sel := range allSelectors(c.LessonIDs()) {
		for _, f := range filters {
			items, err := Vocabulary(c, sel, f)
			if err != nil {
				t.Fatalf("Vocabulary(%s, %s): %v", sel, f, err)
			}
			for _, it := range items {
				if !sel.Contains(it.Lesson) {
					t.Errorf("Vocabulary(%s, %s) returned %s from lesson %d", sel, f, it.ID, it.Lesson)
				}
				if f != All && it.Difficulty != catalog.Difficulty(f) {
					t.Errorf("Vocabulary(%s, %s) returned %s with difficulty %s", sel, f, it.ID, it.Difficulty)
				}
			}
		}
	}
}

func TestQuestions_FilterCorrectness(t *testing.T) {
	c := defaultCatalog(t)
	for _, sel := range allSelectors(c.LessonIDs()) {
		for _, f := range []Filter{All, Easy, Medium, Hard} {
			qs, err := Questions(c, sel, f)
			if err != nil {
				t.Fatalf("Questions(%s, %s): %v", sel, f, err)
			}
			for _, q := range qs {
				if !sel.Contains(q.Lesson) || !f.Admits(q.Difficulty) {
					t.Errorf("Questions(%s, %s) returned %s (lesson %d, %s)", sel, f, q.ID, q.Lesson, q.Difficulty)
				}
			}
		}
	}
}

func TestVocabulary_Counts(t *testing.T) {
	c := defaultCatalog(t)
	tests := []struct {
		sel  Selector
		f    Filter
		want int
	}{
		{One(1), All, 26},
		{Set(1, 2), All, 45},
		{Set(1, 2, 3), All, 63},
		{Set(2, 2), All, 19},
	}
	for _, tt := range tests {
		items, err := Vocabulary(c, tt.sel, tt.f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != tt.want {
			t.Errorf("Vocabulary(%s, %s) = %d items, want %d", tt.sel, tt.f, len(items), tt.want)
		}
	}
}

func TestVocabulary_EmptyResultIsNotAnError(t *testing.T) {
	c := defaultCatalog(t)
	// lesson 1 authors no hard vocabulary
	items, err := Vocabulary(c, One(1), Hard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", items)
	}
}

func TestVocabulary_UnknownLesson(t *testing.T) {
	c := defaultCatalog(t)
	_, err := Vocabulary(c, One(99), All)
	if !errors.Is(err, catalog.ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
	_, err = Questions(c, Set(1, 99), All)
	if !errors.Is(err, catalog.ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
}

func TestUnknownLessonsListedInOrder(t *testing.T) {
	c := defaultCatalog(t)
	_, err := Vocabulary(c, Set(10, 1, 9), All)
	if err == nil || !strings.HasPrefix(err.Error(), "lessons 9,10:") {
		t.Errorf("err = %v, want lessons 9,10 reported in ascending order", err)
	}
}

func TestEmptySelector(t *testing.T) {
	c := defaultCatalog(t)
	if _, err := Vocabulary(c, Selector{}, All); !errors.Is(err, ErrEmptySelector) {
		t.Errorf("err = %v, want ErrEmptySelector", err)
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1", "1", false},
		{"3, 1,2", "1,2,3", false},
		{"2,2", "2", false},
		{"", "", true},
		{"1,x", "", true},
	}
	for _, tt := range tests {
		sel, err := ParseSelector(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSelector(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && sel.String() != tt.want {
			t.Errorf("ParseSelector(%q) = %q, want %q", tt.in, sel.String(), tt.want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", All, false},
		{"all", All, false},
		{"Easy", Easy, false},
		{"hard", Hard, false},
		{"brutal", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
