// Package pool builds the candidate set of drillable items for a lesson
// selection and difficulty filter.
package pool

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xamuil2/digitalludus/internal/catalog"
)

// ErrEmptyPool labels a selection that matched no items. Builders never
// return it; front ends use it to tell an empty state apart from a fault.
var ErrEmptyPool = errors.New("no items match the selection")

// ErrEmptySelector is returned when a selector names no lesson at all.
var ErrEmptySelector = errors.New("no lessons selected")

// Source is the read access the builder needs from the catalog.
type Source interface {
	HasLesson(id int) bool
	Vocabulary() []catalog.VocabItem
	Questions() []catalog.QuizQuestion
}

// Selector names one lesson or a set of lessons.
type Selector struct {
	ids []int
}

// One selects a single lesson.
func One(id int) Selector {
	return Selector{ids: []int{id}}
}

// Set selects several lessons. Duplicates are collapsed.
func Set(ids ...int) Selector {
	s := slices.Clone(ids)
	slices.Sort(s)
	return Selector{ids: slices.Compact(s)}
}

// ParseSelector parses a comma separated list of lesson ids such as "1,3".
func ParseSelector(s string) (Selector, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return Selector{}, fmt.Errorf("invalid lesson id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return Selector{}, ErrEmptySelector
	}
	return Set(ids...), nil
}

// IDs returns the selected lesson ids in ascending order.
func (s Selector) IDs() []int {
	return slices.Clone(s.ids)
}

// Contains reports whether id is selected.
func (s Selector) Contains(id int) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// String renders the selector the way ParseSelector reads it.
func (s Selector) String() string {
	parts := make([]string, len(s.ids))
	for i, id := range s.ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Filter restricts items by difficulty.
type Filter string

const (
	All    Filter = "all"
	Easy   Filter = Filter(catalog.DifficultyEasy)
	Medium Filter = Filter(catalog.DifficultyMedium)
	Hard   Filter = Filter(catalog.DifficultyHard)
)

// ParseFilter accepts "", "all", "easy", "medium" or "hard".
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", All:
		return All, nil
	case Easy, Medium, Hard:
		return f, nil
	default:
		return "", fmt.Errorf("unknown difficulty filter %q (want all, easy, medium or hard)", s)
	}
}

// Admits reports whether an item of difficulty d passes the filter.
func (f Filter) Admits(d catalog.Difficulty) bool {
	return f == All || f == "" || catalog.Difficulty(f) == d
}

// resolve checks that every selected lesson exists.
func resolve(src Source, sel Selector) error {
	if len(sel.ids) == 0 {
		return ErrEmptySelector
	}
	var missing []string
	for _, id := range sel.ids {
		if !src.HasLesson(id) {
			missing = append(missing, strconv.Itoa(id))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("lessons %s: %w", strings.Join(missing, ","), catalog.ErrLessonNotFound)
	}
	return nil
}

// Vocabulary returns the vocabulary items of the selected lessons that pass
// the filter. An empty result is not an error.
func Vocabulary(src Source, sel Selector, f Filter) ([]catalog.VocabItem, error) {
	if err := resolve(src, sel); err != nil {
		return nil, err
	}
	out := []catalog.VocabItem{}
	for _, v := range src.Vocabulary() {
		if sel.Contains(v.Lesson) && f.Admits(v.Difficulty) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Questions returns the quiz questions of the selected lessons that pass
// the filter. An empty result is not an error.
func Questions(src Source, sel Selector, f Filter) ([]catalog.QuizQuestion, error) {
	if err := resolve(src, sel); err != nil {
		return nil, err
	}
	out := []catalog.QuizQuestion{}
	for _, q := range src.Questions() {
		if sel.Contains(q.Lesson) && f.Admits(q.Difficulty) {
			out = append(out, q)
		}
	}
	return out, nil
}
