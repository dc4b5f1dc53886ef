// Package catalog holds the read-only lesson, vocabulary and quiz content
// of the textbook. A Catalog is built once at start-up from a validated
// document and never mutated afterwards.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
)

// ErrLessonNotFound is returned when a lesson id resolves no lesson.
var ErrLessonNotFound = errors.New("lesson not found")

//go:embed data/catalog.json
var seedJSON []byte

// Catalog is the in-memory content index.
type Catalog struct {
	version      string
	lessons      []Lesson
	byID         map[int]int
	vocab        []VocabItem
	quiz         []QuizQuestion
	quizByLesson map[int][]QuizQuestion
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Parse(seedJSON)
})

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// LoadFile reads and validates a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Load returns the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse validates raw JSON against the catalog schema and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := validateShape(data); err != nil {
		return nil, err
	}
	doc, err := decodeStrict(data)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// New builds a Catalog from an already decoded document. Records that
// break a cross-reference or range invariant cause the whole document to
// be rejected.
func New(doc Document) (*Catalog, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	lessons := slices.Clone(doc.Lessons)
	slices.SortFunc(lessons, func(a, b Lesson) int { return a.ID - b.ID })

	c := &Catalog{
		version:      doc.Version,
		lessons:      lessons,
		byID:         make(map[int]int, len(lessons)),
		quiz:         slices.Clone(doc.Quiz),
		quizByLesson: make(map[int][]QuizQuestion, len(lessons)),
	}
	for i, l := range lessons {
		c.byID[l.ID] = i
		c.vocab = append(c.vocab, l.Vocabulary...)
	}
	for _, q := range c.quiz {
		c.quizByLesson[q.Lesson] = append(c.quizByLesson[q.Lesson], q)
	}
	return c, nil
}

// Version returns the semantic version of the loaded content.
func (c *Catalog) Version() string {
	return c.version
}

// LessonByID returns the lesson with the given id.
func (c *Catalog) LessonByID(id int) (Lesson, error) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("lesson %d: %w", id, ErrLessonNotFound)
	}
	return c.lessons[i], nil
}

// HasLesson reports whether id resolves a lesson.
func (c *Catalog) HasLesson(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Lessons returns all lessons ordered by id.
func (c *Catalog) Lessons() []Lesson {
	return slices.Clone(c.lessons)
}

// LessonIDs returns every lesson id in ascending order.
func (c *Catalog) LessonIDs() []int {
	ids := make([]int, len(c.lessons))
	for i, l := range c.lessons {
		ids[i] = l.ID
	}
	return ids
}

// LessonsByDifficulty returns the lessons of the given tier, ordered by id.
func (c *Catalog) LessonsByDifficulty(tier Tier) []Lesson {
	var out []Lesson
	for _, l := range c.lessons {
		if l.Difficulty == tier {
			out = append(out, l)
		}
	}
	return out
}

// QuizByLesson returns the quiz questions of a lesson in authored order.
func (c *Catalog) QuizByLesson(id int) ([]QuizQuestion, error) {
	if !c.HasLesson(id) {
		return nil, fmt.Errorf("quiz for lesson %d: %w", id, ErrLessonNotFound)
	}
	return slices.Clone(c.quizByLesson[id]), nil
}

// Vocabulary returns every vocabulary item, grouped by lesson.
func (c *Catalog) Vocabulary() []VocabItem {
	return slices.Clone(c.vocab)
}

// Questions returns every quiz question in authored order.
func (c *Catalog) Questions() []QuizQuestion {
	return slices.Clone(c.quiz)
}

// NextLesson returns the id of the lesson following id, if any.
func (c *Catalog) NextLesson(id int) (int, bool) {
	for _, l := range c.lessons {
		if l.ID > id {
			return l.ID, true
		}
	}
	return 0, false
}
