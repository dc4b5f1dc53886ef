package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/pool"
)

type lessonSummary struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Subtitle      string       `json:"subtitle,omitempty"`
	Description   string       `json:"description"`
	Difficulty    catalog.Tier `json:"difficulty"`
	EstimatedTime int          `json:"estimatedTime"`
	PageNumbers   []int        `json:"pageNumbers"`
	Vocabulary    int          `json:"vocabularyCount"`
	Questions     int          `json:"questionCount"`
}

func (s *Server) summarize(l catalog.Lesson) lessonSummary {
	qs, _ := s.lessons.QuizByLesson(l.ID)
	return lessonSummary{
		ID:            l.ID,
		Title:         l.Title,
		Subtitle:      l.Subtitle,
		Description:   l.Description,
		Difficulty:    l.Difficulty,
		EstimatedTime: l.EstimatedTime,
		PageNumbers:   l.PageNumbers,
		Vocabulary:    len(l.Vocabulary),
		Questions:     len(qs),
	}
}

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	lessons := s.lessons.Lessons()
	if d := strings.TrimSpace(r.URL.Query().Get("difficulty")); d != "" {
		tier := catalog.Tier(strings.ToLower(d))
		if !tier.Valid() {
			respondError(w, badInput("unknown lesson difficulty %q", d))
			return
		}
		lessons = s.lessons.LessonsByDifficulty(tier)
	}
	out := make([]lessonSummary, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, s.summarize(l))
	}
	respondJSON(w, http.StatusOK, out)
}

func lessonID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badInput("invalid lesson id %q", raw)
	}
	return id, nil
}

func (s *Server) getLesson(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	l, err := s.lessons.LessonByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) getLessonQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	qs, err := s.lessons.QuizByLesson(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, qs)
}

// selection parses lesson ids and a difficulty filter. No lessons means
// every lesson in the catalog.
func (s *Server) selection(lessons []int, difficulty string) (pool.Selector, pool.Filter, error) {
	f, err := pool.ParseFilter(difficulty)
	if err != nil {
		return pool.Selector{}, "", &inputError{err: err}
	}
	if len(lessons) == 0 {
		lessons = s.lessons.LessonIDs()
	}
	return pool.Set(lessons...), f, nil
}

func (s *Server) listVocabulary(w http.ResponseWriter, r *http.Request) {
	var ids []int
	if raw := strings.TrimSpace(r.URL.Query().Get("lessons")); raw != "" {
		sel, err := pool.ParseSelector(raw)
		if err != nil {
			respondError(w, &inputError{err: err})
			return
		}
		ids = sel.IDs()
	}
	sel, f, err := s.selection(ids, r.URL.Query().Get("difficulty"))
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := pool.Vocabulary(s.lessons, sel, f)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
