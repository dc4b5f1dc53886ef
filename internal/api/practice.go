package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/quiz"
)

type selectionRequest struct {
	Lessons    []int  `json:"lessons"`
	Difficulty string `json:"difficulty"`
	Mode       string `json:"mode,omitempty"`
}

type drillResponse struct {
	ID string `json:"id"`
	drill.State
}

type quizResponse struct {
	ID string `json:"id"`
	quiz.State
}

func (s *Server) createDrill(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	sel, f, err := s.selection(req.Lessons, req.Difficulty)
	if err != nil {
		respondError(w, err)
		return
	}
	mode, err := drill.ParseMode(req.Mode)
	if err != nil {
		respondError(w, &inputError{err: err})
		return
	}
	d, err := drill.Start(s.lessons, sel, f, drill.WithMode(mode), drill.WithRand(s.rng()))
	if err != nil {
		respondError(w, err)
		return
	}
	id := s.drills.add(d)
	respondJSON(w, http.StatusCreated, drillResponse{ID: id, State: d.Snapshot()})
}

// drillStep applies fn to the session named in the URL and responds with the
// resulting state. A nil fn only reads the state.
func (s *Server) drillStep(fn func(*drill.Session) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.updateDrill(w, r, fn)
	}
}

func (s *Server) updateDrill(w http.ResponseWriter, r *http.Request, fn func(*drill.Session) error) {
	id := chi.URLParam(r, "id")
	var st drill.State
	err := s.drills.with(id, func(d *drill.Session) error {
		if fn != nil {
			if err := fn(d); err != nil {
				return err
			}
		}
		st = d.Snapshot()
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, drillResponse{ID: id, State: st})
}

func (s *Server) markDrill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct *bool `json:"correct"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Correct == nil {
		respondError(w, badInput("correct is required"))
		return
	}
	s.updateDrill(w, r, func(d *drill.Session) error { return d.Mark(*req.Correct) })
}

func (s *Server) changeDrillSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	sel, f, err := s.selection(req.Lessons, req.Difficulty)
	if err != nil {
		respondError(w, err)
		return
	}
	s.updateDrill(w, r, func(d *drill.Session) error { return d.ChangeSelection(sel, f) })
}

func (s *Server) deleteDrill(w http.ResponseWriter, r *http.Request) {
	if !s.drills.remove(chi.URLParam(r, "id")) {
		respondError(w, errSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	sel, f, err := s.selection(req.Lessons, req.Difficulty)
	if err != nil {
		respondError(w, err)
		return
	}
	q, err := quiz.Start(s.lessons, sel, f, quiz.WithRand(s.rng()))
	if err != nil {
		respondError(w, err)
		return
	}
	id := s.quizzes.add(q)
	respondJSON(w, http.StatusCreated, quizResponse{ID: id, State: q.Snapshot()})
}

func (s *Server) quizStep(fn func(*quiz.Session) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.updateQuiz(w, r, fn)
	}
}

func (s *Server) updateQuiz(w http.ResponseWriter, r *http.Request, fn func(*quiz.Session) error) {
	id := chi.URLParam(r, "id")
	var st quiz.State
	err := s.quizzes.with(id, func(q *quiz.Session) error {
		if fn != nil {
			if err := fn(q); err != nil {
				return err
			}
		}
		st = q.Snapshot()
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quizResponse{ID: id, State: st})
}

func (s *Server) selectAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Index == nil {
		respondError(w, badInput("index is required"))
		return
	}
	s.updateQuiz(w, r, func(q *quiz.Session) error { return q.SelectAnswer(*req.Index) })
}

func (s *Server) changeQuizSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	sel, f, err := s.selection(req.Lessons, req.Difficulty)
	if err != nil {
		respondError(w, err)
		return
	}
	s.updateQuiz(w, r, func(q *quiz.Session) error { return q.ChangeSelection(sel, f) })
}

func (s *Server) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if !s.quizzes.remove(chi.URLParam(r, "id")) {
		respondError(w, errSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
