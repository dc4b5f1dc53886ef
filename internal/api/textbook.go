package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/xamuil2/digitalludus/internal/textbook"
)

func (s *Server) serveTextbook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Textbook == "" {
		respondMessage(w, http.StatusNotFound, "textbook not configured")
		return
	}
	f, err := os.Open(s.cfg.Textbook)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "textbook not found")
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, "textbook.pdf", fi.ModTime(), f)
}

type viewResponse struct {
	textbook.View
	Scale float64 `json:"scale"`
	Label string  `json:"label"`
}

// textbookView normalises viewer state sent by a client. A lesson id moves
// the view to that lesson's first page.
func (s *Server) textbookView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ints := make(map[string]int, 5)
	for _, key := range []string{"page", "pages", "zoom", "rotation", "lesson"} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, badInput("invalid %s %q", key, raw))
			return
		}
		ints[key] = n
	}

	v := textbook.Normalize(ints["page"], ints["zoom"], ints["rotation"], ints["pages"])
	if id, ok := ints["lesson"]; ok {
		l, err := s.lessons.LessonByID(id)
		if err != nil {
			respondError(w, err)
			return
		}
		v = v.OpenLesson(l)
	}
	respondJSON(w, http.StatusOK, viewResponse{View: v, Scale: v.Scale(), Label: v.Label()})
}
