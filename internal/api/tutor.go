package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xamuil2/digitalludus/internal/tutor"
)

const tutorFailureMessage = "Sorry, I encountered an error while processing your request. Please try again."

type tutorRequest struct {
	Message string `json:"message"`
	Lesson  *int   `json:"lesson"`
	Context string `json:"context"`
}

type tutorResponse struct {
	Response string `json:"response"`
}

// askTutor relays one question. Any method but POST gets a JSON 405.
func (s *Server) askTutor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req tutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := s.tutor.Ask(r.Context(), tutor.Question{
		Message: req.Message,
		Lesson:  req.Lesson,
		Context: req.Context,
	})
	switch {
	case errors.Is(err, tutor.ErrMessageRequired):
		respondMessage(w, http.StatusBadRequest, "Message is required")
	case err != nil:
		log.Printf("api: tutor: %v", err)
		respondMessage(w, http.StatusInternalServerError, tutorFailureMessage)
	default:
		respondJSON(w, http.StatusOK, tutorResponse{Response: reply.Text})
	}
}
