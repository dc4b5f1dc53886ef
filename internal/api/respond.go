package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/quiz"
)

// inputError marks a malformed request.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func badInput(format string, args ...any) error {
	return &inputError{err: fmt.Errorf(format, args...)}
}

// invalidTransitions are session errors that mean "not now" rather than
// "malformed".
var invalidTransitions = []error{
	drill.ErrNotStarted, drill.ErrComplete, drill.ErrNotRevealed, drill.ErrNoSource,
	quiz.ErrNotStarted, quiz.ErrComplete, quiz.ErrNoSelection,
	quiz.ErrAlreadySubmitted, quiz.ErrNotSubmitted, quiz.ErrNoSource,
}

func statusFor(err error) int {
	var in *inputError
	var rangeErr *quiz.OptionOutOfRangeError
	switch {
	case errors.Is(err, catalog.ErrLessonNotFound), errors.Is(err, errSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &in), errors.As(err, &rangeErr), errors.Is(err, pool.ErrEmptySelector):
		return http.StatusBadRequest
	}
	for _, target := range invalidTransitions {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

type messageBody struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, messageBody{Message: msg})
}

func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("api: %v", err)
		respondMessage(w, status, "internal error")
		return
	}
	respondMessage(w, status, err.Error())
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badInput("bad json: %v", err)
	}
	return nil
}
