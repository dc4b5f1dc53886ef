package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the catalog format major version this build understands.
const SupportedMajor = "v1"

//go:embed data/catalog.schema.json
var schemaJSON []byte

const schemaURL = "schema://digitalludus/catalog.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add catalog schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// ValidationError lists every problem found in a catalog document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validateShape checks raw JSON against the closed catalog schema.
func validateShape(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &ValidationError{Problems: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}
	if err := sch.Validate(inst); err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	return nil
}

// validateDocument performs the cross-record checks the schema cannot
// express. It returns nil or a *ValidationError.
func validateDocument(doc Document) error {
	var errs []string

	switch {
	case !semver.IsValid(doc.Version):
		errs = append(errs, fmt.Sprintf("version %q is not a semantic version", doc.Version))
	case semver.Major(doc.Version) != SupportedMajor:
		errs = append(errs, fmt.Sprintf("version %s is not supported (want %s.x.y)", doc.Version, SupportedMajor))
	}

	lessonIDs := make(map[int]bool, len(doc.Lessons))
	for _, l := range doc.Lessons {
		if l.ID <= 0 {
			errs = append(errs, fmt.Sprintf("lesson id must be positive, got %d", l.ID))
		}
		if lessonIDs[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson id: %d", l.ID))
		}
		lessonIDs[l.ID] = true
		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, fmt.Sprintf("lesson %d has no title", l.ID))
		}
		if !l.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("lesson %d has unknown difficulty %q", l.ID, l.Difficulty))
		}
	}

	vocabIDs := make(map[string]bool)
	for _, l := range doc.Lessons {
		for _, v := range l.Vocabulary {
			if vocabIDs[v.ID] {
				errs = append(errs, fmt.Sprintf("duplicate vocabulary id: %q", v.ID))
			}
			vocabIDs[v.ID] = true
			if v.Lesson != l.ID {
				errs = append(errs, fmt.Sprintf("vocabulary %q is listed under lesson %d but names lesson %d", v.ID, l.ID, v.Lesson))
			}
			if !v.Difficulty.Valid() {
				errs = append(errs, fmt.Sprintf("vocabulary %q has unknown difficulty %q", v.ID, v.Difficulty))
			}
			if v.Latin == "" || v.English == "" {
				errs = append(errs, fmt.Sprintf("vocabulary %q needs both a Latin form and an English gloss", v.ID))
			}
		}

		sentenceIDs := make(map[string]bool)
		for _, s := range l.ProsePassage.Sentences {
			if sentenceIDs[s.ID] {
				errs = append(errs, fmt.Sprintf("lesson %d: duplicate prose sentence id %q", l.ID, s.ID))
			}
			sentenceIDs[s.ID] = true
		}

		for _, ex := range l.PracticeExercises {
			if ex.Type != ExerciseLatinToEnglish && ex.Type != ExerciseEnglishToLatin {
				errs = append(errs, fmt.Sprintf("exercise %q has unknown type %q", ex.ID, ex.Type))
			}
		}
	}

	quizIDs := make(map[string]bool, len(doc.Quiz))
	for _, q := range doc.Quiz {
		if quizIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate quiz question id: %q", q.ID))
		}
		quizIDs[q.ID] = true
		if !lessonIDs[q.Lesson] {
			errs = append(errs, fmt.Sprintf("quiz question %q references nonexistent lesson %d", q.ID, q.Lesson))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("quiz question %q needs at least 2 options, got %d", q.ID, len(q.Options)))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("quiz question %q: correctAnswer %d out of range [0, %d)", q.ID, q.CorrectAnswer, len(q.Options)))
		}
		if !q.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("quiz question %q has unknown difficulty %q", q.ID, q.Difficulty))
		}
		if !q.Category.Valid() {
			errs = append(errs, fmt.Sprintf("quiz question %q has unknown category %q", q.ID, q.Category))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

// decodeStrict decodes a document, rejecting unknown fields.
func decodeStrict(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode catalog: %w", err)
	}
	return doc, nil
}
