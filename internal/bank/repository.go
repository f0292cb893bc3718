package bank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kwabena/prepdeck/internal/store"
)

// ErrInvalidQuestion is returned when an authored question fails the
// authoring-time invariants (empty text, objective answer not among the
// options).
var ErrInvalidQuestion = errors.New("invalid question")

// Repository holds the loaded question collection and the path of its
// backing file. The quiz core treats the collection as read-only; mutation
// happens only through the admin operations, which rewrite the file.
type Repository struct {
	path      string
	questions []Question
}

// Load reads the bank at path. A malformed file yields an empty repository
// plus the underlying ErrMalformed-wrapped error: the caller decides
// whether to warn and carry on (TUI) or surface it (admin CLI, which must
// not silently rewrite a broken bank).
func Load(path string) (*Repository, error) {
	var entries []entry
	err := store.ReadInto(path, &entries)
	r := &Repository{path: path, questions: flatten(entries)}
	if err != nil {
		return r, err
	}
	return r, nil
}

// Questions returns the flattened question collection.
func (r *Repository) Questions() []Question {
	return r.questions
}

// Subjects returns the sorted distinct subjects in the bank.
func (r *Repository) Subjects() []string {
	return Subjects(r.questions)
}

// Levels returns the sorted distinct levels in the bank.
func (r *Repository) Levels() []string {
	return Levels(r.questions)
}

// Add validates and appends one question, then rewrites the backing file.
func (r *Repository) Add(q Question) error {
	if err := Validate(q); err != nil {
		return err
	}
	r.questions = append(r.questions, withDefaults(q))
	return r.save()
}

// Remove deletes the question at index i and rewrites the backing file.
func (r *Repository) Remove(i int) error {
	if i < 0 || i >= len(r.questions) {
		return fmt.Errorf("question index %d out of range [0,%d)", i, len(r.questions))
	}
	r.questions = append(r.questions[:i], r.questions[i+1:]...)
	return r.save()
}

// Update replaces the question at index i after validation.
func (r *Repository) Update(i int, q Question) error {
	if i < 0 || i >= len(r.questions) {
		return fmt.Errorf("question index %d out of range [0,%d)", i, len(r.questions))
	}
	if err := Validate(q); err != nil {
		return err
	}
	r.questions[i] = withDefaults(q)
	return r.save()
}

// Import merges (or replaces, when replace is true) the questions decoded
// from raw into the bank. The payload must pass the bank schema before any
// state changes. Returns the number of questions imported.
func (r *Repository) Import(raw []byte, replace bool) (int, error) {
	entries, err := DecodeImport(raw)
	if err != nil {
		return 0, err
	}
	imported := flatten(entries)
	if replace {
		r.questions = imported
	} else {
		r.questions = append(r.questions, imported...)
	}
	if err := r.save(); err != nil {
		return 0, err
	}
	return len(imported), nil
}

// Validate checks the authoring-time invariants: non-empty text, and for
// objective questions an answer that is one of the options.
func Validate(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidQuestion)
	}
	if !q.Objective() {
		return nil
	}
	ans := strings.TrimSpace(q.AnswerText())
	if ans == "" {
		return fmt.Errorf("%w: objective question needs a string answer", ErrInvalidQuestion)
	}
	for _, opt := range q.Options {
		if opt == ans {
			return nil
		}
	}
	return fmt.Errorf("%w: answer %q is not among the options", ErrInvalidQuestion, ans)
}

func (r *Repository) save() error {
	return store.Write(r.path, r.questions)
}
