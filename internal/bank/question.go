package bank

import (
	"sort"
	"strings"
)

// DefaultSubject and DefaultLevel fill in questions that were authored
// without a subject or level tag.
const (
	DefaultSubject = "General"
	DefaultLevel   = "General"
)

// Question is a single knowledge item from the bank. Options empty means
// the question is subjective (free text, self-graded against a model
// answer); options present means objective (exact-match multiple choice).
type Question struct {
	Text        string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      any      `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	Level       string   `json:"level,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// Objective reports whether the question has a fixed option set.
func (q Question) Objective() bool {
	return len(q.Options) > 0
}

// AnswerText returns the answer as a plain string. Objective answers are
// always strings; subjective model answers may be lists or maps, for which
// this returns "" (see grader.FormatModelAnswer for the display form).
func (q Question) AnswerText() string {
	s, _ := q.Answer.(string)
	return s
}

// entry is the on-disk shape of one bank record. An entry carrying a
// non-empty "questions" array is a grouping wrapper whose children inherit
// its subject and level.
type entry struct {
	Question
	Questions []entry `json:"questions,omitempty"`
}

// flatten expands grouping wrappers into individual questions, drops
// records without question text, and applies subject/level defaults.
func flatten(entries []entry) []Question {
	var out []Question
	for _, e := range entries {
		if len(e.Questions) > 0 {
			for _, child := range e.Questions {
				if strings.TrimSpace(child.Text) == "" {
					continue
				}
				q := child.Question
				if q.Subject == "" {
					q.Subject = e.Subject
				}
				if q.Level == "" {
					q.Level = e.Level
				}
				out = append(out, withDefaults(q))
			}
			continue
		}
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		out = append(out, withDefaults(e.Question))
	}
	return out
}

func withDefaults(q Question) Question {
	if q.Subject == "" {
		q.Subject = DefaultSubject
	}
	if q.Level == "" {
		q.Level = DefaultLevel
	}
	return q
}

// Subjects returns the sorted distinct subjects across qs.
func Subjects(qs []Question) []string {
	return distinct(qs, func(q Question) string { return q.Subject })
}

// Levels returns the sorted distinct levels across qs.
func Levels(qs []Question) []string {
	return distinct(qs, func(q Question) string { return q.Level })
}

func distinct(qs []Question, key func(Question) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range qs {
		k := key(q)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
