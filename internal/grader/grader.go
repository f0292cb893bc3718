package grader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kwabena/prepdeck/internal/bank"
)

// EntryKind distinguishes auto-graded entries from self-graded ones.
type EntryKind string

const (
	Objective  EntryKind = "objective"
	Subjective EntryKind = "subjective"
)

// Entry is one attempted question in the final report.
type Entry struct {
	Position      int
	Text          string
	Kind          EntryKind
	YourAnswer    string
	CorrectAnswer string // objective: the exact-match answer
	ModelAnswer   string // subjective: flattened model answer for self-grading
	Explanation   string
	Correct       bool
	TimedOut      bool
}

// Report is the graded outcome of a session. Score and Total cover
// objective questions only; subjective entries are listed for self-grading
// and never contribute to either.
type Report struct {
	Entries []Entry
	Score   int
	Total   int
}

// Attempted returns the number of entries in the report.
func (r Report) Attempted() int {
	return len(r.Entries)
}

// Grade builds the report from the working set, the committed answer map,
// and the rejected map (position -> answer refused for arriving after the
// deadline). Only attempted positions (non-empty after trim) appear; a
// question never answered is not counted wrong, it is not counted at all.
// Rejected positions appear tagged timed-out, showing the refused value:
// they go into Total as attempted-but-ineligible, never into Score.
//
// The score is recomputed here from scratch every time rather than
// accumulated during the session, so partial re-grading can never drift.
func Grade(ws []bank.Question, answers map[int]string, rejected map[int]string) Report {
	var report Report

	for pos, q := range ws {
		answer, answered := answers[pos]
		attempted := answered && strings.TrimSpace(answer) != ""
		refused, wasRejected := rejected[pos]
		if !attempted && !wasRejected {
			continue
		}

		e := Entry{
			Position:    pos,
			Text:        q.Text,
			YourAnswer:  answer,
			Explanation: q.Explanation,
			TimedOut:    wasRejected,
		}
		if wasRejected {
			e.YourAnswer = refused
		}

		if q.Objective() {
			e.Kind = Objective
			e.CorrectAnswer = q.AnswerText()
			if attempted && !e.TimedOut {
				e.Correct = strings.TrimSpace(answer) == strings.TrimSpace(e.CorrectAnswer)
			}
			report.Total++
			if e.Correct {
				report.Score++
			}
		} else {
			e.Kind = Subjective
			e.ModelAnswer = FormatModelAnswer(q.Answer)
		}

		report.Entries = append(report.Entries, e)
	}

	return report
}

// FormatModelAnswer flattens a subjective model answer into a multi-line
// display string. Authored model answers come in three shapes: a plain
// string, a list of points, or a map of headings to points (possibly
// nested one level).
func FormatModelAnswer(ans any) string {
	switch v := ans.(type) {
	case nil:
		return "No model answer"
	case string:
		return v
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			lines = append(lines, fmt.Sprint(item))
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		var lines []string
		for _, k := range sortedKeys(v) {
			lines = append(lines, k+":")
			switch inner := v[k].(type) {
			case map[string]any:
				for _, kk := range sortedKeys(inner) {
					lines = append(lines, fmt.Sprintf("  - %s: %v", kk, inner[kk]))
				}
			case []any:
				for _, item := range inner {
					lines = append(lines, fmt.Sprintf("  - %v", item))
				}
			default:
				lines = append(lines, fmt.Sprintf("  - %v", inner))
			}
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
