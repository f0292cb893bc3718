package quiz

import (
	"errors"
	"strings"
	"time"

	"github.com/kwabena/prepdeck/internal/bank"
)

// NoSelection is the placeholder shown before an objective question has a
// genuine selection. It is never committed to the answer map.
const NoSelection = "-- Select --"

// ErrTimedOut is returned when an answer arrives after the per-question
// deadline. The submission is rejected, not silently accepted.
var ErrTimedOut = errors.New("time is up for this question")

// Phase is the session lifecycle phase.
type Phase int

const (
	PhaseMenu    Phase = iota // no working set loaded
	PhaseActive               // serving questions
	PhaseResults              // final report ready
)

// Kind is the selection strategy that produced the working set.
type Kind string

const (
	KindPractice  Kind = "practice"
	KindExamOfDay Kind = "exam-of-day"
	KindMock      Kind = "mock"
)

// Session is the state of one quiz run: the working set, the current
// position, the committed answers, the transient per-question drafts, and
// the per-question deadlines. One session, one user, no shared globals.
type Session struct {
	Kind     Kind
	Subject  string
	Level    string
	Username string

	// Questions is the working set, immutable once built.
	Questions []bank.Question

	// Index is the current position, clamped to [0, len(Questions)].
	// Index == len(Questions) means past the last question.
	Index int

	// Answers maps question position to committed answer. A missing key
	// means "not attempted".
	Answers map[int]string

	// Drafts holds the currently-displayed input per position. Committed
	// into Answers only at navigation edges and on submit.
	Drafts map[int]string

	// TimeLimit is the per-question allowance. Zero disables the timer.
	TimeLimit time.Duration

	// Deadlines records when each position's clock runs out, set when the
	// question is first displayed.
	Deadlines map[int]time.Time

	// Rejected holds, per position, an answer that arrived after the
	// deadline. Refused values are never committed but are kept so the
	// report can show what was turned away. Positions the user never
	// genuinely answered do not appear here.
	Rejected map[int]string

	// Recorded is set once this run's score has been appended to the
	// leaderboard log, so re-entering the results flow cannot append a
	// duplicate. Cleared by Restart.
	Recorded bool

	Phase Phase

	// Clock is the time source, injectable for timer tests.
	Clock func() time.Time
}

// NewSession creates an active session over the given working set.
func NewSession(kind Kind, questions []bank.Question, timeLimit time.Duration) *Session {
	return &Session{
		Kind:      kind,
		Questions: questions,
		Answers:   make(map[int]string),
		Drafts:    make(map[int]string),
		TimeLimit: timeLimit,
		Deadlines: make(map[int]time.Time),
		Rejected:  make(map[int]string),
		Phase:     PhaseActive,
		Clock:     time.Now,
	}
}

// Current returns the question at the current position, or nil when the
// session has moved past the last question.
func (s *Session) Current() *bank.Question {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// StartQuestion arms the deadline for the current position. The deadline is
// set only once per position, on first display, so navigating back to a
// question does not refresh its clock.
func (s *Session) StartQuestion() {
	if s.TimeLimit <= 0 {
		return
	}
	if _, armed := s.Deadlines[s.Index]; armed {
		return
	}
	s.Deadlines[s.Index] = s.Clock().Add(s.TimeLimit)
}

// IsTimedOut reports whether pos ran out of time before an answer was
// committed. Evaluated lazily against the clock; there is no background
// timer goroutine, so a time-out is only observed on the next interaction.
func (s *Session) IsTimedOut(pos int) bool {
	if s.TimeLimit <= 0 {
		return false
	}
	deadline, armed := s.Deadlines[pos]
	if !armed {
		return false
	}
	if _, answered := s.Answers[pos]; answered {
		return false
	}
	return s.Clock().After(deadline)
}

// Remaining returns the time left for pos, floored at zero. It reports
// TimeLimit for positions whose deadline has not been armed yet.
func (s *Session) Remaining(pos int) time.Duration {
	if s.TimeLimit <= 0 {
		return 0
	}
	deadline, armed := s.Deadlines[pos]
	if !armed {
		return s.TimeLimit
	}
	left := deadline.Sub(s.Clock())
	if left < 0 {
		return 0
	}
	return left
}

// RecordAnswer commits raw as the answer for pos.
//
// Objective questions: the NoSelection placeholder (and the empty string)
// is never written and never erases a previously committed answer, so
// navigating away and back without touching the selection keeps the prior
// answer intact. Subjective questions: any string overwrites the slot;
// whether it counts as attempted is decided at grading time, after trim.
//
// An answer arriving after the position's deadline is rejected with
// ErrTimedOut. Only a genuinely supplied value (non-placeholder, non-blank
// after trim) is retained as a rejected submission; the empty flush a
// navigation edge performs on an untouched question leaves the position
// unattempted, so it never surfaces in the report.
func (s *Session) RecordAnswer(pos int, raw string) error {
	if pos < 0 || pos >= len(s.Questions) {
		return nil
	}

	q := s.Questions[pos]
	genuine := raw != "" && raw != NoSelection
	if q.Objective() && !genuine {
		return nil
	}

	if s.IsTimedOut(pos) {
		if strings.TrimSpace(raw) != "" && raw != NoSelection {
			s.Rejected[pos] = raw
		}
		return ErrTimedOut
	}

	s.Answers[pos] = raw
	return nil
}

// SetDraft stores the currently-displayed input for pos without committing.
func (s *Session) SetDraft(pos int, val string) {
	s.Drafts[pos] = val
}

// Draft returns the transient input for pos. When none exists, it falls
// back to the committed answer, then to the question's empty default
// (NoSelection placeholder for objective, "" for subjective).
func (s *Session) Draft(pos int) string {
	if d, ok := s.Drafts[pos]; ok {
		return d
	}
	if a, ok := s.Answers[pos]; ok {
		return a
	}
	if pos >= 0 && pos < len(s.Questions) && s.Questions[pos].Objective() {
		return NoSelection
	}
	return ""
}

// Advance commits the current draft and moves forward one position,
// clamped to len(Questions). Out-of-bounds moves clamp rather than fail so
// navigation stays idempotent.
func (s *Session) Advance() {
	s.flush()
	if s.Index < len(s.Questions) {
		s.Index++
	}
}

// Retreat commits the current draft and moves back one position, clamped
// to zero.
func (s *Session) Retreat() {
	s.flush()
	if s.Index > 0 {
		s.Index--
	}
}

// Submit performs the final draft flush and moves the session to Results.
func (s *Session) Submit() {
	s.flush()
	s.Phase = PhaseResults
}

// Restart re-enters the Active phase over the same working set, clearing
// answers, drafts, deadlines and rejections.
func (s *Session) Restart() {
	s.Index = 0
	s.Answers = make(map[int]string)
	s.Drafts = make(map[int]string)
	s.Deadlines = make(map[int]time.Time)
	s.Rejected = make(map[int]string)
	s.Recorded = false
	s.Phase = PhaseActive
}

// Attempted reports whether pos holds a committed, non-empty-after-trim
// answer.
func (s *Session) Attempted(pos int) bool {
	a, ok := s.Answers[pos]
	return ok && strings.TrimSpace(a) != ""
}

// Done reports whether the current position is past the last question.
func (s *Session) Done() bool {
	return s.Index >= len(s.Questions)
}

// flush commits the draft held for the current position, if any. Rejection
// of a late answer is already recorded by RecordAnswer; navigation itself
// never fails.
func (s *Session) flush() {
	d, ok := s.Drafts[s.Index]
	if !ok {
		return
	}
	_ = s.RecordAnswer(s.Index, d)
}
