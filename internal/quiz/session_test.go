package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/kwabena/prepdeck/internal/bank"
)

func testQuestions() []bank.Question {
	return []bank.Question{
		{Text: "2 + 2?", Options: []string{"3", "4"}, Answer: "4", Subject: "Math", Level: "JHS1"},
		{Text: "Capital of France?", Answer: "Paris", Subject: "Geography", Level: "JHS1"},
		{Text: "5 x 3?", Options: []string{"15", "8"}, Answer: "15", Subject: "Math", Level: "JHS1"},
	}
}

func TestRecordAnswer_PlaceholderNeverCommitted(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 0)

	if err := s.RecordAnswer(0, NoSelection); err != nil {
		t.Fatalf("RecordAnswer(placeholder) error: %v", err)
	}
	if _, ok := s.Answers[0]; ok {
		t.Error("placeholder was committed to the answer map")
	}
}

func TestRecordAnswer_PlaceholderKeepsPriorAnswer(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 0)

	if err := s.RecordAnswer(0, "4"); err != nil {
		t.Fatalf("RecordAnswer error: %v", err)
	}
	if err := s.RecordAnswer(0, NoSelection); err != nil {
		t.Fatalf("RecordAnswer(placeholder) error: %v", err)
	}

	if s.Answers[0] != "4" {
		t.Errorf("Answers[0] = %q, want %q (placeholder must not erase)", s.Answers[0], "4")
	}
}

func TestRecordAnswer_SubjectiveOverwrites(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 0)

	if err := s.RecordAnswer(1, "Lyon"); err != nil {
		t.Fatalf("RecordAnswer error: %v", err)
	}
	if err := s.RecordAnswer(1, ""); err != nil {
		t.Fatalf("RecordAnswer(empty) error: %v", err)
	}

	if s.Answers[1] != "" {
		t.Errorf("Answers[1] = %q, want empty (subjective slots overwrite)", s.Answers[1])
	}
	if s.Attempted(1) {
		t.Error("empty subjective answer must not count as attempted")
	}
}

func TestNavigation_RoundTripPreservesAnswers(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 0)
	s.SetDraft(0, "4")
	s.Advance()

	if s.Index != 1 {
		t.Fatalf("Index = %d, want 1", s.Index)
	}
	if s.Answers[0] != "4" {
		t.Fatalf("draft was not flushed on Advance, Answers[0] = %q", s.Answers[0])
	}

	s.Advance()
	s.Retreat()
	if s.Index != 1 {
		t.Errorf("Index = %d after advance+retreat, want 1", s.Index)
	}
	if s.Answers[0] != "4" {
		t.Errorf("Answers[0] = %q after round trip, want %q", s.Answers[0], "4")
	}
}

func TestNavigation_Clamped(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 0)

	s.Retreat()
	if s.Index != 0 {
		t.Errorf("Index = %d after retreat at start, want 0", s.Index)
	}

	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if s.Index != len(s.Questions) {
		t.Errorf("Index = %d, want %d (clamped past last question)", s.Index, len(s.Questions))
	}
	if !s.Done() {
		t.Error("expected Done at Index == len(Questions)")
	}
	if s.Current() != nil {
		t.Error("expected nil Current past the last question")
	}
}

func TestDraft_FallsBackToCommittedThenDefault(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 0)

	if d := s.Draft(0); d != NoSelection {
		t.Errorf("Draft(0) = %q, want placeholder for untouched objective", d)
	}
	if d := s.Draft(1); d != "" {
		t.Errorf("Draft(1) = %q, want empty for untouched subjective", d)
	}

	s.Answers[0] = "4"
	if d := s.Draft(0); d != "4" {
		t.Errorf("Draft(0) = %q, want committed answer", d)
	}

	s.SetDraft(0, "3")
	if d := s.Draft(0); d != "3" {
		t.Errorf("Draft(0) = %q, want transient draft", d)
	}
}

func TestSubmit_FlushesAndMovesToResults(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 0)
	s.SetDraft(0, "4")
	s.Submit()

	if s.Phase != PhaseResults {
		t.Errorf("Phase = %d, want PhaseResults", s.Phase)
	}
	if s.Answers[0] != "4" {
		t.Errorf("Answers[0] = %q, want %q (submit must flush)", s.Answers[0], "4")
	}
}

func TestTimer_DeadlineArmedOncePerPosition(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(KindExamOfDay, testQuestions(), 30*time.Second)
	s.Clock = func() time.Time { return now }

	s.StartQuestion()
	first := s.Deadlines[0]

	now = now.Add(10 * time.Second)
	s.StartQuestion()
	if !s.Deadlines[0].Equal(first) {
		t.Error("re-displaying a question must not refresh its deadline")
	}
}

func TestTimer_LateAnswerRejected(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(KindExamOfDay, testQuestions(), 5*time.Second)
	s.Clock = func() time.Time { return now }

	s.StartQuestion()

	now = now.Add(6 * time.Second)
	if !s.IsTimedOut(0) {
		t.Fatal("expected position 0 to be timed out")
	}

	err := s.RecordAnswer(0, "4")
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("RecordAnswer after deadline = %v, want ErrTimedOut", err)
	}
	if _, ok := s.Answers[0]; ok {
		t.Error("late answer must not be committed")
	}
	if got, ok := s.Rejected[0]; !ok || got != "4" {
		t.Errorf("Rejected[0] = %q, %v; want the refused value retained", got, ok)
	}
}

func TestTimer_EmptyFlushAfterDeadlineNotRejected(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(KindExamOfDay, testQuestions(), 5*time.Second)
	s.Clock = func() time.Time { return now }

	s.Advance() // position 1 is subjective
	s.StartQuestion()
	now = now.Add(6 * time.Second)

	// Navigating off an untouched subjective question flushes an empty
	// draft. That is not an answer, so the position stays unattempted
	// rather than showing up as a rejected submission.
	s.SetDraft(1, "")
	s.Advance()
	if len(s.Rejected) != 0 {
		t.Errorf("Rejected = %v, want empty after blank flush", s.Rejected)
	}

	if err := s.RecordAnswer(1, "   "); !errors.Is(err, ErrTimedOut) {
		t.Fatalf("RecordAnswer = %v, want ErrTimedOut", err)
	}
	if len(s.Rejected) != 0 {
		t.Errorf("Rejected = %v, blank value must not be retained", s.Rejected)
	}
	if s.Attempted(1) {
		t.Error("Attempted(1) = true, want false")
	}
}

func TestTimer_AnswerBeforeDeadlineAccepted(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(KindExamOfDay, testQuestions(), 30*time.Second)
	s.Clock = func() time.Time { return now }

	s.StartQuestion()
	now = now.Add(10 * time.Second)

	if err := s.RecordAnswer(0, "4"); err != nil {
		t.Fatalf("RecordAnswer before deadline error: %v", err)
	}

	// Once answered in time, the position never reads as timed out.
	now = now.Add(time.Hour)
	if s.IsTimedOut(0) {
		t.Error("answered-in-time position reported as timed out")
	}
}

func TestTimer_RemainingFloorsAtZero(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(KindExamOfDay, testQuestions(), 5*time.Second)
	s.Clock = func() time.Time { return now }

	if s.Remaining(0) != 5*time.Second {
		t.Errorf("Remaining before arming = %v, want full limit", s.Remaining(0))
	}

	s.StartQuestion()
	now = now.Add(2 * time.Second)
	if s.Remaining(0) != 3*time.Second {
		t.Errorf("Remaining = %v, want 3s", s.Remaining(0))
	}

	now = now.Add(time.Minute)
	if s.Remaining(0) != 0 {
		t.Errorf("Remaining = %v, want 0", s.Remaining(0))
	}
}

func TestRestart_ClearsEverything(t *testing.T) {
	s := NewSession(KindPractice, testQuestions(), 10*time.Second)
	s.StartQuestion()
	s.SetDraft(0, "4")
	s.Advance()
	s.Submit()
	s.Recorded = true

	s.Restart()

	if s.Index != 0 {
		t.Errorf("Index = %d, want 0", s.Index)
	}
	if s.Phase != PhaseActive {
		t.Errorf("Phase = %d, want PhaseActive", s.Phase)
	}
	if len(s.Answers) != 0 || len(s.Drafts) != 0 || len(s.Deadlines) != 0 || len(s.Rejected) != 0 {
		t.Error("Restart must clear answers, drafts, deadlines and rejections")
	}
	if s.Recorded {
		t.Error("Restart must clear the recorded flag")
	}
	if len(s.Questions) != 3 {
		t.Error("Restart must keep the working set")
	}
}
