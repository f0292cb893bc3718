package setup

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kwabena/prepdeck/internal/bank"
	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/quiz"
	"github.com/kwabena/prepdeck/internal/router"
	"github.com/kwabena/prepdeck/internal/screens/exam"
)

func newTestSetup(t *testing.T, kind quiz.Kind, questions int) *SetupScreen {
	t.Helper()
	repo, err := bank.Load(filepath.Join(t.TempDir(), "bank.json"))
	if err != nil {
		t.Fatalf("load empty bank: %v", err)
	}
	for i := 0; i < questions; i++ {
		q := bank.Question{
			Text:    "Pick beta",
			Options: []string{"alpha", "beta"},
			Answer:  "beta",
			Subject: "Math",
			Level:   "Easy",
		}
		if err := repo.Add(q); err != nil {
			t.Fatalf("add question: %v", err)
		}
	}
	rec := leaderboard.NewRecorder(filepath.Join(t.TempDir(), "scores.json"))
	s := New(repo, rec, kind)
	s.Init()
	return s
}

func TestFieldsPerMode(t *testing.T) {
	practice := newTestSetup(t, quiz.KindPractice, 1)
	if len(practice.fields) != 5 {
		t.Errorf("practice fields = %d, want 5", len(practice.fields))
	}

	daily := newTestSetup(t, quiz.KindExamOfDay, 1)
	if len(daily.fields) != 2 {
		t.Errorf("exam-of-day fields = %d, want 2", len(daily.fields))
	}

	mock := newTestSetup(t, quiz.KindMock, 1)
	if len(mock.fields) != 6 {
		t.Errorf("mock fields = %d, want 6", len(mock.fields))
	}
}

func TestStartPushesExam(t *testing.T) {
	s := newTestSetup(t, quiz.KindPractice, 3)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from start")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := push.Screen.(*exam.ExamScreen); !ok {
		t.Errorf("expected exam screen, got %T", push.Screen)
	}
}

func TestStartWithEmptyBankShowsError(t *testing.T) {
	s := newTestSetup(t, quiz.KindPractice, 0)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no navigation when the selection is empty")
	}
	if s.errMsg == "" {
		t.Error("expected an inline error message")
	}
}

func TestUsernameTypingReachesInput(t *testing.T) {
	s := newTestSetup(t, quiz.KindExamOfDay, 1)

	s.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	s.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})
	s.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	if got := s.username.Value(); got != "ada" {
		t.Errorf("username = %q, want %q", got, "ada")
	}
}

func TestCycleSubject(t *testing.T) {
	s := newTestSetup(t, quiz.KindPractice, 1)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown}) // move focus to subject
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	if got := s.subjects[s.subjectIdx]; got != "Math" {
		t.Errorf("subject = %q, want %q", got, "Math")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight}) // wraps back to All
	if got := s.subjects[s.subjectIdx]; got != "All" {
		t.Errorf("subject = %q, want %q after wrap", got, "All")
	}
}

func TestViewShowsFields(t *testing.T) {
	s := newTestSetup(t, quiz.KindMock, 1)

	view := s.View(80, 24)
	for _, label := range []string{"Name", "Subject", "Level", "Questions", "Timer", "Start"} {
		if !strings.Contains(view, label) {
			t.Errorf("expected %q in view:\n%s", label, view)
		}
	}
}
