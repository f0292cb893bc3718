package results

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kwabena/prepdeck/internal/bank"
	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/quiz"
	"github.com/kwabena/prepdeck/internal/router"
)

func newGradedSession() *quiz.Session {
	qs := []bank.Question{
		{Text: "Pick beta", Options: []string{"alpha", "beta"}, Answer: "beta", Subject: "General", Level: "General"},
		{Text: "Pick alpha", Options: []string{"alpha", "beta"}, Answer: "alpha", Subject: "General", Level: "General"},
	}
	sess := quiz.NewSession(quiz.KindPractice, qs, 0)
	sess.Username = "ada"
	sess.Subject = "General"
	sess.Level = "General"
	sess.Answers[0] = "beta"
	sess.Answers[1] = "beta"
	sess.Submit()
	return sess
}

func TestGradesSession(t *testing.T) {
	rec := leaderboard.NewRecorder(filepath.Join(t.TempDir(), "scores.json"))
	r := New(newGradedSession(), rec)

	if r.report.Score != 1 || r.report.Total != 2 {
		t.Errorf("report = %d/%d, want 1/2", r.report.Score, r.report.Total)
	}
}

func TestInitAppendsScoreOnce(t *testing.T) {
	rec := leaderboard.NewRecorder(filepath.Join(t.TempDir(), "scores.json"))
	r := New(newGradedSession(), rec)

	msg := r.Init()()
	saved, ok := msg.(scoreSavedMsg)
	if !ok {
		t.Fatalf("expected scoreSavedMsg, got %T", msg)
	}
	if saved.Err != nil {
		t.Fatalf("append score: %v", saved.Err)
	}

	records, err := rec.All()
	if err != nil {
		t.Fatalf("read scores: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Username != "ada" || records[0].Score != 1 || records[0].Total != 2 {
		t.Errorf("record = %+v, want ada 1/2", records[0])
	}
}

func TestInitSkipsAppendForRecordedSession(t *testing.T) {
	rec := leaderboard.NewRecorder(filepath.Join(t.TempDir(), "scores.json"))
	sess := newGradedSession()

	first := New(sess, rec)
	if msg := first.Init()(); msg.(scoreSavedMsg).Err != nil {
		t.Fatalf("append score: %v", msg.(scoreSavedMsg).Err)
	}

	// Backing out of the results screen and reaching it again over the
	// same run must not write a second record.
	second := New(sess, rec)
	if cmd := second.Init(); cmd != nil {
		if msg := cmd(); msg != nil {
			t.Fatalf("expected no append, got %T", msg)
		}
	}

	records, err := rec.All()
	if err != nil {
		t.Fatalf("read scores: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestRetakeRestartsAndPops(t *testing.T) {
	rec := leaderboard.NewRecorder(filepath.Join(t.TempDir(), "scores.json"))
	sess := newGradedSession()
	r := New(sess, rec)

	_, cmd := r.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command from retake")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg from retake")
	}
	if sess.Phase != quiz.PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive after restart", sess.Phase)
	}
	if len(sess.Answers) != 0 {
		t.Errorf("expected cleared answers, got %d", len(sess.Answers))
	}
}

func TestMenuPopsToRoot(t *testing.T) {
	rec := leaderboard.NewRecorder(filepath.Join(t.TempDir(), "scores.json"))
	r := New(newGradedSession(), rec)

	_, cmd := r.Update(tea.KeyPressMsg{Code: 'm', Text: "m"})
	if cmd == nil {
		t.Fatal("expected a command from menu key")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg from menu key")
	}
}

func TestViewShowsScoreAndEntries(t *testing.T) {
	rec := leaderboard.NewRecorder(filepath.Join(t.TempDir(), "scores.json"))
	r := New(newGradedSession(), rec)

	view := r.View(80, 40)
	if !strings.Contains(view, "Score: 1 / 2") {
		t.Errorf("expected score headline in view:\n%s", view)
	}
	if !strings.Contains(view, "Pick beta") {
		t.Errorf("expected entry text in view:\n%s", view)
	}
}
