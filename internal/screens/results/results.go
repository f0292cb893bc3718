package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kwabena/prepdeck/internal/grader"
	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/quiz"
	"github.com/kwabena/prepdeck/internal/router"
	"github.com/kwabena/prepdeck/internal/screen"
	"github.com/kwabena/prepdeck/internal/ui/layout"
	"github.com/kwabena/prepdeck/internal/ui/theme"
)

// scoreSavedMsg is sent after the score append completes.
type scoreSavedMsg struct {
	Err error
}

// ResultsScreen shows the graded report for a submitted session and
// appends the score to the leaderboard log.
type ResultsScreen struct {
	sess   *quiz.Session
	rec    *leaderboard.Recorder
	report grader.Report

	offset  int
	saveErr error
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New grades the session and creates the results screen.
func New(sess *quiz.Session, rec *leaderboard.Recorder) *ResultsScreen {
	return &ResultsScreen{
		sess:   sess,
		rec:    rec,
		report: grader.Grade(sess.Questions, sess.Answers, sess.Rejected),
	}
}

// Init appends the score. The session's Recorded flag makes the append
// once-per-run: leaving the results screen and arriving back on it over
// the same run does not write a second record.
func (r *ResultsScreen) Init() tea.Cmd {
	if r.sess.Recorded {
		return nil
	}
	r.sess.Recorded = true
	return func() tea.Msg {
		_, err := r.rec.Append(
			r.sess.Username,
			r.report.Score, r.report.Total,
			r.sess.Subject, r.sess.Level,
		)
		return scoreSavedMsg{Err: err}
	}
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Retake"},
		{Key: "M", Description: "Menu"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoreSavedMsg:
		r.saveErr = msg.Err
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if r.offset > 0 {
				r.offset--
			}
		case "down", "j":
			if r.offset < len(r.report.Entries)-1 {
				r.offset++
			}
		case "r":
			// Same working set, fresh answers. The exam screen notices
			// the position reset and rebuilds its inputs.
			r.sess.Restart()
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		case "m", "enter":
			return r, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	var b strings.Builder

	headline := fmt.Sprintf("Score: %d / %d", r.report.Score, r.report.Total)
	b.WriteString(theme.Title.Width(width).Render(headline))
	b.WriteString("\n")

	sub := fmt.Sprintf("%d of %d questions attempted", r.report.Attempted(), len(r.sess.Questions))
	if r.sess.Username != "" {
		sub = r.sess.Username + "  ·  " + sub
	}
	b.WriteString(theme.Subtitle.Width(width).Render(sub))
	b.WriteString("\n")

	if r.saveErr != nil {
		b.WriteString(theme.Warning.Width(width).Align(lipgloss.Center).
			Render("Could not save score: " + r.saveErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(r.report.Entries) == 0 {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No questions attempted."))
		return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
	}

	used := lipgloss.Height(b.String())
	for i := r.offset; i < len(r.report.Entries); i++ {
		entry := r.renderEntry(r.report.Entries[i], width)
		used += lipgloss.Height(entry) + 1
		if used > height {
			break
		}
		b.WriteString(entry)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (r *ResultsScreen) renderEntry(en grader.Entry, width int) string {
	var b strings.Builder

	mark := theme.Correct.Render("✓")
	switch {
	case en.TimedOut:
		mark = theme.Warning.Render("⏱")
	case en.Kind == grader.Subjective:
		mark = theme.Hint.Render("~")
	case !en.Correct:
		mark = theme.Incorrect.Render("✗")
	}

	b.WriteString(fmt.Sprintf("  %s Q%d. %s\n", mark, en.Position+1,
		theme.Body.Render(truncate(en.Text, width-12))))
	b.WriteString("      Your answer: " + theme.Body.Render(en.YourAnswer) + "\n")

	switch en.Kind {
	case grader.Objective:
		if en.TimedOut {
			b.WriteString("      " + theme.Warning.Render("Submitted after time ran out, not counted") + "\n")
		}
		if !en.Correct {
			b.WriteString("      Correct answer: " + theme.Correct.Render(en.CorrectAnswer) + "\n")
		}
	case grader.Subjective:
		b.WriteString("      Model answer:\n")
		for _, line := range strings.Split(en.ModelAnswer, "\n") {
			b.WriteString("        " + theme.Hint.Render(line) + "\n")
		}
	}

	if en.Explanation != "" {
		b.WriteString("      " + theme.Hint.Render(truncate(en.Explanation, width-12)) + "\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
