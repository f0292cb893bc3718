package exam

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/quiz"
	"github.com/kwabena/prepdeck/internal/router"
	"github.com/kwabena/prepdeck/internal/screen"
	"github.com/kwabena/prepdeck/internal/screens/results"
	"github.com/kwabena/prepdeck/internal/ui/components"
	"github.com/kwabena/prepdeck/internal/ui/layout"
	"github.com/kwabena/prepdeck/internal/ui/theme"
)

// timerTickMsg drives the countdown re-render.
type timerTickMsg time.Time

// ExamScreen serves the working set one question at a time. Objective
// questions get an option list with a leading placeholder row; subjective
// ones get a free-text input. Inputs are rebuilt whenever the session
// position changes, seeded from the session's draft for that position.
type ExamScreen struct {
	sess *quiz.Session
	rec  *leaderboard.Recorder

	input components.TextInput
	opts  components.OptionList

	// synced is the position the inputs were last built for. -1 forces a
	// rebuild on the next update, e.g. after a restart from the results
	// screen resets the session underneath us.
	synced int

	showExplain bool
	status      string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)

// New creates an exam screen over an active session.
func New(sess *quiz.Session, rec *leaderboard.Recorder) *ExamScreen {
	return &ExamScreen{
		sess:   sess,
		rec:    rec,
		synced: -1,
	}
}

func (e *ExamScreen) Init() tea.Cmd {
	e.resync()
	if e.sess.TimeLimit > 0 {
		return e.tick()
	}
	return nil
}

func (e *ExamScreen) Title() string {
	switch e.sess.Kind {
	case quiz.KindExamOfDay:
		return "Exam of the Day"
	case quiz.KindMock:
		return "Mock Exam"
	default:
		return "Practice"
	}
}

func (e *ExamScreen) KeyHints() []layout.KeyHint {
	if e.sess.Done() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Shift+Tab", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next"},
		{Key: "Shift+Tab", Description: "Prev"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Ctrl+S", Description: "Finish"},
	}
	if q := e.sess.Current(); q != nil && q.Explanation != "" {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Explain"})
	}
	return hints
}

// resync rebuilds the answer input for the current position and arms its
// deadline. Called on every position change and after a restart.
func (e *ExamScreen) resync() {
	e.synced = e.sess.Index
	e.showExplain = false
	e.status = ""

	q := e.sess.Current()
	if q == nil {
		return
	}
	e.sess.StartQuestion()

	draft := e.sess.Draft(e.sess.Index)
	if q.Objective() {
		e.opts = components.NewOptionList(quiz.NoSelection, q.Options, draft)
	} else {
		e.input = components.NewTextInput("Type your answer...", draft, 0)
	}
}

func (e *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// The results screen restarts the session in place; detect the reset
	// when we become active again. The old tick chain died with the
	// results screen, so the countdown needs re-arming too.
	if e.synced != e.sess.Index {
		e.resync()
		scr, cmd := e.dispatch(msg)
		if e.sess.TimeLimit > 0 {
			cmd = tea.Batch(cmd, e.tick())
		}
		return scr, cmd
	}
	return e.dispatch(msg)
}

func (e *ExamScreen) dispatch(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if e.sess.Phase != quiz.PhaseActive {
			return e, nil
		}
		if !e.sess.Done() && e.sess.IsTimedOut(e.sess.Index) {
			e.status = "Time is up for this question"
		}
		return e, e.tick()

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	return e, e.updateInput(msg)
}

func (e *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := e.sess.Current()
	objective := q != nil && q.Objective()

	switch msg.String() {
	case "tab":
		e.move(+1)
		return e, nil
	case "shift+tab":
		e.move(-1)
		return e, nil
	case "right":
		if objective || q == nil {
			e.move(+1)
			return e, nil
		}
	case "left":
		if objective {
			e.move(-1)
			return e, nil
		}
	case "enter":
		if e.sess.Done() {
			return e, e.finish()
		}
		return e, e.answer()
	case "ctrl+s":
		e.stash()
		return e, e.finish()
	case "ctrl+e":
		if q != nil && q.Explanation != "" {
			e.showExplain = !e.showExplain
		}
		return e, nil
	}

	return e, e.updateInput(msg)
}

// updateInput forwards a message to the active input and mirrors its value
// into the session draft.
func (e *ExamScreen) updateInput(msg tea.Msg) tea.Cmd {
	q := e.sess.Current()
	if q == nil {
		return nil
	}
	var cmd tea.Cmd
	if q.Objective() {
		e.opts, cmd = e.opts.Update(msg)
		e.sess.SetDraft(e.sess.Index, e.opts.Value())
	} else {
		e.input, cmd = e.input.Update(msg)
		e.sess.SetDraft(e.sess.Index, e.input.Value())
	}
	return cmd
}

// stash writes the currently displayed value into the session draft so
// navigation and submit see it.
func (e *ExamScreen) stash() {
	q := e.sess.Current()
	if q == nil {
		return
	}
	if q.Objective() {
		e.sess.SetDraft(e.sess.Index, e.opts.Value())
	} else {
		e.sess.SetDraft(e.sess.Index, e.input.Value())
	}
}

func (e *ExamScreen) move(delta int) {
	e.stash()
	if delta > 0 {
		e.sess.Advance()
	} else {
		e.sess.Retreat()
	}
	e.resync()
}

// answer commits the displayed value for the current question and moves
// on. A late answer is rejected and the user stays put, so the time-out is
// visible instead of silently swallowed.
func (e *ExamScreen) answer() tea.Cmd {
	e.stash()
	val := e.sess.Draft(e.sess.Index)
	if err := e.sess.RecordAnswer(e.sess.Index, val); err != nil {
		e.status = "Time is up, answer not accepted"
		return nil
	}
	e.sess.Advance()
	e.resync()
	return nil
}

func (e *ExamScreen) finish() tea.Cmd {
	e.sess.Submit()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: results.New(e.sess, e.rec)}
	}
}

func (e *ExamScreen) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (e *ExamScreen) View(width, height int) string {
	if e.sess.Done() {
		return e.viewEnd(width, height)
	}

	q := e.sess.Current()
	total := len(e.sess.Questions)

	var b strings.Builder

	bar := components.ProgressBar{
		Label:   fmt.Sprintf("Question %d of %d", e.sess.Index+1, total),
		Percent: float64(e.sess.Index+1) / float64(total),
		Width:   width - 8,
	}
	b.WriteString("  " + bar.View())
	b.WriteString("\n")

	meta := fmt.Sprintf("%s · %s", q.Subject, q.Level)
	if e.sess.TimeLimit > 0 {
		remaining := e.sess.Remaining(e.sess.Index)
		if e.sess.IsTimedOut(e.sess.Index) {
			meta += "  ·  " + theme.Incorrect.Render("TIME UP")
		} else {
			meta += fmt.Sprintf("  ·  %02d:%02d left", int(remaining.Minutes()), int(remaining.Seconds())%60)
		}
	}
	b.WriteString("  " + theme.Hint.Render(meta))
	b.WriteString("\n\n")

	text := theme.Body.Width(width - 8).Render(q.Text)
	if q.Image != "" {
		text += "\n" + theme.Hint.Render("[image: "+q.Image+"]")
	}
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(text))
	b.WriteString("\n\n")

	var inputView string
	if q.Objective() {
		inputView = e.opts.View()
	} else {
		inputView = e.input.View()
	}
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(inputView))
	b.WriteString("\n")

	if e.status != "" {
		b.WriteString("\n  " + theme.Warning.Render(e.status) + "\n")
	}

	if e.showExplain {
		b.WriteString("\n" + lipgloss.NewStyle().PaddingLeft(2).Render(
			theme.Card.Width(width-8).Render(theme.Hint.Render(q.Explanation))))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(b.String())
}

func (e *ExamScreen) viewEnd(width, height int) string {
	total := len(e.sess.Questions)
	answered := 0
	for i := range e.sess.Questions {
		if e.sess.Attempted(i) {
			answered++
		}
	}

	msg := fmt.Sprintf(
		"End of the set.\n\nAnswered %d of %d questions.\n\nPress Enter to submit, or Shift+Tab to review.",
		answered, total)

	card := theme.Card.Render(theme.Body.Render(msg))
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(card)
}
