package setup

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kwabena/prepdeck/internal/bank"
	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/quiz"
	"github.com/kwabena/prepdeck/internal/router"
	"github.com/kwabena/prepdeck/internal/screen"
	"github.com/kwabena/prepdeck/internal/screens/exam"
	"github.com/kwabena/prepdeck/internal/selector"
	"github.com/kwabena/prepdeck/internal/ui/components"
	"github.com/kwabena/prepdeck/internal/ui/layout"
	"github.com/kwabena/prepdeck/internal/ui/theme"
)

type field int

const (
	fieldUsername field = iota
	fieldSubject
	fieldLevel
	fieldCount
	fieldTimer
	fieldStart
)

var countChoices = []int{10, 20, 30, 40, 50, 60}

var timerChoices = []time.Duration{
	0,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	2 * time.Minute,
}

// SetupScreen collects the parameters for a quiz run before the first
// question is shown. Which fields appear depends on the mode: the exam of
// the day only asks for a username, since its working set is fixed by the
// calendar date.
type SetupScreen struct {
	repo *bank.Repository
	rec  *leaderboard.Recorder
	kind quiz.Kind

	fields []field
	focus  int

	username components.TextInput
	subjects []string
	levels   []string

	subjectIdx int
	levelIdx   int
	countIdx   int
	timerIdx   int

	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen for the given mode.
func New(repo *bank.Repository, rec *leaderboard.Recorder, kind quiz.Kind) *SetupScreen {
	var fields []field
	switch kind {
	case quiz.KindExamOfDay:
		fields = []field{fieldUsername, fieldStart}
	case quiz.KindMock:
		fields = []field{fieldUsername, fieldSubject, fieldLevel, fieldCount, fieldTimer, fieldStart}
	default:
		fields = []field{fieldUsername, fieldSubject, fieldLevel, fieldTimer, fieldStart}
	}

	s := &SetupScreen{
		repo:     repo,
		rec:      rec,
		kind:     kind,
		fields:   fields,
		username: components.NewTextInput("Anonymous", "", 32),
		subjects: append([]string{selector.All}, repo.Subjects()...),
		levels:   append([]string{selector.All}, repo.Levels()...),
		countIdx: 1, // 20 questions
	}
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.username.Init()
}

func (s *SetupScreen) Title() string {
	switch s.kind {
	case quiz.KindExamOfDay:
		return "Exam of the Day"
	case quiz.KindMock:
		return "Mock Exam"
	default:
		return "Practice"
	}
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.username, cmd = s.username.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "shift+tab":
		s.moveFocus(-1)
		return s, nil
	case "down", "tab":
		s.moveFocus(1)
		return s, nil
	case "enter":
		return s, s.start()
	case "left":
		if s.current() != fieldUsername {
			s.cycle(-1)
			return s, nil
		}
	case "right":
		if s.current() != fieldUsername {
			s.cycle(1)
			return s, nil
		}
	}

	if s.current() == fieldUsername {
		var cmd tea.Cmd
		s.username, cmd = s.username.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) current() field {
	return s.fields[s.focus]
}

func (s *SetupScreen) moveFocus(delta int) {
	s.focus += delta
	if s.focus < 0 {
		s.focus = len(s.fields) - 1
	}
	if s.focus >= len(s.fields) {
		s.focus = 0
	}
	if s.current() == fieldUsername {
		s.username.Focus()
	} else {
		s.username.Blur()
	}
}

// cycle steps the focused choice field through its values, wrapping at
// both ends.
func (s *SetupScreen) cycle(delta int) {
	step := func(idx, n int) int {
		idx += delta
		if idx < 0 {
			idx = n - 1
		}
		if idx >= n {
			idx = 0
		}
		return idx
	}
	switch s.current() {
	case fieldSubject:
		s.subjectIdx = step(s.subjectIdx, len(s.subjects))
	case fieldLevel:
		s.levelIdx = step(s.levelIdx, len(s.levels))
	case fieldCount:
		s.countIdx = step(s.countIdx, len(countChoices))
	case fieldTimer:
		s.timerIdx = step(s.timerIdx, len(timerChoices))
	}
}

// start builds the working set and pushes the exam screen. A selection that
// matches no questions is reported inline instead of leaving setup.
func (s *SetupScreen) start() tea.Cmd {
	pool := s.repo.Questions()
	subject := s.subjects[s.subjectIdx]
	level := s.levels[s.levelIdx]

	var (
		ws    []bank.Question
		err   error
		limit time.Duration
	)
	switch s.kind {
	case quiz.KindExamOfDay:
		subject, level = selector.All, selector.All
		ws, err = selector.ExamOfDay(pool, selector.DateKey(time.Now()))
	case quiz.KindMock:
		limit = timerChoices[s.timerIdx]
		ws, err = selector.Mock(pool, subject, level, countChoices[s.countIdx])
	default:
		limit = timerChoices[s.timerIdx]
		ws, err = selector.Practice(pool, subject, level)
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""

	sess := quiz.NewSession(s.kind, ws, limit)
	sess.Subject = subject
	sess.Level = level
	sess.Username = strings.TrimSpace(s.username.Value())

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: exam.New(sess, s.rec)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.Title()))
	b.WriteString("\n\n")

	var rows []string
	for i, f := range s.fields {
		focused := i == s.focus
		switch f {
		case fieldUsername:
			rows = append(rows, renderRow("Name", s.username.View(), focused))
		case fieldSubject:
			rows = append(rows, renderRow("Subject", choice(s.subjects[s.subjectIdx]), focused))
		case fieldLevel:
			rows = append(rows, renderRow("Level", choice(s.levels[s.levelIdx]), focused))
		case fieldCount:
			rows = append(rows, renderRow("Questions", choice(fmt.Sprintf("%d", countChoices[s.countIdx])), focused))
		case fieldTimer:
			rows = append(rows, renderRow("Timer", choice(timerLabel(timerChoices[s.timerIdx])), focused))
		case fieldStart:
			label := "  Start"
			if focused {
				label = theme.Selected.Render("▸ Start")
			}
			rows = append(rows, "", label)
		}
	}

	form := theme.Card.Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(form))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render(s.errMsg))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(b.String())
}

func renderRow(label, value string, focused bool) string {
	marker := "  "
	labelStyle := theme.Body
	if focused {
		marker = "▸ "
		labelStyle = theme.Selected
	}
	return fmt.Sprintf("%s%s  %s", marker, labelStyle.Render(fmt.Sprintf("%-10s", label)), value)
}

func choice(v string) string {
	return theme.Body.Render("‹ " + v + " ›")
}

func timerLabel(d time.Duration) string {
	if d <= 0 {
		return "Off"
	}
	return fmt.Sprintf("%ds per question", int(d.Seconds()))
}
