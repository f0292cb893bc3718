package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kwabena/prepdeck/internal/bank"
	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/quiz"
	"github.com/kwabena/prepdeck/internal/router"
	"github.com/kwabena/prepdeck/internal/screen"
	"github.com/kwabena/prepdeck/internal/screens/board"
	"github.com/kwabena/prepdeck/internal/screens/setup"
	"github.com/kwabena/prepdeck/internal/ui/components"
	"github.com/kwabena/prepdeck/internal/ui/theme"
)

// HomeScreen is the mode selection menu shown at startup.
type HomeScreen struct {
	menu    components.Menu
	repo    *bank.Repository
	warning string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. warning, when non-empty, is shown under the
// stats line (e.g. when the bank file was malformed and the app started
// with an empty bank).
func New(repo *bank.Repository, rec *leaderboard.Recorder, warning string) *HomeScreen {
	empty := len(repo.Questions()) == 0

	pushSetup := func(kind quiz.Kind) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(repo, rec, kind)}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "Practice", Action: pushSetup(quiz.KindPractice), Disabled: empty},
		{Label: "Exam of the Day", Action: pushSetup(quiz.KindExamOfDay), Disabled: empty},
		{Label: "Mock Exam", Action: pushSetup(quiz.KindMock), Disabled: empty},
		{Label: "Leaderboard", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: board.New(rec)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:    components.NewMenu(items),
		repo:    repo,
		warning: warning,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("PREPDECK"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Practice, daily exams and mock tests in your terminal"))
	b.WriteString("\n\n")

	qs := h.repo.Questions()
	stats := fmt.Sprintf("%d questions  ·  %d subjects  ·  %d levels",
		len(qs), len(h.repo.Subjects()), len(h.repo.Levels()))
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(stats))
	b.WriteString("\n")

	if h.warning != "" {
		b.WriteString(theme.Warning.Width(width).Align(lipgloss.Center).Render(h.warning))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	menu := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(h.menu.View())
	b.WriteString(menu)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(b.String())
}

func (h *HomeScreen) Title() string {
	return "Home"
}
