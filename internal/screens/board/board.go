package board

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/screen"
	"github.com/kwabena/prepdeck/internal/ui/layout"
	"github.com/kwabena/prepdeck/internal/ui/theme"
)

const topCount = 10

// recordsLoadedMsg carries the top scores read from the log.
type recordsLoadedMsg struct {
	Records []leaderboard.Record
	Err     error
}

// BoardScreen shows the highest scores on record.
type BoardScreen struct {
	rec     *leaderboard.Recorder
	records []leaderboard.Record
	loaded  bool
	loadErr error
}

var _ screen.Screen = (*BoardScreen)(nil)
var _ screen.KeyHintProvider = (*BoardScreen)(nil)

// New creates the leaderboard screen.
func New(rec *leaderboard.Recorder) *BoardScreen {
	return &BoardScreen{rec: rec}
}

func (b *BoardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := b.rec.TopN(topCount)
		return recordsLoadedMsg{Records: records, Err: err}
	}
}

func (b *BoardScreen) Title() string {
	return "Leaderboard"
}

func (b *BoardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (b *BoardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(recordsLoadedMsg); ok {
		b.records = m.Records
		b.loadErr = m.Err
		b.loaded = true
	}
	return b, nil
}

func (b *BoardScreen) View(width, height int) string {
	var sb strings.Builder

	sb.WriteString(theme.Title.Width(width).Render("Top Scores"))
	sb.WriteString("\n\n")

	switch {
	case !b.loaded:
		sb.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Loading..."))

	case b.loadErr != nil:
		sb.WriteString(theme.Warning.Width(width).Align(lipgloss.Center).
			Render("Score log could not be read: " + b.loadErr.Error()))

	case len(b.records) == 0:
		sb.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No scores yet. Finish a quiz to get on the board."))

	default:
		var rows []string
		rows = append(rows, theme.Hint.Render(fmt.Sprintf(
			"  %-4s %-20s %-9s %-14s %s", "#", "Name", "Score", "Subject", "When")))
		for i, r := range b.records {
			name := r.Username
			if name == "" {
				name = leaderboard.AnonymousUser
			}
			row := fmt.Sprintf("  %-4d %-20s %3d/%-3d   %-14s %s",
				i+1, truncate(name, 20), r.Score, r.Total,
				truncate(r.Subject, 14), formatWhen(r.Timestamp))
			if i == 0 {
				rows = append(rows, theme.Selected.Render(row))
			} else {
				rows = append(rows, theme.Body.Render(row))
			}
		}
		table := theme.Card.Render(strings.Join(rows, "\n"))
		sb.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(table))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(sb.String())
}

// formatWhen trims the stored RFC 3339 timestamp down to a date for
// display. Unparseable timestamps are shown raw rather than dropped.
func formatWhen(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
