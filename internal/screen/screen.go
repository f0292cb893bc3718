package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/kwabena/prepdeck/internal/ui/layout"
)

// Screen is what the router stacks: the home menu, quiz setup, the exam
// itself, results, and the leaderboard all implement it.
type Screen interface {
	// Init runs once, when the screen is pushed. Screens with no
	// startup work return nil.
	Init() tea.Cmd

	// Update reacts to a message and hands back the screen to keep
	// showing, usually the receiver itself.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body. The app shell draws the title bar and key
	// hint footer around it, so width and height already have that
	// space subtracted.
	View(width, height int) string

	// Title is what the title bar shows while this screen is on top.
	Title() string
}

// KeyHintProvider lets a screen put its own bindings in the footer.
// Screens that skip it get the app shell's default hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
