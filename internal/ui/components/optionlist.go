package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kwabena/prepdeck/internal/ui/theme"
)

// OptionList is the selector for objective questions. The first row is a
// "no selection" placeholder: hovering it never commits anything, which is
// what lets a question stay unanswered rather than defaulting to the first
// option.
type OptionList struct {
	Placeholder string
	Options     []string
	Selected    int // 0 = placeholder, 1..len(Options) = option index + 1
}

// NewOptionList creates an option list preselecting current, which should
// be the draft or committed answer for the question (the placeholder text
// itself when there is none).
func NewOptionList(placeholder string, options []string, current string) OptionList {
	selected := 0
	for i, opt := range options {
		if opt == current {
			selected = i + 1
			break
		}
	}
	return OptionList{
		Placeholder: placeholder,
		Options:     options,
		Selected:    selected,
	}
}

// Update handles keyboard navigation.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options) {
			o.Selected++
		}
	}

	return o, nil
}

// Value returns the highlighted option, or the placeholder text when
// nothing genuine is selected.
func (o OptionList) Value() string {
	if o.Selected <= 0 || o.Selected > len(o.Options) {
		return o.Placeholder
	}
	return o.Options[o.Selected-1]
}

// View renders the placeholder row followed by the lettered options.
func (o OptionList) View() string {
	var s string

	placeholderLine := "    " + o.Placeholder
	if o.Selected == 0 {
		placeholderLine = "  ▸ " + o.Placeholder
		s += lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(placeholderLine) + "\n"
	} else {
		s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(placeholderLine) + "\n"
	}

	for i, opt := range o.Options {
		line := fmt.Sprintf("  %c)  %s", 'A'+i, opt)
		if o.Selected == i+1 {
			line = "▸ " + line[2:]
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
