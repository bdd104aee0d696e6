package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/sustainlab/materiality/internal/ui/theme"
)

// Button runs OnPress on Enter or Space while it has the cursor.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	switch kmsg.String() {
	case "enter", "space":
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the active button filled and the others outlined. Both
// take the same three rows so a row of buttons stays aligned.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("\n" + b.Label + "\n")
	}
	return theme.ButtonInactive.Render(b.Label)
}
