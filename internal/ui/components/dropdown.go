package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/ui/theme"
)

// Dropdown is a read-only choice among a few options, cycled with
// left/right.
type Dropdown struct {
	Options  []string
	Selected int
}

// NewDropdown creates a dropdown with the given option selected.
func NewDropdown(options []string, selected int) Dropdown {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Dropdown{Options: options, Selected: selected}
}

// Next returns the index after the selected one, wrapping around.
func (d Dropdown) Next() int {
	if len(d.Options) == 0 {
		return 0
	}
	return (d.Selected + 1) % len(d.Options)
}

// Prev returns the index before the selected one, wrapping around.
func (d Dropdown) Prev() int {
	if len(d.Options) == 0 {
		return 0
	}
	return (d.Selected - 1 + len(d.Options)) % len(d.Options)
}

// Value returns the selected option.
func (d Dropdown) Value() string {
	if d.Selected < 0 || d.Selected >= len(d.Options) {
		return ""
	}
	return d.Options[d.Selected]
}

// View renders all options with the selected one highlighted.
func (d Dropdown) View(focused bool) string {
	parts := make([]string, len(d.Options))
	for i, opt := range d.Options {
		if i == d.Selected {
			style := theme.Selected
			if focused {
				style = lipgloss.NewStyle().Background(theme.Primary).Foreground(theme.BgDark).Bold(true)
			}
			parts[i] = style.Render(" " + opt + " ")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + opt + " ")
		}
	}

	view := strings.Join(parts, " ")
	if focused {
		view = "◂ " + view + " ▸"
	}
	return view
}
