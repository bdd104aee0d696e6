package components

import (
	"github.com/sustainlab/materiality/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for cards so they
// visually align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

// Card wraps content in a rounded-border card of width cw, highlighted
// when focused.
func Card(content string, cw int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.CardFocused
	}
	return style.Width(cw).Render(content)
}
