package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/ui/layout"
	"github.com/sustainlab/materiality/internal/ui/theme"
)

// Checklist is a scrollable list of checkable items. It only tracks the
// cursor; which items are checked is supplied at render time.
type Checklist struct {
	Items  []string
	Cursor int
}

// NewChecklist creates a checklist over items.
func NewChecklist(items []string) Checklist {
	return Checklist{Items: items}
}

// Update moves the cursor on up/down/home/end.
func (c Checklist) Update(msg tea.Msg) Checklist {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "home":
		c.Cursor = 0
	case "end":
		c.Cursor = len(c.Items) - 1
	}
	return c
}

// View renders at most height rows around the cursor. checked reports the
// state of item i.
func (c Checklist) View(checked func(i int) bool, height int, focused bool) string {
	start, end := layout.Window(len(c.Items), c.Cursor, height)

	var b strings.Builder
	for i := start; i < end; i++ {
		box := "[ ]"
		style := theme.Unselected
		if checked(i) {
			box = "[✓]"
			style = theme.Selected
		}

		prefix := "  "
		if focused && i == c.Cursor {
			prefix = "▸ "
			style = style.Underline(true)
		}

		b.WriteString(prefix + style.Render(box+" "+c.Items[i]))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if start > 0 || end < len(c.Items) {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(scrollHint(start, end, len(c.Items))))
	}
	return b.String()
}

func scrollHint(start, end, total int) string {
	switch {
	case start > 0 && end < total:
		return "  ↑↓ 還有更多"
	case start > 0:
		return "  ↑ 還有更多"
	default:
		return "  ↓ 還有更多"
	}
}
