package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/ui/theme"
)

// ProgressBar displays how many of the required items are chosen.
type ProgressBar struct {
	Label string
	Count int
	Total int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, count, total, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Count: count,
		Total: total,
		Width: width,
	}
}

// View renders the progress bar followed by "count/total".
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Count, p.Total)
	barWidth := p.Width - lipgloss.Width(result) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if p.Total > 0 {
		filled = barWidth * p.Count / p.Total
	}
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := theme.ProgressFilled
	if p.Total > 0 && p.Count == p.Total {
		fill = theme.ProgressComplete
	}

	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(counter)

	return result
}
