package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/ui/theme"
)

// Slider renders an integer scale between Min and Max.
type Slider struct {
	Min   int
	Max   int
	Value int
}

// NewSlider creates a slider. Out-of-range values are shown clamped.
func NewSlider(min, max, value int) Slider {
	return Slider{Min: min, Max: max, Value: value}
}

// Step returns the value delta steps away, clamped to the range.
func (s Slider) Step(delta int) int {
	v := s.Value + delta
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	return v
}

// View renders "min ━━●━━ max  value".
func (s Slider) View(focused bool) string {
	v := s.Step(0)
	var track strings.Builder
	for i := s.Min; i <= s.Max; i++ {
		if i == v {
			track.WriteString("●")
		} else {
			track.WriteString("━")
		}
		if i < s.Max {
			track.WriteString("━")
		}
	}

	trackStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valueStyle := theme.Body
	if focused {
		trackStyle = lipgloss.NewStyle().Foreground(theme.Primary)
		valueStyle = theme.Selected
	}

	return fmt.Sprintf("%d %s %d  %s",
		s.Min, trackStyle.Render(track.String()), s.Max,
		valueStyle.Render(fmt.Sprintf("%d", v)))
}
