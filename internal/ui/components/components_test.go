package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistCursorBounds(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})
	c = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, c.Cursor)

	c = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, c.Cursor)

	c = c.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	assert.Equal(t, 0, c.Cursor)
	c = c.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	assert.Equal(t, 2, c.Cursor)
}

func TestChecklistViewMarksChecked(t *testing.T) {
	c := NewChecklist([]string{"永續策略", "誠信經營"})
	view := ansi.Strip(c.View(func(i int) bool { return i == 1 }, 10, true))
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "▸ [ ] 永續策略", lines[0])
	assert.Equal(t, "  [✓] 誠信經營", lines[1])
}

func TestChecklistViewUnfocusedHasNoCursor(t *testing.T) {
	c := NewChecklist([]string{"永續策略", "誠信經營"})
	view := ansi.Strip(c.View(func(int) bool { return false }, 10, false))
	assert.NotContains(t, view, "▸")
	assert.Contains(t, view, "  [ ] 永續策略")
}

func TestChecklistViewScrolls(t *testing.T) {
	items := make([]string, 19)
	for i := range items {
		items[i] = string(rune('a' + i))
	}
	c := NewChecklist(items)
	c.Cursor = 18
	view := c.View(func(int) bool { return false }, 5, true)
	assert.Contains(t, view, "還有更多")
	assert.Contains(t, view, "s")
	assert.NotContains(t, view, "[ ] a")
}

func TestDropdownCycles(t *testing.T) {
	d := NewDropdown([]string{"實際", "潛在"}, 0)
	assert.Equal(t, 1, d.Next())
	assert.Equal(t, 1, d.Prev())
	d.Selected = 1
	assert.Equal(t, 0, d.Next())
	assert.Equal(t, "潛在", d.Value())

	assert.Equal(t, 0, NewDropdown([]string{"x"}, 5).Selected)
}

func TestSliderStepClamps(t *testing.T) {
	s := NewSlider(1, 5, 3)
	assert.Equal(t, 4, s.Step(1))
	assert.Equal(t, 2, s.Step(-1))
	assert.Equal(t, 5, NewSlider(1, 5, 5).Step(1))
	assert.Equal(t, 1, NewSlider(1, 5, 1).Step(-1))
	assert.Contains(t, s.View(false), "●")
}

func TestProgressBarCounter(t *testing.T) {
	p := NewProgressBar("已選", 4, 10, 40)
	assert.Contains(t, p.View(), "4/10")
}

func TestButtonPress(t *testing.T) {
	pressed := false
	b := NewButton("保存結果", true, func() tea.Cmd {
		pressed = true
		return nil
	})
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, pressed)

	pressed = false
	b.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	assert.True(t, pressed)

	pressed = false
	b.Active = false
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, pressed)
}

func TestButtonViewsShareHeight(t *testing.T) {
	active := NewButton("保存結果", true, nil).View()
	inactive := NewButton("返回修改選擇", false, nil).View()
	assert.Equal(t, lipgloss.Height(inactive), lipgloss.Height(active))
	assert.Contains(t, ansi.Strip(active), "保存結果")
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	assert.Equal(t, 1, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
}

func TestMenuNumberActivates(t *testing.T) {
	var got string
	m := NewMenu([]MenuItem{
		{Label: "離開", Action: func() tea.Cmd { got = "quit"; return nil }},
		{Label: "開始新的評估", Action: func() tea.Cmd { got = "new"; return nil }},
		{Label: "停用", Disabled: true, Action: func() tea.Cmd { got = "disabled"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, m.Selected)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "▸ 2. 開始新的評估")
	assert.Contains(t, view, "    1. 離開")
}

func TestCardWrapsContent(t *testing.T) {
	assert.Equal(t, 72, ContentWidth(200))
	assert.Equal(t, 30, ContentWidth(20))

	card := Card("永續策略", ContentWidth(100), false)
	assert.Equal(t, 3, lipgloss.Height(card))
	assert.Contains(t, ansi.Strip(card), "永續策略")
}
