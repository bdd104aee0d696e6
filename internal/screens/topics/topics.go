package topics

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/catalog"
	"github.com/sustainlab/materiality/internal/router"
	"github.com/sustainlab/materiality/internal/screen"
	"github.com/sustainlab/materiality/internal/session"
	"github.com/sustainlab/materiality/internal/ui/components"
	"github.com/sustainlab/materiality/internal/ui/layout"
	"github.com/sustainlab/materiality/internal/ui/theme"
)

type focusArea int

const (
	focusName focusArea = iota
	focusDepartment
	focusList
	focusCount
)

// TopicsScreen collects the respondent's name and department and the
// topic selection.
type TopicsScreen struct {
	sess    *session.Session
	next    func(*session.Session) screen.Screen
	name    components.TextInput
	dept    components.TextInput
	list    components.Checklist
	topics  []catalog.Topic
	focus   focusArea
	warning string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates the selection screen. next builds the screen pushed once the
// form is generated.
func New(sess *session.Session, next func(*session.Session) screen.Screen) *TopicsScreen {
	all := catalog.Topics()
	labels := make([]string, len(all))
	for i, t := range all {
		labels[i] = t.String()
	}

	name := components.NewTextInput("姓名", "請輸入姓名", 40)
	dept := components.NewTextInput("部門", "請輸入部門", 40)
	id := sess.Identity()
	name.SetValue(id.Name)
	dept.SetValue(id.Department)

	return &TopicsScreen{
		sess:   sess,
		next:   next,
		name:   name,
		dept:   dept,
		list:   components.NewChecklist(labels),
		topics: all,
	}
}

func (s *TopicsScreen) Init() tea.Cmd {
	return s.setFocus(s.focus)
}

func (s *TopicsScreen) Title() string {
	return "選擇評估項目"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "切換欄位"}}
	if s.focus == focusList {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "移動"},
			layout.KeyHint{Key: "Space", Description: "勾選"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+G", Description: "提交選擇並生成問卷"},
	)
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, s.updateInput(msg)
	}

	switch kmsg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "ctrl+g":
		return s, s.generate()
	}

	if s.focus != focusList {
		if kmsg.String() == "enter" {
			return s, s.setFocus(s.focus + 1)
		}
		return s, s.updateInput(msg)
	}

	switch kmsg.String() {
	case "space", " ", "enter", "x":
		s.toggle(s.list.Cursor)
		return s, nil
	}
	s.list = s.list.Update(msg)
	return s, nil
}

func (s *TopicsScreen) setFocus(f focusArea) tea.Cmd {
	s.focus = f
	s.name.Blur()
	s.dept.Blur()
	switch f {
	case focusName:
		return s.name.Focus()
	case focusDepartment:
		return s.dept.Focus()
	}
	return nil
}

func (s *TopicsScreen) updateInput(msg tea.Msg) tea.Cmd {
	name, dept := s.name.Value(), s.dept.Value()

	var cmd tea.Cmd
	switch s.focus {
	case focusName:
		s.name, cmd = s.name.Update(msg)
	case focusDepartment:
		s.dept, cmd = s.dept.Update(msg)
	default:
		return nil
	}

	if s.name.Value() != name || s.dept.Value() != dept {
		if err := s.sess.SetIdentity(s.name.Value(), s.dept.Value()); err != nil {
			s.warning = session.Warning(err)
		}
	}
	return cmd
}

func (s *TopicsScreen) toggle(i int) {
	if i < 0 || i >= len(s.topics) {
		return
	}
	if _, err := s.sess.Toggle(s.topics[i]); err != nil {
		s.warning = session.Warning(err)
		return
	}
	s.warning = ""
}

func (s *TopicsScreen) generate() tea.Cmd {
	if err := s.sess.SetIdentity(s.name.Value(), s.dept.Value()); err != nil {
		s.warning = session.Warning(err)
		return nil
	}
	if err := s.sess.Generate(); err != nil {
		s.warning = session.Warning(err)
		return nil
	}
	s.warning = ""
	next := s.next(s.sess)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

// Warning returns the message currently shown to the user.
func (s *TopicsScreen) Warning() string {
	return s.warning
}

func (s *TopicsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sel := s.sess.Selection()

	var sections []string
	sections = append(sections, theme.Title.Render("請選擇10個重大性評估項目"))

	identity := s.name.View() + "    " + s.dept.View()
	if layout.IsCompactWidth(width) {
		identity = s.name.View() + "\n" + s.dept.View()
	}
	sections = append(sections, components.Card(identity, cw, s.focus != focusList))

	sections = append(sections, components.NewProgressBar("已選", sel.Count(), sel.Limit(), cw).View())

	warning := " "
	if s.warning != "" {
		warning = theme.Warning.Render("⚠ " + s.warning)
	}

	used := 0
	for _, sec := range sections {
		used += lipgloss.Height(sec)
	}
	// Card border, warning line and section gaps.
	listHeight := height - used - 2 - 1 - len(sections)
	if listHeight < 3 {
		listHeight = 3
	}

	list := s.list.View(func(i int) bool {
		return sel.IsSelected(s.topics[i])
	}, listHeight, s.focus == focusList)
	sections = append(sections, components.Card(list, cw, s.focus == focusList))
	sections = append(sections, warning)

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
