package form

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/assessment"
	"github.com/sustainlab/materiality/internal/catalog"
	"github.com/sustainlab/materiality/internal/router"
	"github.com/sustainlab/materiality/internal/screen"
	"github.com/sustainlab/materiality/internal/session"
	"github.com/sustainlab/materiality/internal/ui/components"
	"github.com/sustainlab/materiality/internal/ui/layout"
	"github.com/sustainlab/materiality/internal/ui/theme"
)

// Buttons follow the record fields in cursor order.
const (
	buttonBack = iota
	buttonSave
	buttonCount
)

// cardHeight is the rendered height of one topic card, borders included.
const cardHeight = 8

// FormScreen edits the generated assessment records.
type FormScreen struct {
	sess    *session.Session
	picker  func(*session.Session) screen.Screen
	cursor  int
	warning string
}

var (
	_ screen.Screen          = (*FormScreen)(nil)
	_ screen.KeyHintProvider = (*FormScreen)(nil)
	_ screen.BackHandler     = (*FormScreen)(nil)
)

// New creates the assessment screen. picker builds the directory picker
// opened on save.
func New(sess *session.Session, picker func(*session.Session) screen.Screen) *FormScreen {
	return &FormScreen{sess: sess, picker: picker}
}

func (s *FormScreen) Init() tea.Cmd {
	return nil
}

func (s *FormScreen) Title() string {
	return "填寫評估表"
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "移動"}}
	if _, _, ok := s.position(); ok {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "調整"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "確認"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "保存結果"},
		layout.KeyHint{Key: "Esc", Description: "返回修改選擇"},
	)
}

// Back discards the records and returns to the selection screen.
func (s *FormScreen) Back() tea.Cmd {
	if err := s.sess.Back(); err != nil {
		s.warning = session.Warning(err)
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.sess.Form() == nil {
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "shift+tab":
		s.move(-1)
		return s, nil
	case "down", "j", "tab":
		s.move(1)
		return s, nil
	case "pgup":
		s.move(-len(catalog.Fields))
		return s, nil
	case "pgdown":
		s.move(len(catalog.Fields))
		return s, nil
	case "home":
		s.cursor = 0
		return s, nil
	case "end":
		s.cursor = s.total() - 1
		return s, nil
	case "ctrl+s":
		return s, s.openPicker()
	}

	record, field, onField := s.position()
	if !onField {
		_, cmd := s.button(s.cursor - s.fieldCount()).Update(msg)
		return s, cmd
	}

	switch key {
	case "left", "h":
		s.adjust(record, field, -1)
	case "right", "l", "space":
		s.adjust(record, field, 1)
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' && field.IsScale() {
			s.set(record, field, key)
		}
	}
	return s, nil
}

// Warning returns the message currently shown to the user.
func (s *FormScreen) Warning() string {
	return s.warning
}

func (s *FormScreen) fieldCount() int {
	return s.sess.Form().Len() * len(catalog.Fields)
}

func (s *FormScreen) total() int {
	return s.fieldCount() + buttonCount
}

// position maps the cursor to a record and field. ok is false when the
// cursor rests on a button.
func (s *FormScreen) position() (int, catalog.Field, bool) {
	if s.sess.Form() == nil || s.cursor >= s.fieldCount() {
		return 0, "", false
	}
	n := len(catalog.Fields)
	return s.cursor / n, catalog.Fields[s.cursor%n], true
}

func (s *FormScreen) move(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if last := s.total() - 1; s.cursor > last {
		s.cursor = last
	}
}

func (s *FormScreen) adjust(i int, f catalog.Field, delta int) {
	rec, err := s.sess.Form().Record(i)
	if err != nil {
		s.warning = session.Warning(err)
		return
	}

	if f == catalog.FieldIssueType {
		d := issueDropdown(rec)
		next := d.Next()
		if delta < 0 {
			next = d.Prev()
		}
		s.set(i, f, string(catalog.IssueTypes[next]))
		return
	}

	v, _ := rec.Scale(f)
	s.set(i, f, strconv.Itoa(scaleSlider(v).Step(delta)))
}

func (s *FormScreen) set(i int, f catalog.Field, value string) {
	if err := s.sess.SetField(i, f, value); err != nil {
		s.warning = session.Warning(err)
		return
	}
	s.warning = ""
}

func (s *FormScreen) openPicker() tea.Cmd {
	next := s.picker(s.sess)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func issueDropdown(rec assessment.Record) components.Dropdown {
	labels := make([]string, len(catalog.IssueTypes))
	selected := 0
	for i, t := range catalog.IssueTypes {
		labels[i] = t.Label()
		if t == rec.IssueType {
			selected = i
		}
	}
	return components.NewDropdown(labels, selected)
}

func scaleSlider(v int) components.Slider {
	return components.NewSlider(catalog.ScaleMin, catalog.ScaleMax, v)
}

func (s *FormScreen) View(width, height int) string {
	form := s.sess.Form()
	if form == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("目前沒有評估表"))
	}

	cw := components.ContentWidth(width)
	id := form.Identity()
	header := theme.Title.Render("重大性評估") + "  " +
		theme.Subtitle.Render(fmt.Sprintf("%s｜%s", id.Name, id.Department))

	buttons := s.buttonsView()
	warning := " "
	if s.warning != "" {
		warning = theme.Warning.Render("⚠ " + s.warning)
	}

	visible := (height - lipgloss.Height(header) - lipgloss.Height(buttons) - 3) / cardHeight
	if visible < 1 {
		visible = 1
	}

	current, _, onField := s.position()
	if !onField {
		current = form.Len() - 1
	}
	start, end := layout.Window(form.Len(), current, visible)

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rec, _ := form.Record(i)
		cards = append(cards, s.cardView(i, rec, cw))
	}

	sections := []string{header, strings.Join(cards, "\n")}
	if start > 0 || end < form.Len() {
		sections = append(sections, theme.Hint.Render(fmt.Sprintf("第 %d-%d 項，共 %d 項", start+1, end, form.Len())))
	}
	sections = append(sections, buttons, warning)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func (s *FormScreen) cardView(i int, rec assessment.Record, cw int) string {
	base := i * len(catalog.Fields)
	focusedCard := s.cursor >= base && s.cursor < base+len(catalog.Fields)

	lines := []string{theme.TopicBanner.Render(fmt.Sprintf("%d. %s", i+1, rec.Topic))}
	for j, f := range catalog.Fields {
		focused := s.cursor == base+j
		label := theme.Label
		if focused {
			label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		var value string
		if f == catalog.FieldIssueType {
			value = issueDropdown(rec).View(focused)
		} else {
			v, _ := rec.Scale(f)
			value = scaleSlider(v).View(focused)
		}
		lines = append(lines, label.Width(16).Render(f.Label())+value)
	}
	return components.Card(strings.Join(lines, "\n"), cw, focusedCard)
}

// button returns the button at offset i past the fields, active when the
// cursor is on it.
func (s *FormScreen) button(i int) components.Button {
	active := s.cursor-s.fieldCount() == i
	if i == buttonBack {
		return components.NewButton("返回修改選擇", active, s.Back)
	}
	return components.NewButton("保存結果", active, s.openPicker)
}

func (s *FormScreen) buttonsView() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.button(buttonBack).View(), "    ", s.button(buttonSave).View())
}
