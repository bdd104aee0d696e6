package picker

import (
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/router"
	"github.com/sustainlab/materiality/internal/screen"
	"github.com/sustainlab/materiality/internal/session"
	"github.com/sustainlab/materiality/internal/ui/components"
	"github.com/sustainlab/materiality/internal/ui/layout"
	"github.com/sustainlab/materiality/internal/ui/theme"
)

const parentEntry = ".."

// PickerScreen browses directories and saves the assessment into the
// current one.
type PickerScreen struct {
	sess    *session.Session
	done    func(*session.Session) screen.Screen
	dir     string
	entries []string
	cursor  int
	warning string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker starting in dir. done builds the screen shown after
// a successful save.
func New(sess *session.Session, dir string, done func(*session.Session) screen.Screen) *PickerScreen {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	s := &PickerScreen{sess: sess, done: done}
	s.chdir(dir)
	return s
}

func (s *PickerScreen) Init() tea.Cmd {
	return nil
}

func (s *PickerScreen) Title() string {
	return "選擇保存位置"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "移動"},
		{Key: "Enter", Description: "進入"},
		{Key: "Backspace", Description: "上一層"},
		{Key: "s", Description: "保存到此資料夾"},
		{Key: "Esc", Description: "返回"},
	}
}

// Dir returns the directory the picker is showing.
func (s *PickerScreen) Dir() string {
	return s.dir
}

// Warning returns the message currently shown to the user.
func (s *PickerScreen) Warning() string {
	return s.warning
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case "home":
		s.cursor = 0
	case "end":
		s.cursor = len(s.entries) - 1
	case "enter", "right", "l":
		s.descend()
	case "backspace", "left", "h":
		s.chdir(filepath.Dir(s.dir))
	case "~":
		if home, err := os.UserHomeDir(); err == nil {
			s.chdir(home)
		}
	case "s":
		return s, s.save()
	}
	return s, nil
}

func (s *PickerScreen) descend() {
	if s.cursor < 0 || s.cursor >= len(s.entries) {
		return
	}
	name := s.entries[s.cursor]
	if name == parentEntry {
		s.chdir(filepath.Dir(s.dir))
		return
	}
	s.chdir(filepath.Join(s.dir, name))
}

// chdir lists dir. On failure the picker stays where it was.
func (s *PickerScreen) chdir(dir string) {
	entries, err := listDirs(dir)
	if err != nil {
		s.warning = "無法開啟資料夾：" + dir
		if s.dir == "" {
			s.dir = dir
		}
		return
	}

	prev := s.dir
	s.dir = dir
	s.entries = entries
	s.cursor = 0
	s.warning = ""

	// Coming back up, keep the cursor on the directory we left.
	if filepath.Dir(prev) == dir {
		base := filepath.Base(prev)
		for i, e := range entries {
			if e == base {
				s.cursor = i
				break
			}
		}
	}
}

func (s *PickerScreen) save() tea.Cmd {
	if _, err := s.sess.Save(s.dir); err != nil {
		s.warning = session.Warning(err)
		return nil
	}
	s.warning = ""
	next := s.done(s.sess)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// listDirs returns the visible subdirectories of dir, preceded by the
// parent entry unless dir is a filesystem root.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	if filepath.Dir(dir) != dir {
		dirs = append(dirs, parentEntry)
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, name)
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.IsDir() {
				dirs = append(dirs, name)
			}
		}
	}
	return dirs, nil
}

func (s *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	header := theme.Title.Render("選擇保存位置")
	current := theme.Label.Render("目前資料夾：") + theme.Body.Render(s.dir)

	warning := " "
	if s.warning != "" {
		warning = theme.Warning.Render("⚠ " + s.warning)
	}

	// Header, path, card border and warning.
	listHeight := height - 6
	if listHeight < 3 {
		listHeight = 3
	}
	start, end := layout.Window(len(s.entries), s.cursor, listHeight)

	var b strings.Builder
	if len(s.entries) == 0 {
		b.WriteString(theme.Hint.Render("（沒有子資料夾）"))
	}
	for i := start; i < end; i++ {
		label := "📁 " + s.entries[i]
		if s.entries[i] == parentEntry {
			label = "↩ " + parentEntry
		}
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	content := strings.Join([]string{
		header,
		current,
		components.Card(b.String(), cw, true),
		warning,
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
