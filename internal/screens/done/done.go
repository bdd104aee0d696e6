package done

import (
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

// DoneScreen confirms a successful export.
type DoneScreen struct {
	sess    *session.Session
	menu    components.Menu
	warning string
}

var (
	_ screen.Screen          = (*DoneScreen)(nil)
	_ screen.KeyHintProvider = (*DoneScreen)(nil)
	_ screen.BackHandler     = (*DoneScreen)(nil)
)

func New(sess *session.Session) *DoneScreen {
	s := &DoneScreen{sess: sess}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "離開", Action: func() tea.Cmd { return tea.Quit }},
		{Label: "開始新的評估", Action: s.restart},
	})
	return s
}

func (s *DoneScreen) Init() tea.Cmd {
	return nil
}

func (s *DoneScreen) Title() string {
	return "保存完成"
}

func (s *DoneScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "離開"},
		{Key: "n", Description: "開始新的評估"},
	}
}

// Back is a no-op; the records are already gone.
func (s *DoneScreen) Back() tea.Cmd {
	return nil
}

func (s *DoneScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "n":
			return s, s.restart()
		case "q":
			return s, tea.Quit
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DoneScreen) restart() tea.Cmd {
	if err := s.sess.Reset(); err != nil {
		s.warning = session.Warning(err)
		return nil
	}
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *DoneScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	lines := []string{theme.Notice.Render("✓ 評估結果已保存")}
	saved := s.sess.Saved()
	if len(saved) > 0 {
		lines = append(lines, theme.Label.Render("資料夾："+filepath.Dir(saved[0])))
	}
	for _, p := range saved {
		lines = append(lines, theme.Body.Render("• "+filepath.Base(p)))
	}

	sections := []string{
		components.Card(strings.Join(lines, "\n"), cw, true),
		"",
		s.menu.View(),
	}
	if s.warning != "" {
		sections = append(sections, theme.Warning.Render("⚠ "+s.warning))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
