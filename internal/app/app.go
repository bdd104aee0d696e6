package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sustainlab/materiality/internal/router"
	"github.com/sustainlab/materiality/internal/screen"
	"github.com/sustainlab/materiality/internal/screens/done"
	"github.com/sustainlab/materiality/internal/screens/form"
	"github.com/sustainlab/materiality/internal/screens/picker"
	"github.com/sustainlab/materiality/internal/screens/topics"
	"github.com/sustainlab/materiality/internal/session"
	"github.com/sustainlab/materiality/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Session *session.Session
	// StartDir is where the directory picker opens.
	StartDir string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates a new AppModel with the selection screen at the root.
func newAppModel(opts Options) AppModel {
	startDir := opts.StartDir
	if startDir == "" {
		startDir = "."
	}

	doneScreen := func(s *session.Session) screen.Screen { return done.New(s) }
	pickerScreen := func(s *session.Session) screen.Screen {
		return picker.New(s, startDir, doneScreen)
	}
	formScreen := func(s *session.Session) screen.Screen {
		return form.New(s, pickerScreen)
	}

	return AppModel{
		router: router.New(topics.New(opts.Session, formScreen)),
		sess:   opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.BackHandler); ok {
				return m, h.Back()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status summarizes the session for the header.
func (m AppModel) status() string {
	if m.sess.Phase() == session.PhaseSelecting {
		sel := m.sess.Selection()
		return fmt.Sprintf("已選 %d/%d", sel.Count(), sel.Limit())
	}
	id := m.sess.Identity()
	return id.Name + "｜" + id.Department
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)

	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "返回"}}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "離開"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
