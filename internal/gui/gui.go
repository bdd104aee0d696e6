// Package gui is the desktop front-end. It drives the same session as the
// terminal UI through Fyne widgets in a single window.
package gui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/sustainlab/materiality/internal/catalog"
	"github.com/sustainlab/materiality/internal/logging"
	"github.com/sustainlab/materiality/internal/session"
)

const (
	AppID        = "io.sustainlab.materiality"
	AppName      = "永續發展重大性評估"
	WindowWidth  = 760
	WindowHeight = 860
)

// Options configures the desktop window.
type Options struct {
	Session  *session.Session
	StartDir string
	Logger   zerolog.Logger
}

// Window owns the widgets of the current page.
type Window struct {
	win      fyne.Window
	app      fyne.App
	sess     *session.Session
	startDir string
	logger   zerolog.Logger

	name    *widget.Entry
	dept    *widget.Entry
	checks  []*widget.Check
	counter *widget.Label

	issues  []*widget.Select
	sliders [][]*widget.Slider

	// syncing suppresses change callbacks while widgets are set from code.
	syncing bool
	warning string
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	a := app.NewWithID(AppID)
	win := a.NewWindow(AppName)
	win.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	w := newWindow(a, win, opts)
	w.logger.Info().Msg("window opened")
	win.ShowAndRun()
	w.logger.Info().Str("phase", w.sess.Phase().String()).Msg("window closed")
	return nil
}

func newWindow(a fyne.App, win fyne.Window, opts Options) *Window {
	w := &Window{
		win:      win,
		app:      a,
		sess:     opts.Session,
		startDir: opts.StartDir,
		logger:   logging.Component(opts.Logger, "gui"),
	}
	w.showSelection()
	return w
}

// warn shows err as a modal warning.
func (w *Window) warn(err error) {
	w.warning = session.Warning(err)
	dialog.ShowInformation("提示", w.warning, w.win)
}

func (w *Window) showSelection() {
	id := w.sess.Identity()
	w.name = widget.NewEntry()
	w.name.SetPlaceHolder("請輸入姓名")
	w.name.SetText(id.Name)
	w.dept = widget.NewEntry()
	w.dept.SetPlaceHolder("請輸入部門")
	w.dept.SetText(id.Department)

	syncIdentity := func(string) {
		if err := w.sess.SetIdentity(w.name.Text, w.dept.Text); err != nil {
			w.logger.Debug().Err(err).Msg("identity not recorded")
		}
	}
	w.name.OnChanged = syncIdentity
	w.dept.OnChanged = syncIdentity

	identity := widget.NewForm(
		widget.NewFormItem("姓名", w.name),
		widget.NewFormItem("部門", w.dept),
	)

	w.counter = widget.NewLabel("")
	w.checks = w.checks[:0]
	list := container.NewVBox()
	for _, topic := range catalog.Topics() {
		check := widget.NewCheck(topic.String(), nil)
		check.SetChecked(w.sess.Selection().IsSelected(topic))
		check.OnChanged = w.onCheck(topic, check)
		w.checks = append(w.checks, check)
		list.Add(check)
	}
	w.updateCounter()

	submit := widget.NewButton("提交選擇並生成問卷", w.generate)
	submit.Importance = widget.HighImportance

	top := container.NewVBox(
		widget.NewLabelWithStyle(fmt.Sprintf("請選擇%d個重大性評估項目", catalog.SelectionSize),
			fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		identity,
		w.counter,
	)
	w.win.SetContent(container.NewBorder(top, submit, nil, nil, container.NewVScroll(list)))
}

func (w *Window) onCheck(topic catalog.Topic, check *widget.Check) func(bool) {
	return func(on bool) {
		if w.syncing {
			return
		}
		if _, err := w.sess.Toggle(topic); err != nil {
			w.syncing = true
			check.SetChecked(!on)
			w.syncing = false
			w.warn(err)
			return
		}
		w.updateCounter()
	}
}

func (w *Window) updateCounter() {
	sel := w.sess.Selection()
	w.counter.SetText(fmt.Sprintf("已選擇 %d/%d 個項目", sel.Count(), sel.Limit()))
}

func (w *Window) generate() {
	if err := w.sess.SetIdentity(w.name.Text, w.dept.Text); err != nil {
		w.warn(err)
		return
	}
	if err := w.sess.Generate(); err != nil {
		w.warn(err)
		return
	}
	w.showForm()
}

func (w *Window) showForm() {
	form := w.sess.Form()
	if form == nil {
		w.showSelection()
		return
	}

	issueLabels := make([]string, len(catalog.IssueTypes))
	for i, t := range catalog.IssueTypes {
		issueLabels[i] = t.Label()
	}

	w.issues = make([]*widget.Select, form.Len())
	w.sliders = make([][]*widget.Slider, form.Len())
	cards := container.NewVBox()
	for i, rec := range form.Records() {
		issue := widget.NewSelect(issueLabels, nil)
		issue.SetSelected(rec.IssueType.Label())
		issue.OnChanged = func(label string) {
			if err := w.sess.SetField(i, catalog.FieldIssueType, label); err != nil {
				w.warn(err)
			}
		}
		w.issues[i] = issue

		rows := widget.NewForm(widget.NewFormItem(catalog.FieldIssueType.Label(), issue))
		for _, f := range catalog.ScaleFields {
			v, _ := rec.Scale(f)
			slider, row := w.scaleRow(i, f, v)
			w.sliders[i] = append(w.sliders[i], slider)
			rows.Append(f.Label(), row)
		}
		cards.Add(widget.NewCard(fmt.Sprintf("%d. %s", i+1, rec.Topic), "", rows))
	}

	back := widget.NewButton("返回修改選擇", w.back)
	save := widget.NewButton("保存結果", w.chooseFolder)
	save.Importance = widget.HighImportance

	id := form.Identity()
	top := widget.NewLabelWithStyle(fmt.Sprintf("重大性評估｜%s｜%s", id.Name, id.Department),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	w.win.SetContent(container.NewBorder(top, container.NewGridWithColumns(2, back, save),
		nil, nil, container.NewVScroll(cards)))
}

// scaleRow builds a stepped 1-5 slider with its value label.
func (w *Window) scaleRow(i int, f catalog.Field, v int) (*widget.Slider, fyne.CanvasObject) {
	slider := widget.NewSlider(catalog.ScaleMin, catalog.ScaleMax)
	slider.Step = 1
	slider.SetValue(float64(v))
	value := widget.NewLabel(strconv.Itoa(v))

	slider.OnChanged = func(x float64) {
		n := int(x)
		if err := w.sess.SetField(i, f, strconv.Itoa(n)); err != nil {
			w.warn(err)
			return
		}
		value.SetText(strconv.Itoa(n))
	}
	return slider, container.NewBorder(nil, nil, nil, value, slider)
}

func (w *Window) back() {
	if err := w.sess.Back(); err != nil {
		w.warn(err)
		return
	}
	w.showSelection()
}

func (w *Window) chooseFolder() {
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			w.logger.Warn().Err(err).Msg("folder dialog failed")
			return
		}
		if dir == nil {
			return
		}
		w.save(dir.Path())
	}, w.win)

	if w.startDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(w.startDir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func (w *Window) save(dir string) {
	paths, err := w.sess.Save(dir)
	if err != nil {
		w.warn(err)
		return
	}
	w.startDir = dir

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	dialog.ShowInformation("保存完成", "結果已保存為：\n"+strings.Join(names, "\n"), w.win)
	w.showDone(paths)
}

func (w *Window) showDone(paths []string) {
	again := widget.NewButton("開始新的評估", func() {
		if err := w.sess.Reset(); err != nil {
			w.warn(err)
			return
		}
		w.showSelection()
	})
	quit := widget.NewButton("離開", w.app.Quit)

	lines := container.NewVBox(widget.NewLabelWithStyle("✓ 評估結果已保存", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, p := range paths {
		lines.Add(widget.NewLabel(p))
	}
	w.win.SetContent(container.NewBorder(nil, container.NewGridWithColumns(2, again, quit),
		nil, nil, lines))
}
