// Package console is the terminal admin for the storefront API. Each
// resource is a tab backed by a table controller and an action toolbar.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	teatable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JaimeStill/storefront/internal/table"
	"github.com/JaimeStill/storefront/internal/toolbar"
	"github.com/JaimeStill/storefront/pkg/client"
	"github.com/JaimeStill/storefront/pkg/logging"
	"github.com/JaimeStill/storefront/pkg/notify"
)

const (
	streamPath  = "notifications/stream"
	toastTTL    = 4 * time.Second
	maxToasts   = 3
	noticeQueue = 64
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeCreate
	modeEdit
	modeConfirmDelete
)

type (
	fetchedMsg struct {
		screen int
		err    error
	}
	actionMsg struct {
		screen int
		label  string
		err    error
	}
	noticeMsg       toolbar.Notice
	streamOpenedMsg struct{ ch <-chan notify.Message }
	streamMsg       notify.Message
	streamClosedMsg struct{ err error }
	toastExpiredMsg struct{ id int }
)

type toast struct {
	id   int
	kind string
	text string
}

// Options configures the console.
type Options struct {
	Context  context.Context
	Client   *client.Client
	PageSize int
	Logger   *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	logger  *slog.Logger
	stream  func(ctx context.Context) (<-chan notify.Message, error)
	notices chan toolbar.Notice
	events  <-chan notify.Message

	screens []screen
	active  int
	mode    mode

	table   teatable.Model
	spinner spinner.Model
	input   textinput.Model
	help    help.Model
	keys    keyMap
	styles  styles

	toasts    []toast
	nextToast int
	width     int
	height    int
}

// New builds the console for every storefront resource.
func New(opts Options) Model {
	notices := make(chan toolbar.Notice, noticeQueue)
	notifier := toolbar.NotifierFunc(func(n toolbar.Notice) {
		select {
		case notices <- n:
		default:
		}
	})

	var stream func(context.Context) (<-chan notify.Message, error)
	if opts.Client != nil {
		c := opts.Client
		stream = func(ctx context.Context) (<-chan notify.Message, error) {
			return c.Stream(ctx, streamPath)
		}
	}

	return newModel(opts.Context, opts.Logger, screens(opts.Client, opts.PageSize, notifier), notices, stream)
}

func newModel(
	ctx context.Context,
	logger *slog.Logger,
	scrs []screen,
	notices chan toolbar.Notice,
	stream func(context.Context) (<-chan notify.Message, error),
) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	km := teatable.DefaultKeyMap()
	keys := defaultKeyMap()
	tableKeys := teatable.KeyMap{
		LineUp:     keys.Up,
		LineDown:   keys.Down,
		GotoTop:    km.GotoTop,
		GotoBottom: km.GotoBottom,
	}

	st := teatable.DefaultStyles()
	st.Selected = st.Selected.Foreground(colorText).Background(colorAccent).Bold(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	in := textinput.New()
	in.CharLimit = 200

	m := Model{
		ctx:     ctx,
		logger:  logger.With("system", "console"),
		stream:  stream,
		notices: notices,
		screens: scrs,
		table: teatable.New(
			teatable.WithFocused(true),
			teatable.WithStyles(st),
			teatable.WithKeyMap(tableKeys),
			teatable.WithHeight(12),
		),
		spinner: sp,
		input:   in,
		help:    help.New(),
		keys:    keys,
		styles:  defaultStyles(),
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.waitNotice()}
	if len(m.screens) > 0 {
		cmds = append(cmds, m.fetch(func(ctx context.Context, s screen) error { return s.Reload(ctx) }))
	}
	if m.stream != nil {
		cmds = append(cmds, m.openStream())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-9, 3))
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchedMsg:
		if msg.err != nil && !quiet(msg.err) {
			m.logger.Warn("fetch failed", "resource", m.screenName(msg.screen), "error", msg.err)
		}
		m.sync()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.logger.Warn("action failed", "resource", m.screenName(msg.screen), "action", msg.label, "error", msg.err)
		} else {
			m.logger.Info("action applied", "resource", m.screenName(msg.screen), "action", msg.label)
		}
		m.sync()
		return m, nil

	case noticeMsg:
		kind := string(msg.Kind)
		if msg.Level == toolbar.LevelInfo {
			kind = "info"
		}
		cmd := m.addToast(kind, msg.Message)
		return m, tea.Batch(cmd, m.waitNotice())

	case streamOpenedMsg:
		m.events = msg.ch
		return m, m.waitStream()

	case streamMsg:
		cmds := []tea.Cmd{m.addToast("event", fmt.Sprintf("%s: %s", msg.Resource, msg.Text)), m.waitStream()}
		if cur := m.current(); cur != nil && cur.Name() == msg.Resource && msg.Kind != notify.KindInfo {
			cmds = append(cmds, m.fetch(func(ctx context.Context, s screen) error { return s.Reload(ctx) }))
		}
		return m, tea.Batch(cmds...)

	case streamClosedMsg:
		m.events = nil
		if msg.err != nil {
			m.logger.Warn("notification stream unavailable", "error", msg.err)
			return m, m.addToast("transport", "live updates unavailable")
		}
		return m, nil

	case toastExpiredMsg:
		for i, t := range m.toasts {
			if t.id == msg.id {
				m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
				break
			}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case cur == nil:
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTo(m.active + 1)

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTo(m.active - 1)

	case key.Matches(msg, m.keys.NextPage):
		return m, m.fetch(func(ctx context.Context, s screen) error { return s.NextPage(ctx) })

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.fetch(func(ctx context.Context, s screen) error { return s.PrevPage(ctx) })

	case key.Matches(msg, m.keys.Reload):
		return m, m.fetch(func(ctx context.Context, s screen) error { return s.Reload(ctx) })

	case key.Matches(msg, m.keys.Sort):
		return m, m.fetch(func(ctx context.Context, s screen) error { return s.CycleSort(ctx) })

	case key.Matches(msg, m.keys.Search):
		return m.prompt(modeSearch, "search: ", cur.Status().Search), nil

	case key.Matches(msg, m.keys.Select):
		cur.Toggle(m.table.Cursor())
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		cur.ClearSelection()
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if cur.Status().Selected == 0 {
			return m, m.runAction("delete", func(ctx context.Context, s screen) error {
				_, err := s.Delete(ctx)
				return err
			})
		}
		m.mode = modeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keys.Create):
		if !cur.CanCreate() {
			return m, m.runAction("create", func(ctx context.Context, s screen) error { return s.Create(ctx, "") })
		}
		return m.prompt(modeCreate, "new "+singular(cur.Name())+": ", ""), nil

	case key.Matches(msg, m.keys.Edit):
		value, err := cur.EditValue()
		if err != nil {
			return m, nil
		}
		return m.prompt(modeEdit, "edit: ", value), nil
	}

	for _, a := range cur.Actions() {
		if msg.String() == a.Key {
			run := a.Run
			return m, m.runAction(a.Label, func(ctx context.Context, _ screen) error { return run(ctx) })
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmDelete {
		m.mode = modeBrowse
		if msg.String() != "y" {
			return m, nil
		}
		return m, m.runAction("delete", func(ctx context.Context, s screen) error {
			_, err := s.Delete(ctx)
			return err
		})
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		submitted := m.mode
		m.mode = modeBrowse
		m.input.Blur()

		switch submitted {
		case modeSearch:
			return m, m.fetch(func(ctx context.Context, s screen) error { return s.Search(ctx, value) })
		case modeCreate:
			return m, m.runAction("create", func(ctx context.Context, s screen) error { return s.Create(ctx, value) })
		case modeEdit:
			return m, m.runAction("edit", func(ctx context.Context, s screen) error { return s.Edit(ctx, value) })
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// switchTo activates the screen at i, wrapping around. The selection of the
// screen being left is cleared.
func (m Model) switchTo(i int) (tea.Model, tea.Cmd) {
	n := len(m.screens)
	m.current().ClearSelection()
	m.active = ((i % n) + n) % n
	m.table.SetCursor(0)
	m.sync()

	if !m.current().Status().Loaded {
		return m, m.fetch(func(ctx context.Context, s screen) error { return s.Reload(ctx) })
	}
	return m, nil
}

func (m Model) prompt(md mode, label, value string) Model {
	m.mode = md
	m.input.Prompt = label
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

// fetch runs a paging operation for the active screen off the update loop.
func (m Model) fetch(fn func(context.Context, screen) error) tea.Cmd {
	idx, s, ctx := m.active, m.current(), m.ctx
	return func() tea.Msg {
		return fetchedMsg{screen: idx, err: fn(ctx, s)}
	}
}

// runAction runs a toolbar operation for the active screen. Failures are
// reported through notices.
func (m Model) runAction(label string, fn func(context.Context, screen) error) tea.Cmd {
	idx, s, ctx := m.active, m.current(), m.ctx
	return func() tea.Msg {
		return actionMsg{screen: idx, label: label, err: fn(ctx, s)}
	}
}

func (m Model) waitNotice() tea.Cmd {
	ch := m.notices
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func (m Model) openStream() tea.Cmd {
	open, ctx := m.stream, m.ctx
	return func() tea.Msg {
		ch, err := open(ctx)
		if err != nil {
			return streamClosedMsg{err: err}
		}
		return streamOpenedMsg{ch: ch}
	}
}

func (m Model) waitStream() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return streamMsg(msg)
	}
}

func (m *Model) addToast(kind, text string) tea.Cmd {
	m.nextToast++
	id := m.nextToast
	m.toasts = append(m.toasts, toast{id: id, kind: kind, text: text})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// sync copies the active screen's page into the table widget.
func (m *Model) sync() {
	cur := m.current()
	if cur == nil {
		return
	}
	rows := cur.Rows()
	m.table.SetRows(nil)
	m.table.SetColumns(cur.Columns())
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) current() screen {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[m.active]
}

func (m Model) screenName(i int) string {
	if i < 0 || i >= len(m.screens) {
		return ""
	}
	return m.screens[i].Name()
}

func quiet(err error) bool {
	return errors.Is(err, table.ErrSuperseded) || errors.Is(err, context.Canceled)
}

// View implements tea.Model.
func (m Model) View() string {
	cur := m.current()
	if cur == nil {
		return "no resources configured\n"
	}
	st := cur.Status()

	sections := []string{m.renderTabs(), ""}

	switch {
	case st.Err != nil && !quiet(st.Err):
		panel := fmt.Sprintf("could not load %s\n%s\n\npress r to retry", cur.Name(), toolbar.NoticeFor(st.Err).Message)
		sections = append(sections, m.styles.ErrorBox.Render(panel))
	case st.Loaded && st.TotalCount == 0:
		sections = append(sections, m.styles.Muted.Render(fmt.Sprintf("no %s found", cur.Name())))
	default:
		sections = append(sections, m.table.View())
	}

	sections = append(sections, "", m.renderFooter(st))

	switch m.mode {
	case modeSearch, modeCreate, modeEdit:
		sections = append(sections, m.input.View())
	case modeConfirmDelete:
		sections = append(sections, m.styles.Prompt.Render(
			fmt.Sprintf("delete %d selected %s? (y/n)", st.Selected, cur.Name())))
	}

	for _, t := range m.toasts {
		style, ok := m.styles.Toast[t.kind]
		if !ok {
			style = m.styles.Muted
		}
		sections = append(sections, style.Render("• "+t.text))
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.screens))
	for i, s := range m.screens {
		if i == m.active {
			tabs[i] = m.styles.ActiveTab.Render(s.Name())
		} else {
			tabs[i] = m.styles.Tab.Render(s.Name())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter(st status) string {
	parts := []string{st.pageLabel()}
	if st.Selected > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", st.Selected))
	}
	if st.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", st.Search))
	}
	if len(st.Sort) > 0 {
		dir := "asc"
		if st.Sort[0].Descending {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", st.Sort[0].Field, dir))
	}

	footer := m.styles.Footer.Render(strings.Join(parts, " · "))
	if st.Loading {
		footer = m.spinner.View() + " " + footer
	}
	return footer
}
