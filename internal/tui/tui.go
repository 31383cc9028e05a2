// Package tui is the bubbletea host for the navigation engine. Key presses become
// state events, effects become tea.Cmds, and their outcomes are fed back as events.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/attio-tui/attio-tui/internal/api"
	"github.com/attio-tui/attio-tui/internal/columns"
	"github.com/attio-tui/attio-tui/internal/commands"
	"github.com/attio-tui/attio-tui/internal/debuglog"
	"github.com/attio-tui/attio-tui/internal/export"
	"github.com/attio-tui/attio-tui/internal/model"
	"github.com/attio-tui/attio-tui/internal/platform"
	"github.com/attio-tui/attio-tui/internal/resources"
	"github.com/attio-tui/attio-tui/internal/state"
)

const (
	defaultRequestTimeout = 20 * time.Second
	navigatorWidth        = 24
	debugPanelRows        = 6
)

// WebhookService performs webhook mutations.
type WebhookService interface {
	Create(ctx context.Context, targetURL string) (model.Item, error)
	Update(ctx context.Context, id, targetURL string) (model.Item, error)
	Delete(ctx context.Context, id string) error
}

type Options struct {
	Store     *state.Store
	Pager     resources.Pager
	Prober    resources.Prober
	Webhooks  WebhookService
	Clipboard platform.Clipboard
	Opener    platform.Opener
	Files     debuglog.FileWriter

	BaseURL     string
	ExportDir   string
	ColumnsPath string
	SessionPath string
	// StartCategory is selected on Init. Nil keeps the store's current category.
	StartCategory *model.Category

	RequestTimeout time.Duration
	// MarkdownStyle is a glamour standard style name; empty picks one from the terminal.
	MarkdownStyle string
	Logger        *slog.Logger
}

type Model struct {
	opts  Options
	store *state.Store
	st    state.State

	width  int
	height int

	keys keyMap
	help help.Model

	results  table.Model
	detail   viewport.Model
	palette  textinput.Model
	webhook  textinput.Model
	spinner  spinner.Model
	markdown *glamour.TermRenderer
	mdWidth  int
}

// Run starts the program, watches the column override file while it runs and saves the
// session afterwards.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	opts = m.opts
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.ColumnsPath != "" {
		go func() {
			err := columns.Watch(watchCtx, opts.ColumnsPath, func(o columns.Overrides, err error) {
				p.Send(state.ColumnsReloaded{Overrides: o, Err: err})
			})
			if err != nil {
				opts.Logger.Warn("column watcher stopped", "path", opts.ColumnsPath, "error", err)
			}
		}()
	}

	_, err := p.Run()
	if opts.SessionPath != "" {
		if serr := state.SaveSession(opts.SessionPath, state.SessionFrom(opts.Store.Snapshot())); serr != nil {
			opts.Logger.Warn("saving session", "path", opts.SessionPath, "error", serr)
		}
	}
	return err
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Store == nil {
		opts.Store = state.NewStore(state.StoreOptions{Logger: opts.Logger})
	}
	if opts.Clipboard == nil {
		opts.Clipboard = platform.SystemClipboard{}
	}
	if opts.Opener == nil {
		opts.Opener = platform.Browser{}
	}
	if opts.Files == nil {
		opts.Files = export.Files{}
	}
	if opts.ExportDir == "" {
		if dir, err := export.DefaultDir(); err == nil {
			opts.ExportDir = dir
		}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = api.DefaultBaseURL
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	t := table.New(table.WithFocused(true))
	t.SetStyles(resultsTableStyles())

	pi := textinput.New()
	pi.Placeholder = "Type to filter commands"
	pi.Prompt = "› "
	pi.CharLimit = 80

	wi := textinput.New()
	wi.Placeholder = "https://example.com/hooks/attio"
	wi.Prompt = "URL › "
	wi.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return Model{
		opts:    opts,
		store:   opts.Store,
		st:      opts.Store.Snapshot(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		results: t,
		detail:  viewport.New(0, 0),
		palette: pi,
		webhook: wi,
		spinner: sp,
	}
}

// State is the last snapshot the model rendered.
func (m Model) State() state.State { return m.st }

func (m Model) Init() tea.Cmd {
	c := m.st.Category
	if m.opts.StartCategory != nil {
		c = *m.opts.StartCategory
	}
	return tea.Batch(m.spinner.Tick, emit(state.SelectCategory{Category: c}))
}

func emit(ev state.Event) tea.Cmd {
	return func() tea.Msg { return ev }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sync(m.st)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case state.Event:
		return m.dispatch(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// dispatch feeds ev through the store and turns the resulting effects into commands.
func (m Model) dispatch(ev state.Event) (Model, tea.Cmd) {
	prev := m.st
	st, effects := m.store.Dispatch(ev)
	m.st = st
	m.sync(prev)

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		if cmd := m.runEffect(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.dispatch(state.RunAction{Action: commands.Fire(commands.FireQuit)})
	}
	if m.st.Webhook.Mode != state.WebhookModalClosed {
		return m.handleWebhookKey(msg)
	}
	if m.st.Palette.Open {
		return m.handlePaletteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		return m.dispatch(state.OpenPalette{})
	case key.Matches(msg, m.keys.NextPane):
		return m.dispatch(state.FocusNextPane{})
	case key.Matches(msg, m.keys.PrevPane):
		return m.dispatch(state.FocusPrevPane{})
	case key.Matches(msg, m.keys.NextTab):
		return m.dispatch(state.NextTab{})
	case key.Matches(msg, m.keys.PrevTab):
		return m.dispatch(state.PrevTab{})
	case key.Matches(msg, m.keys.Enter):
		if m.st.FocusedPane == state.PaneNavigator {
			return m.dispatch(state.FocusPane{Pane: state.PaneResults})
		}
		return m.dispatch(state.Activate{})
	case key.Matches(msg, m.keys.Up):
		return m.move(-1)
	case key.Matches(msg, m.keys.Down):
		return m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		return m.move(-m.pageStep())
	case key.Matches(msg, m.keys.PageDown):
		return m.move(m.pageStep())
	}

	if c, ok := shortcutCommand(msg); ok {
		return m.dispatch(state.RunAction{Action: c.Action})
	}
	return m, nil
}

// move steps through whatever the focused pane shows. The navigator selects categories
// directly; the detail pane scrolls.
func (m Model) move(delta int) (tea.Model, tea.Cmd) {
	switch m.st.FocusedPane {
	case state.PaneNavigator:
		cats := model.NavigatorCategories()
		i := categoryIndex(cats, m.st.Category)
		next := commands.ClampSelection(i+delta, len(cats))
		if next == i {
			return m, nil
		}
		return m.dispatch(state.SelectCategory{Category: cats[next]})
	case state.PaneDetail:
		if delta < 0 {
			m.detail.ScrollUp(-delta)
		} else {
			m.detail.ScrollDown(delta)
		}
		return m, nil
	}
	return m.dispatch(state.MoveSelection{Delta: delta})
}

func (m Model) pageStep() int {
	return maxInt(1, m.results.Height()-1)
}

func categoryIndex(cats []model.Category, c model.Category) int {
	for i, cat := range cats {
		if cat == c {
			return i
		}
	}
	return 0
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	msg = translateNavKeys(msg)
	switch msg.String() {
	case "esc":
		return m.dispatch(state.ClosePalette{})
	case "enter":
		return m.dispatch(state.ExecutePaletteSelection{})
	case "up":
		return m.dispatch(state.PaletteMove{Delta: -1})
	case "down", "tab":
		return m.dispatch(state.PaletteMove{Delta: 1})
	}

	var cmd tea.Cmd
	m.palette, cmd = m.palette.Update(msg)
	if q := m.palette.Value(); q != m.st.Palette.Query {
		next, more := m.dispatch(state.PaletteQueryChanged{Query: q})
		return next, tea.Batch(cmd, more)
	}
	return m, cmd
}

func (m Model) handleWebhookKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.st.Webhook.Mode == state.WebhookModalConfirmDelete {
		switch msg.String() {
		case "y", "enter":
			return m.dispatch(state.SubmitWebhookModal{})
		case "n", "esc", "q":
			return m.dispatch(state.CloseWebhookModal{})
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.dispatch(state.CloseWebhookModal{})
	case "enter":
		return m.dispatch(state.SubmitWebhookModal{})
	}

	var cmd tea.Cmd
	m.webhook, cmd = m.webhook.Update(msg)
	if v := m.webhook.Value(); v != m.st.Webhook.TargetURL {
		next, more := m.dispatch(state.WebhookURLChanged{URL: v})
		return next, tea.Batch(cmd, more)
	}
	return m, cmd
}

// sync brings the bubbles components in line with the current snapshot.
func (m *Model) sync(prev state.State) {
	switch {
	case m.st.Palette.Open && !prev.Palette.Open:
		m.palette.SetValue(m.st.Palette.Query)
		m.palette.CursorEnd()
		m.palette.Focus()
	case !m.st.Palette.Open && prev.Palette.Open:
		m.palette.Blur()
		m.palette.Reset()
	}

	editing := m.st.Webhook.Mode == state.WebhookModalCreate || m.st.Webhook.Mode == state.WebhookModalEdit
	wasEditing := prev.Webhook.Mode == state.WebhookModalCreate || prev.Webhook.Mode == state.WebhookModalEdit
	switch {
	case editing && (!wasEditing || prev.Webhook.Mode != m.st.Webhook.Mode):
		m.webhook.SetValue(m.st.Webhook.TargetURL)
		m.webhook.CursorEnd()
		m.webhook.Focus()
	case !editing && wasEditing:
		m.webhook.Blur()
		m.webhook.Reset()
	}

	m.layout()
	m.refreshResults()

	prevItem, _ := prev.SelectedItem()
	curItem, _ := m.st.SelectedItem()
	if prevItem.ID != curItem.ID || prev.ActiveTab != m.st.ActiveTab {
		m.detail.GotoTop()
	}
	m.detail.SetContent(m.renderDetailBody(m.detail.Width))
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.help.Width = m.width

	bodyH := m.bodyHeight()
	innerH := maxInt(1, bodyH-2)
	resultsW, detailW := m.paneWidths()

	// Title line above the table and a summary line below it.
	m.results.SetWidth(maxInt(10, resultsW-4))
	m.results.SetHeight(maxInt(2, innerH-2))

	// Tab bar and rule above the viewport.
	m.detail.Width = maxInt(10, detailW-4)
	m.detail.Height = maxInt(1, innerH-2)

	if m.markdown == nil || m.mdWidth != m.detail.Width {
		m.markdown = newMarkdownRenderer(m.opts.MarkdownStyle, m.detail.Width)
		m.mdWidth = m.detail.Width
	}
}

func (m Model) bodyHeight() int {
	h := m.height - 1 - m.footerHeight()
	if m.st.DebugPanelOpen {
		h -= debugPanelRows + 2
	}
	return maxInt(5, h)
}

func (m Model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

func (m Model) paneWidths() (results, detail int) {
	rest := maxInt(40, m.width-navigatorWidth)
	results = rest * 55 / 100
	return results, rest - results
}

func newMarkdownRenderer(style string, width int) *glamour.TermRenderer {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(maxInt(20, width))}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil
	}
	return r
}

func (m *Model) refreshResults() {
	cols := m.store.Columns()
	rows := make([]table.Row, 0, len(m.st.Results.Items))
	for _, it := range m.st.Results.Items {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = c.Cell(it)
		}
		rows = append(rows, row)
	}

	// Columns and rows must agree in length before the table renders.
	m.results.SetRows(nil)
	m.results.SetColumns(tableColumns(cols, m.results.Width()))
	m.results.SetRows(rows)
	m.results.SetCursor(m.st.Results.Selected)
	if m.st.FocusedPane == state.PaneResults {
		m.results.Focus()
	} else {
		m.results.Blur()
	}
}

// tableColumns shrinks the resolved widths proportionally when they do not fit. Each
// cell carries one column of padding on both sides.
func tableColumns(cols []columns.Resolved, avail int) []table.Column {
	total := 0
	for _, c := range cols {
		total += c.Width + 2
	}
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		w := c.Width
		if avail > 0 && total > avail {
			w = maxInt(4, (c.Width+2)*avail/total-2)
		}
		out[i] = table.Column{Title: c.Label, Width: w}
	}
	return out
}
