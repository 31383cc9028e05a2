package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/attio-tui/attio-tui/internal/buildinfo"
	"github.com/attio-tui/attio-tui/internal/commands"
	"github.com/attio-tui/attio-tui/internal/debuglog"
	"github.com/attio-tui/attio-tui/internal/model"
	"github.com/attio-tui/attio-tui/internal/resources"
	"github.com/attio-tui/attio-tui/internal/state"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}

	bodyH := m.bodyHeight()
	var body string
	switch {
	case m.st.Webhook.Mode != state.WebhookModalClosed:
		body = m.renderWebhookModal(bodyH)
	case m.st.Palette.Open:
		body = m.renderPalette(bodyH)
	default:
		resultsW, detailW := m.paneWidths()
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderNavigator(navigatorWidth, bodyH),
			m.renderResults(resultsW, bodyH),
			m.renderDetail(detailW, bodyH),
		)
	}

	parts := []string{m.renderHeader(), body}
	if m.st.DebugPanelOpen {
		parts = append(parts, m.renderDebugPanel())
	}
	parts = append(parts, m.renderStatusLine(), footerStyle().Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	left := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Attio") +
		mutedStyle().Render("  "+m.st.Context().Label())
	right := mutedStyle().Render(hostOf(m.opts.BaseURL) + " · " + buildinfo.Inline())

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return truncate(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderNavigator(w, h int) string {
	focused := m.st.FocusedPane == state.PaneNavigator
	lines := []string{titleStyle(focused).Render("Navigator"), ""}
	for _, c := range model.NavigatorCategories() {
		if c == m.st.Category {
			lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("› "+c.Label()))
			continue
		}
		lines = append(lines, "  "+c.Label())
	}

	if len(m.st.Drill) > 1 {
		lines = append(lines, "", mutedStyle().Render("Path"))
		for i, f := range m.st.Drill {
			lines = append(lines, mutedStyle().Render(strings.Repeat(" ", i+1)+frameLabel(f)))
		}
	}

	inner := w - 4
	for i := range lines {
		lines[i] = truncate(lines[i], inner)
	}
	return paneStyle(focused).Width(w - 2).Height(h - 2).Render(strings.Join(lines, "\n"))
}

func frameLabel(f model.Frame) string {
	switch f.Level {
	case model.LevelRecords:
		return firstNonEmpty(f.ObjectName, f.ObjectSlug)
	case model.LevelEntries:
		name := firstNonEmpty(f.ListName, f.ListID)
		if f.StatusTitle != "" {
			return name + " · " + f.StatusTitle
		}
		return name
	case model.LevelStatuses:
		return firstNonEmpty(f.ListName, f.ListID) + " · statuses"
	}
	return f.Level.String()
}

func (m Model) renderResults(w, h int) string {
	focused := m.st.FocusedPane == state.PaneResults
	r := m.st.Results
	inner := w - 4

	title := titleStyle(focused).Render(truncate(m.st.Context().Label(), inner))

	var table, summary string
	switch {
	case r.Loading && len(r.Items) == 0:
		summary = m.spinner.View() + mutedStyle().Render(" Loading…")
	case r.Err != "" && len(r.Items) == 0:
		summary = lipgloss.NewStyle().Foreground(dangerColor).Render(truncate("Error: "+r.Err, inner))
	case len(r.Items) == 0:
		summary = mutedStyle().Render("No results")
	default:
		table = m.results.View()
		summary = mutedStyle().Render(resultsSummary(r))
		if r.Loading || r.LoadingMore {
			summary = m.spinner.View() + " " + summary
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, table, summary)
	if table == "" {
		body = lipgloss.JoinVertical(lipgloss.Left, title, "", summary)
	}
	return paneStyle(focused).Width(w - 2).Height(h - 2).Render(body)
}

func resultsSummary(r state.Results) string {
	s := fmt.Sprintf("%d of %s", r.Selected+1, humanize.Comma(int64(len(r.Items))))
	switch {
	case r.LoadingMore:
		s += " · loading more"
	case r.NextCursor != "":
		s += " · more available (m)"
	}
	return s
}

func (m Model) renderDetail(w, h int) string {
	focused := m.st.FocusedPane == state.PaneDetail

	tabs := make([]string, 0, len(state.Tabs()))
	for _, t := range state.Tabs() {
		if t == m.st.ActiveTab {
			tabs = append(tabs, titleStyle(focused).Underline(true).Render(t.String()))
			continue
		}
		tabs = append(tabs, mutedStyle().Render(t.String()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, "  "),
		rule(w-4),
		m.detail.View(),
	)
	return paneStyle(focused).Width(w - 2).Height(h - 2).Render(body)
}

// renderDetailBody is the viewport content for the active tab.
func (m Model) renderDetailBody(width int) string {
	if m.st.ActiveTab == state.TabActions {
		return m.renderActions(width)
	}
	it, ok := m.st.SelectedItem()
	if !ok {
		return mutedStyle().Render("Nothing selected")
	}
	switch m.st.ActiveTab {
	case state.TabJSON:
		return prettyJSON(itemPayload(it))
	case state.TabSDK:
		return m.renderSDK(it)
	}
	return m.renderSummary(it)
}

func (m Model) renderSummary(it model.Item) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(cmpOrDash(it.Title)))
	if it.Subtitle != "" {
		b.WriteString("\n" + mutedStyle().Render(it.Subtitle))
	}
	b.WriteString("\n\n")

	cols := m.store.Columns()
	labelW := runewidth.StringWidth("ID")
	for _, c := range cols {
		labelW = maxInt(labelW, runewidth.StringWidth(c.Label))
	}
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", mutedStyle().Render(padRight(label, labelW)), cmpOrDash(value))
	}
	row("ID", it.ID)
	for _, c := range cols {
		if c.Label == "ID" || c.Attribute == "id" {
			continue
		}
		row(c.Label, c.Cell(it))
	}
	if it.WebURL != "" {
		row("Web", it.WebURL)
	}

	if body := markdownBody(it); body != "" {
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(body))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderMarkdown(body string) string {
	if m.markdown == nil {
		return body
	}
	out, err := m.markdown.Render(body)
	if err != nil {
		return body
	}
	return strings.Trim(out, "\n")
}

func (m Model) renderSDK(it model.Item) string {
	path := resources.ItemPath(m.st.Context(), it)
	if path == "" {
		return mutedStyle().Render("No direct endpoint for this item")
	}
	endpoint := strings.TrimRight(m.opts.BaseURL, "/") + path
	lines := []string{
		mutedStyle().Render("# Fetch this item"),
		fmt.Sprintf("curl -sS '%s' \\", endpoint),
		`  -H "Authorization: Bearer $ATTIO_API_KEY" \`,
		`  -H "Accept: application/json"`,
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderActions(width int) string {
	var lines []string
	for _, c := range availableActions(m.st) {
		shortcut := padRight(cmpOrDash(c.Shortcut), 5)
		line := lipgloss.NewStyle().Foreground(accentColor).Render(shortcut) + c.Label
		if c.Description != "" {
			line += mutedStyle().Render(" · " + c.Description)
		}
		lines = append(lines, truncate(line, width))
	}
	lines = append(lines, "", mutedStyle().Render("Open the command palette with : to run any command."))
	return strings.Join(lines, "\n")
}

// availableActions lists the fire actions that make sense for the current view.
func availableActions(s state.State) []commands.Command {
	_, hasItem := s.SelectedItem()
	var out []commands.Command
	for _, c := range commands.All() {
		if c.Action.Kind != commands.ActionFire {
			continue
		}
		switch c.Action.ActionID {
		case commands.FireCopyID, commands.FireCopyJSON, commands.FireOpenBrowser:
			if !hasItem {
				continue
			}
		case commands.FireCreateWebhook:
			if s.Category.Kind != model.CategoryWebhooks {
				continue
			}
		case commands.FireEditWebhook, commands.FireDeleteWebhook:
			if s.Category.Kind != model.CategoryWebhooks || !hasItem {
				continue
			}
		case commands.FireLoadMore:
			if s.Results.NextCursor == "" {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func (m Model) renderPalette(h int) string {
	w := minInt(72, maxInt(40, m.width-10))
	inner := w - 6

	lines := []string{titleStyle(true).Render("Commands"), "", m.palette.View(), ""}
	matches := commands.Filter(commands.All(), m.st.Palette.Query)
	if len(matches) == 0 {
		lines = append(lines, mutedStyle().Render("No matching commands"))
	}
	for i, c := range matches {
		label := "  " + c.Label
		style := lipgloss.NewStyle()
		if i == m.st.Palette.Selected {
			label = "› " + c.Label
			style = style.Bold(true).Foreground(accentColor)
		}
		line := style.Render(label)
		if c.Shortcut != "" {
			line += mutedStyle().Render("  [" + c.Shortcut + "]")
		}
		line += mutedStyle().Render("  " + c.Description)
		lines = append(lines, truncate(line, inner))
	}
	lines = append(lines, "", mutedStyle().Render("enter run · ↑/↓ select · esc close"))

	box := overlayStyle(w).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderWebhookModal(h int) string {
	w := minInt(80, maxInt(40, m.width-10))
	form := m.st.Webhook

	var lines []string
	switch form.Mode {
	case state.WebhookModalConfirmDelete:
		lines = []string{
			titleStyle(true).Render("Delete webhook"),
			"",
			"Delete " + lipgloss.NewStyle().Bold(true).Render(form.WebhookID) + "?",
			mutedStyle().Render(cmpOrDash(form.TargetURL)),
			"",
			mutedStyle().Render("y confirm · n cancel"),
		}
	default:
		title := "Create webhook"
		if form.Mode == state.WebhookModalEdit {
			title = "Edit webhook " + form.WebhookID
		}
		lines = []string{
			titleStyle(true).Render(title),
			"",
			m.webhook.View(),
			"",
			mutedStyle().Render("Events: " + strings.Join(resources.DefaultWebhookEvents, ", ")),
		}
		if form.Err != "" {
			lines = append(lines, "", lipgloss.NewStyle().Foreground(dangerColor).Bold(true).Render(form.Err))
		}
		lines = append(lines, "", mutedStyle().Render("enter save · esc cancel"))
	}

	box := overlayStyle(w).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderDebugPanel() string {
	log := m.store.Log()
	entries := log.Recent(debugPanelRows)

	title := titleStyle(false).Render("Debug") +
		mutedStyle().Render(fmt.Sprintf("  %d of %d entries · newest first", log.Len(), log.Cap()))
	lines := []string{rule(m.width), title}
	for i := len(entries) - 1; i >= 0; i-- {
		lines = append(lines, truncate(debugLine(entries[i]), m.width))
	}
	for len(lines) < debugPanelRows+2 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func debugLine(e debuglog.Entry) string {
	mark := lipgloss.NewStyle().Foreground(okColor).Render("✓")
	if e.Status == debuglog.StatusError {
		mark = lipgloss.NewStyle().Foreground(dangerColor).Render("✗")
	}
	line := fmt.Sprintf("%s %-7s %-32s %8s  %s",
		mark,
		e.Kind,
		runewidth.Truncate(e.Label, 32, "…"),
		e.Duration.Round(time.Millisecond).String(),
		mutedStyle().Render(humanize.Time(e.StartedAt)),
	)
	switch {
	case e.Error != "":
		line += "  " + lipgloss.NewStyle().Foreground(dangerColor).Render(e.Error)
	case e.Detail != "":
		line += "  " + mutedStyle().Render(e.Detail)
	}
	return line
}

func (m Model) renderStatusLine() string {
	if m.st.Status.Text == "" {
		return ""
	}
	return truncate(toneStyle(m.st.Status.Tone).Render(m.st.Status.Text), m.width)
}
