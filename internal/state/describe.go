package state

import (
	"fmt"
	"strings"

	"github.com/attio-tui/attio-tui/internal/model"
)

// DescribeUIState renders a plain-text outline of s for debug exports. The output is
// stable for equal states.
func DescribeUIState(s State) string {
	var b strings.Builder
	line := func(k, format string, args ...any) {
		fmt.Fprintf(&b, "%-14s %s\n", k+":", fmt.Sprintf(format, args...))
	}

	ctx := s.Context()
	line("category", "%s", s.Category)
	line("drill", "%s", describeDrill(s.Drill))
	line("context", "%s", ctx.Label())
	line("entity key", "%s", ctx.EntityKey())
	line("focus", "%s", s.FocusedPane)
	line("tab", "%s", s.ActiveTab)

	r := s.Results
	switch {
	case r.Loading:
		line("results", "loading (token %d)", r.Token)
	case r.Err != "":
		line("results", "error: %s", r.Err)
	default:
		line("results", "%d items, selected %d", len(r.Items), r.Selected)
	}
	if r.LoadingMore {
		line("pagination", "loading more from %q", r.NextCursor)
	} else if r.NextCursor != "" {
		line("pagination", "next cursor %q", r.NextCursor)
	} else {
		line("pagination", "end")
	}
	if it, ok := s.SelectedItem(); ok {
		line("selected", "%s %s", it.ID, it.Title)
	}
	if s.Probe.InFlight {
		line("probe", "list %s (token %d)", s.Probe.ListID, s.Probe.Token)
	}
	if s.Palette.Open {
		line("palette", "open, query %q, selected %d", s.Palette.Query, s.Palette.Selected)
	} else {
		line("palette", "closed")
	}
	line("webhook modal", "%s", s.Webhook.Mode)
	if s.Webhook.Err != "" {
		line("webhook error", "%s", s.Webhook.Err)
	}
	line("debug panel", "%t", s.DebugPanelOpen)
	if s.Status.Text != "" {
		line("status", "[%s] %s", s.Status.Tone, s.Status.Text)
	}
	return b.String()
}

func describeDrill(frames []model.Frame) string {
	parts := make([]string, 0, len(frames))
	for _, f := range frames {
		switch f.Level {
		case model.LevelRecords:
			parts = append(parts, fmt.Sprintf("records(%s)", f.ObjectSlug))
		case model.LevelEntries:
			if f.StatusID != "" {
				parts = append(parts, fmt.Sprintf("entries(%s, %s=%s)", f.ListID, f.StatusAttribute, f.StatusTitle))
			} else {
				parts = append(parts, fmt.Sprintf("entries(%s)", f.ListID))
			}
		case model.LevelStatuses:
			parts = append(parts, fmt.Sprintf("statuses(%s, %s)", f.ListID, f.StatusAttribute))
		default:
			parts = append(parts, f.Level.String())
		}
	}
	return strings.Join(parts, " > ")
}
