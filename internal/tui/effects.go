package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/attio-tui/attio-tui/internal/commands"
	"github.com/attio-tui/attio-tui/internal/debuglog"
	"github.com/attio-tui/attio-tui/internal/state"
)

var (
	errNoPager    = errors.New("no data source configured")
	errNoProber   = errors.New("list schema lookup unavailable")
	errNoWebhooks = errors.New("webhook management unavailable")
	errNoWebURL   = errors.New("item has no web URL")
)

func (m Model) runEffect(e state.Effect) tea.Cmd {
	switch e := e.(type) {
	case state.Fetch:
		return m.fetchCmd(e)
	case state.ProbeStatus:
		return m.probeCmd(e)
	case state.FireAction:
		return m.actionCmd(e)
	case state.ScheduleStatusExpiry:
		return tea.Tick(e.After, func(time.Time) tea.Msg {
			return state.ExpireStatus{Seq: e.Seq}
		})
	case state.Quit:
		return tea.Quit
	}
	return nil
}

func (m Model) fetchCmd(e state.Fetch) tea.Cmd {
	pager, timeout := m.opts.Pager, m.opts.RequestTimeout
	return func() tea.Msg {
		started := time.Now()
		if pager == nil {
			return state.FetchFailed{Token: e.Token, Context: e.Context, Append: e.Append, Err: errNoPager, StartedAt: started}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := pager.FetchPage(ctx, e.Context, e.Cursor)
		d := time.Since(started)
		if err != nil {
			return state.FetchFailed{Token: e.Token, Context: e.Context, Append: e.Append, Err: err, StartedAt: started, Duration: d}
		}
		return state.FetchSucceeded{Token: e.Token, Context: e.Context, Append: e.Append, Page: page, StartedAt: started, Duration: d}
	}
}

func (m Model) probeCmd(e state.ProbeStatus) tea.Cmd {
	prober, timeout := m.opts.Prober, m.opts.RequestTimeout
	return func() tea.Msg {
		started := time.Now()
		if prober == nil {
			return state.ProbeFailed{Token: e.Token, ListID: e.ListID, Name: e.Name, Err: errNoProber, StartedAt: started}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		attr, err := prober.ProbeStatus(ctx, e.ListID)
		d := time.Since(started)
		if err != nil {
			return state.ProbeFailed{Token: e.Token, ListID: e.ListID, Name: e.Name, Err: err, StartedAt: started, Duration: d}
		}
		return state.ProbeResolved{Token: e.Token, ListID: e.ListID, Name: e.Name, Attribute: attr, StartedAt: started, Duration: d}
	}
}

func (m Model) actionCmd(e state.FireAction) tea.Cmd {
	// The export captures the screen as it is now, not when the command runs.
	var frame string
	if e.ID == commands.FireExportDebug {
		frame = m.View()
	}
	return func() tea.Msg {
		started := time.Now()
		detail, err := m.perform(e, frame)
		return state.ActionFinished{
			ID:        e.ID,
			Label:     actionLabel(e.ID),
			Detail:    detail,
			Err:       err,
			StartedAt: started,
			Duration:  time.Since(started),
		}
	}
}

// perform runs one side-effecting action and returns a short detail for the status line.
func (m Model) perform(e state.FireAction, frame string) (string, error) {
	switch e.ID {
	case commands.FireCopyID:
		if err := m.opts.Clipboard.WriteText(e.Item.ID); err != nil {
			return "", err
		}
		return e.Item.ID, nil

	case commands.FireCopyJSON:
		text := prettyJSON(itemPayload(e.Item))
		if err := m.opts.Clipboard.WriteText(text); err != nil {
			return "", err
		}
		return humanize.Bytes(uint64(len(text))) + " copied", nil

	case commands.FireOpenBrowser:
		u := strings.TrimSpace(e.Item.WebURL)
		if u == "" {
			return "", errNoWebURL
		}
		if err := m.opts.Opener.Open(u); err != nil {
			return "", err
		}
		return u, nil

	case commands.FireExportDebug:
		env := debuglog.CollectEnvironment(m.opts.BaseURL, m.width, m.height)
		snap := debuglog.NewSnapshot(time.Now(), env, state.DescribeUIState(m.st), m.store.Log(), frame)
		return debuglog.Export(m.opts.Files, m.opts.ExportDir, snap)

	case commands.FireCreateWebhook, commands.FireEditWebhook, commands.FireDeleteWebhook:
		return m.mutateWebhook(e)
	}
	return "", fmt.Errorf("unsupported action %q", e.ID)
}

func (m Model) mutateWebhook(e state.FireAction) (string, error) {
	if m.opts.Webhooks == nil {
		return "", errNoWebhooks
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.RequestTimeout)
	defer cancel()

	switch e.ID {
	case commands.FireCreateWebhook:
		it, err := m.opts.Webhooks.Create(ctx, e.WebhookURL)
		if err != nil {
			return "", err
		}
		return it.ID, nil
	case commands.FireEditWebhook:
		it, err := m.opts.Webhooks.Update(ctx, e.WebhookID, e.WebhookURL)
		if err != nil {
			return "", err
		}
		return firstNonEmpty(it.ID, e.WebhookID), nil
	default:
		if err := m.opts.Webhooks.Delete(ctx, e.WebhookID); err != nil {
			return "", err
		}
		return e.WebhookID, nil
	}
}

// actionLabel names an action the way the command palette does.
func actionLabel(id commands.ActionID) string {
	for _, c := range commands.All() {
		if c.Action.Kind == commands.ActionFire && c.Action.ActionID == id {
			return c.Label
		}
	}
	return string(id)
}
