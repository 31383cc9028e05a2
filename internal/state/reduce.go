package state

import (
	"strings"
	"time"

	"github.com/attio-tui/attio-tui/internal/commands"
	"github.com/attio-tui/attio-tui/internal/model"
)

// StatusTTL is how long a status message stays up.
const StatusTTL = 4 * time.Second

// Reduce applies ev to s. It never mutates slices reachable from s, so earlier
// snapshots stay valid.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case FocusNextPane:
		s.FocusedPane = rotatePane(s.FocusedPane, 1)
	case FocusPrevPane:
		s.FocusedPane = rotatePane(s.FocusedPane, -1)
	case FocusPane:
		s.FocusedPane = ev.Pane

	case SelectCategory:
		return selectCategory(s, ev.Category)

	case ObjectDrillIntoRecords:
		if s.Category.Kind != model.CategoryObjects || s.Frame().Level != model.LevelObjects {
			return s, nil
		}
		slug := strings.TrimSpace(ev.Slug)
		if slug == "" {
			return s, nil
		}
		return drillTo(s, model.Frame{
			Level:      model.LevelRecords,
			ObjectSlug: slug,
			ObjectName: firstNonEmpty(ev.Name, model.TitleCase(slug)),
		})

	case ListDrillRequested:
		if s.Category.Kind != model.CategoryList || s.Frame().Level != model.LevelLists {
			return s, nil
		}
		if s.Probe.InFlight && s.Probe.ListID == ev.ListID {
			return s, nil
		}
		s.NextToken++
		s.Probe = Probe{InFlight: true, ListID: ev.ListID, ListName: ev.Name, Token: s.NextToken}
		return s, []Effect{ProbeStatus{Token: s.NextToken, ListID: ev.ListID, Name: ev.Name}}

	case ProbeResolved:
		if !s.Probe.InFlight || ev.Token != s.Probe.Token {
			return s, nil
		}
		s.Probe = Probe{}
		if ev.Attribute != nil && strings.TrimSpace(ev.Attribute.Slug) != "" {
			return Reduce(s, ListDrillIntoStatuses{ListID: ev.ListID, Name: ev.Name, StatusAttribute: ev.Attribute.Slug})
		}
		return Reduce(s, ListDrillIntoEntries{ListID: ev.ListID, Name: ev.Name})

	case ProbeFailed:
		if !s.Probe.InFlight || ev.Token != s.Probe.Token {
			return s, nil
		}
		s.Probe = Probe{}
		return Reduce(s, ListDrillIntoEntries{ListID: ev.ListID, Name: ev.Name})

	case ListDrillIntoStatuses:
		if s.Category.Kind != model.CategoryList {
			return s, nil
		}
		s.Probe = Probe{}
		s.Drill = []model.Frame{model.RootFrame(s.Category)}
		return drillTo(s, model.Frame{
			Level:           model.LevelStatuses,
			ListID:          ev.ListID,
			ListName:        ev.Name,
			StatusAttribute: ev.StatusAttribute,
		})

	case ListDrillIntoEntries:
		if s.Category.Kind != model.CategoryList {
			return s, nil
		}
		s.Probe = Probe{}
		parent := s.Frame()
		entries := model.Frame{
			Level:           model.LevelEntries,
			ListID:          ev.ListID,
			ListName:        ev.Name,
			StatusAttribute: ev.StatusAttribute,
			StatusID:        ev.StatusID,
			StatusTitle:     ev.StatusTitle,
		}
		if ev.StatusID != "" && parent.Level == model.LevelStatuses && parent.ListID == ev.ListID {
			s.Drill = []model.Frame{model.RootFrame(s.Category), parent}
		} else {
			s.Drill = []model.Frame{model.RootFrame(s.Category)}
		}
		return drillTo(s, entries)

	case DrillBack:
		s.Probe = Probe{}
		if len(s.Drill) <= 1 {
			return s, nil
		}
		s.Drill = append([]model.Frame(nil), s.Drill[:len(s.Drill)-1]...)
		s.Results = Results{}
		return startFetch(s, false)

	case MoveSelection:
		s.Results.Selected = commands.ClampSelection(s.Results.Selected+ev.Delta, len(s.Results.Items))
	case SelectIndex:
		s.Results.Selected = commands.ClampSelection(ev.Index, len(s.Results.Items))
	case Activate:
		return activate(s)

	case Refresh:
		return startFetch(s, false)
	case LoadMore:
		if s.Results.NextCursor == "" || s.Results.Loading || s.Results.LoadingMore {
			return s, nil
		}
		return startFetch(s, true)

	case FetchSucceeded:
		if ev.Token != s.Results.Token {
			return s, nil
		}
		r := s.Results
		if ev.Append {
			items := make([]model.Item, 0, len(r.Items)+len(ev.Page.Items))
			items = append(items, r.Items...)
			r.Items = append(items, ev.Page.Items...)
		} else {
			r.Items = ev.Page.Items
		}
		r.NextCursor = ev.Page.NextCursor
		r.Loading, r.LoadingMore, r.Err = false, false, ""
		r.Selected = commands.ClampSelection(r.Selected, len(r.Items))
		s.Results = r
	case FetchFailed:
		if ev.Token != s.Results.Token {
			return s, nil
		}
		r := s.Results
		msg := errText(ev.Err, "request failed")
		if !ev.Append {
			r.Items = nil
			r.NextCursor = ""
			r.Err = msg
		}
		r.Loading, r.LoadingMore = false, false
		r.Selected = commands.ClampSelection(r.Selected, len(r.Items))
		s.Results = r
		return setStatus(s, "Could not load "+ev.Context.Resource().String()+": "+msg, ToneError)

	case SetTab:
		s.ActiveTab = ev.Tab
	case NextTab:
		s.ActiveTab = rotateTab(s.ActiveTab, 1)
	case PrevTab:
		s.ActiveTab = rotateTab(s.ActiveTab, -1)

	case OpenPalette:
		s.Palette = Palette{Open: true}
	case ClosePalette:
		s.Palette = Palette{}
	case PaletteQueryChanged:
		if !s.Palette.Open {
			return s, nil
		}
		s.Palette.Query = ev.Query
		s.Palette.Selected = 0
	case PaletteMove:
		if !s.Palette.Open {
			return s, nil
		}
		n := len(commands.Filter(commands.All(), s.Palette.Query))
		s.Palette.Selected = commands.ClampSelection(s.Palette.Selected+ev.Delta, n)
	case ExecutePaletteSelection:
		cmd, ok := SelectedCommand(s)
		s.Palette = Palette{}
		if !ok {
			return s, nil
		}
		return runAction(s, cmd.Action)
	case RunAction:
		return runAction(s, ev.Action)

	case ToggleDebugPanel:
		s.DebugPanelOpen = !s.DebugPanelOpen

	case OpenWebhookModal:
		return openWebhookModal(s, ev.Mode)
	case WebhookURLChanged:
		if s.Webhook.Mode == WebhookModalCreate || s.Webhook.Mode == WebhookModalEdit {
			s.Webhook.TargetURL = ev.URL
			s.Webhook.Err = ""
		}
	case SubmitWebhookModal:
		return submitWebhookModal(s)
	case CloseWebhookModal:
		s.Webhook = WebhookForm{}

	case ShowStatus:
		return setStatus(s, ev.Text, ev.Tone)
	case ExpireStatus:
		if ev.Seq == s.Status.Seq {
			s.Status = StatusMessage{}
		}

	case ColumnsReloaded:
		if ev.Err != nil {
			return setStatus(s, "Column config has errors; invalid entries use defaults", ToneInfo)
		}
		return setStatus(s, "Column config reloaded", ToneInfo)

	case ActionFinished:
		label := firstNonEmpty(ev.Label, string(ev.ID))
		if ev.Err != nil {
			return setStatus(s, label+" failed: "+errText(ev.Err, "unknown error"), ToneError)
		}
		text := label
		if ev.Detail != "" {
			text += ": " + ev.Detail
		}
		var effects []Effect
		s, effects = setStatus(s, text, ToneInfo)
		if isWebhookMutation(ev.ID) && s.Category.Kind == model.CategoryWebhooks {
			var more []Effect
			s, more = startFetch(s, false)
			effects = append(effects, more...)
		}
		return s, effects
	}
	return s, nil
}

// SelectedCommand is the palette entry ExecutePaletteSelection would run.
func SelectedCommand(s State) (commands.Command, bool) {
	if !s.Palette.Open {
		return commands.Command{}, false
	}
	filtered := commands.Filter(commands.All(), s.Palette.Query)
	if len(filtered) == 0 {
		return commands.Command{}, false
	}
	return filtered[commands.ClampSelection(s.Palette.Selected, len(filtered))], true
}

func selectCategory(s State, c model.Category) (State, []Effect) {
	s.Category = c
	s.Drill = []model.Frame{model.RootFrame(c)}
	s.Probe = Probe{}
	s.Webhook = WebhookForm{}
	s.Results = Results{}
	return startFetch(s, false)
}

func drillTo(s State, f model.Frame) (State, []Effect) {
	drill := make([]model.Frame, 0, len(s.Drill)+1)
	drill = append(drill, s.Drill...)
	s.Drill = append(drill, f)
	s.Results = Results{}
	s.FocusedPane = PaneResults
	return startFetch(s, false)
}

// startFetch issues a new token, so any older in-flight completion is ignored.
func startFetch(s State, appendPage bool) (State, []Effect) {
	s.NextToken++
	s.Results.Token = s.NextToken
	cursor := ""
	if appendPage {
		cursor = s.Results.NextCursor
		s.Results.LoadingMore = true
		s.Results.Loading = false
	} else {
		s.Results.Loading = true
		s.Results.LoadingMore = false
	}
	return s, []Effect{Fetch{Token: s.NextToken, Context: s.Context(), Cursor: cursor, Append: appendPage}}
}

func activate(s State) (State, []Effect) {
	it, ok := s.SelectedItem()
	if !ok {
		return s, nil
	}
	f := s.Frame()
	switch {
	case f.Level == model.LevelObjects && s.Category.Kind == model.CategoryObjects:
		return Reduce(s, ObjectDrillIntoRecords{Slug: objectSlug(it), Name: it.Title})
	case f.Level == model.LevelLists && s.Category.Kind == model.CategoryList:
		return Reduce(s, ListDrillRequested{ListID: it.ID, Name: it.Title})
	case f.Level == model.LevelStatuses:
		return Reduce(s, ListDrillIntoEntries{
			ListID:          f.ListID,
			Name:            f.ListName,
			StatusID:        it.ID,
			StatusTitle:     it.Title,
			StatusAttribute: f.StatusAttribute,
		})
	}
	s.FocusedPane = PaneDetail
	return s, nil
}

func runAction(s State, a commands.Action) (State, []Effect) {
	switch a.Kind {
	case commands.ActionNavigate:
		return selectCategory(s, a.Target)
	case commands.ActionToggle:
		if a.Flag == commands.FlagDebugPanel {
			s.DebugPanelOpen = !s.DebugPanelOpen
		}
		return s, nil
	}

	switch a.ActionID {
	case commands.FireRefresh:
		return Reduce(s, Refresh{})
	case commands.FireLoadMore:
		if s.Results.NextCursor == "" {
			return setStatus(s, "No more results", ToneInfo)
		}
		return Reduce(s, LoadMore{})
	case commands.FireBack:
		return Reduce(s, DrillBack{})
	case commands.FireQuit:
		return s, []Effect{Quit{}}
	case commands.FireCreateWebhook:
		return openWebhookModal(s, WebhookModalCreate)
	case commands.FireEditWebhook:
		return openWebhookModal(s, WebhookModalEdit)
	case commands.FireDeleteWebhook:
		return openWebhookModal(s, WebhookModalConfirmDelete)
	case commands.FireExportDebug:
		return s, []Effect{FireAction{ID: a.ActionID, Context: s.Context()}}
	case commands.FireCopyID, commands.FireCopyJSON, commands.FireOpenBrowser:
		it, ok := s.SelectedItem()
		if !ok {
			return setStatus(s, "Nothing selected", ToneError)
		}
		return s, []Effect{FireAction{ID: a.ActionID, Item: it, HasItem: true, Context: s.Context()}}
	}
	return s, nil
}

func openWebhookModal(s State, mode WebhookModal) (State, []Effect) {
	if s.Category.Kind != model.CategoryWebhooks {
		return setStatus(s, "Webhook actions are only available under Webhooks", ToneError)
	}
	switch mode {
	case WebhookModalCreate:
		s.Webhook = WebhookForm{Mode: mode}
	case WebhookModalEdit, WebhookModalConfirmDelete:
		it, ok := s.SelectedItem()
		if !ok {
			return setStatus(s, "Select a webhook first", ToneError)
		}
		s.Webhook = WebhookForm{Mode: mode, WebhookID: it.ID, TargetURL: webhookTarget(it)}
	default:
		s.Webhook = WebhookForm{}
	}
	return s, nil
}

func submitWebhookModal(s State) (State, []Effect) {
	form := s.Webhook
	var id commands.ActionID
	switch form.Mode {
	case WebhookModalCreate:
		id = commands.FireCreateWebhook
	case WebhookModalEdit:
		id = commands.FireEditWebhook
	case WebhookModalConfirmDelete:
		s.Webhook = WebhookForm{}
		return s, []Effect{FireAction{ID: commands.FireDeleteWebhook, Context: s.Context(), WebhookID: form.WebhookID}}
	default:
		return s, nil
	}
	target, err := ValidateWebhookURL(form.TargetURL)
	if err != nil {
		s.Webhook.Err = err.Error()
		return s, nil
	}
	s.Webhook = WebhookForm{}
	return s, []Effect{FireAction{ID: id, Context: s.Context(), WebhookID: form.WebhookID, WebhookURL: target}}
}

func setStatus(s State, text string, tone Tone) (State, []Effect) {
	s.StatusSeq++
	s.Status = StatusMessage{Text: text, Tone: tone, Seq: s.StatusSeq}
	return s, []Effect{ScheduleStatusExpiry{Seq: s.StatusSeq, After: StatusTTL}}
}

func rotatePane(p Pane, step int) Pane {
	for i, q := range paneOrder {
		if q == p {
			n := len(paneOrder)
			return paneOrder[((i+step)%n+n)%n]
		}
	}
	return PaneNavigator
}

func rotateTab(t Tab, step int) Tab {
	for i, q := range tabOrder {
		if q == t {
			n := len(tabOrder)
			return tabOrder[((i+step)%n+n)%n]
		}
	}
	return TabSummary
}

func isWebhookMutation(id commands.ActionID) bool {
	return id == commands.FireCreateWebhook || id == commands.FireEditWebhook || id == commands.FireDeleteWebhook
}

func objectSlug(it model.Item) string {
	if slug, ok := it.Raw["api_slug"].(string); ok && strings.TrimSpace(slug) != "" {
		return slug
	}
	return it.ID
}

func webhookTarget(it model.Item) string {
	if u, ok := it.Raw["target_url"].(string); ok {
		return u
	}
	return it.Title
}

func errText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
