package state

import (
	"errors"
	"testing"

	"github.com/attio-tui/attio-tui/internal/commands"
	"github.com/attio-tui/attio-tui/internal/model"
)

func apply(s State, events ...Event) (State, []Effect) {
	var effects []Effect
	for _, ev := range events {
		s, effects = Reduce(s, ev)
	}
	return s, effects
}

func items(ids ...string) []model.Item {
	out := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Item{ID: id, Title: "Item " + id})
	}
	return out
}

func onlyFetch(t *testing.T, effects []Effect) Fetch {
	t.Helper()
	if len(effects) != 1 {
		t.Fatalf("effects = %#v, want one fetch", effects)
	}
	f, ok := effects[0].(Fetch)
	if !ok {
		t.Fatalf("effect = %#v, want Fetch", effects[0])
	}
	return f
}

func TestPaneRotation_IsCyclic(t *testing.T) {
	for _, start := range []Pane{PaneNavigator, PaneResults, PaneDetail} {
		s := Initial()
		s.FocusedPane = start
		got, _ := apply(s, FocusNextPane{}, FocusNextPane{}, FocusNextPane{})
		if got.FocusedPane != start {
			t.Fatalf("3x next from %s = %s", start, got.FocusedPane)
		}
		got, _ = apply(s, FocusNextPane{}, FocusPrevPane{})
		if got.FocusedPane != start {
			t.Fatalf("next then prev from %s = %s", start, got.FocusedPane)
		}
		got, _ = apply(s, FocusPrevPane{}, FocusPrevPane{}, FocusPrevPane{})
		if got.FocusedPane != start {
			t.Fatalf("3x prev from %s = %s", start, got.FocusedPane)
		}
	}
	s, _ := apply(Initial(), FocusPrevPane{})
	if s.FocusedPane != PaneDetail {
		t.Fatalf("prev from navigator = %s, want detail", s.FocusedPane)
	}
}

func TestSelectCategory_ResetsAndFetches(t *testing.T) {
	s := Initial()
	s.Results = Results{Items: items("a", "b"), Selected: 1}
	s, effects := Reduce(s, SelectCategory{Category: model.Category{Kind: model.CategoryNotes}})
	f := onlyFetch(t, effects)
	if f.Context.Resource() != model.ResourceNotes || f.Cursor != "" || f.Append {
		t.Fatalf("fetch = %+v", f)
	}
	if s.Results.Selected != 0 || len(s.Results.Items) != 0 || !s.Results.Loading {
		t.Fatalf("results not reset: %+v", s.Results)
	}
	if len(s.Drill) != 1 || s.Frame().Level != model.LevelCollection {
		t.Fatalf("drill = %+v", s.Drill)
	}
	if f.Token != s.Results.Token {
		t.Fatalf("fetch token %d != results token %d", f.Token, s.Results.Token)
	}
}

func TestObjectDrill_OnlyUnderObjects(t *testing.T) {
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryNotes}})
	got, effects := Reduce(s, ObjectDrillIntoRecords{Slug: "companies", Name: "Companies"})
	if len(effects) != 0 || len(got.Drill) != 1 {
		t.Fatalf("drill under notes should be ignored: %+v", got.Drill)
	}

	s, _ = Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryObjects}})
	s, effects = Reduce(s, ObjectDrillIntoRecords{Slug: "companies", Name: "Companies"})
	f := onlyFetch(t, effects)
	if f.Context.Resource() != model.ResourceRecords || f.Context.EntityKey() != "object-companies" {
		t.Fatalf("fetch context = %+v", f.Context)
	}
	if len(s.Drill) != 2 || s.Frame().ObjectName != "Companies" {
		t.Fatalf("drill = %+v", s.Drill)
	}

	// Already at records: a second drill is ignored.
	if _, effects := Reduce(s, ObjectDrillIntoRecords{Slug: "people"}); len(effects) != 0 {
		t.Fatalf("nested object drill should be ignored")
	}

	s, effects = Reduce(s, DrillBack{})
	onlyFetch(t, effects)
	if s.Frame().Level != model.LevelObjects {
		t.Fatalf("back from records = %s", s.Frame().Level)
	}
}

func TestActivate_DrillsIntoObjectUsingSlug(t *testing.T) {
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryObjects}})
	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: []model.Item{
		{ID: "obj-uuid", Title: "Companies", Raw: map[string]any{"api_slug": "companies"}},
	}}})
	s, _ = Reduce(s, Activate{})
	if s.Frame().Level != model.LevelRecords || s.Frame().ObjectSlug != "companies" {
		t.Fatalf("frame = %+v", s.Frame())
	}
	if s.FocusedPane != PaneResults {
		t.Fatalf("focus = %s", s.FocusedPane)
	}
}

func listState(t *testing.T) State {
	t.Helper()
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryList}})
	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: items("L1", "L2")}})
	return s
}

func TestListDrill_ProbeReentrancy(t *testing.T) {
	s := listState(t)

	s, effects := Reduce(s, ListDrillRequested{ListID: "L1", Name: "Deals"})
	if len(effects) != 1 {
		t.Fatalf("effects = %#v", effects)
	}
	first, ok := effects[0].(ProbeStatus)
	if !ok || first.ListID != "L1" {
		t.Fatalf("effect = %#v", effects[0])
	}

	// Same list while in flight: ignored.
	again, effects := Reduce(s, ListDrillRequested{ListID: "L1", Name: "Deals"})
	if len(effects) != 0 || again.Probe.Token != first.Token {
		t.Fatalf("duplicate probe not suppressed: %#v", effects)
	}

	// Different list: supersedes.
	s, effects = Reduce(s, ListDrillRequested{ListID: "L2", Name: "Hiring"})
	second := effects[0].(ProbeStatus)
	if second.Token == first.Token || s.Probe.ListID != "L2" {
		t.Fatalf("second probe did not supersede: %+v", s.Probe)
	}

	// The superseded completion is dropped.
	stale, effects := Reduce(s, ProbeResolved{Token: first.Token, ListID: "L1", Name: "Deals",
		Attribute: &model.Attribute{Slug: "stage", Type: "status"}})
	if len(effects) != 0 || stale.Frame().Level != model.LevelLists {
		t.Fatalf("stale probe applied: %+v", stale.Frame())
	}

	s, effects = Reduce(s, ProbeResolved{Token: second.Token, ListID: "L2", Name: "Hiring",
		Attribute: &model.Attribute{Slug: "stage", Type: "status"}})
	f := onlyFetch(t, effects)
	if s.Frame().Level != model.LevelStatuses || s.Frame().StatusAttribute != "stage" || s.Frame().ListID != "L2" {
		t.Fatalf("frame = %+v", s.Frame())
	}
	if f.Context.Resource() != model.ResourceStatuses || s.Probe.InFlight {
		t.Fatalf("fetch = %+v probe = %+v", f, s.Probe)
	}
}

func TestListDrill_ProbeWithoutStatusOrFailureGoesToEntries(t *testing.T) {
	for name, resolve := range map[string]func(uint64) Event{
		"none": func(tok uint64) Event {
			return ProbeResolved{Token: tok, ListID: "L1", Name: "Deals"}
		},
		"failure": func(tok uint64) Event {
			return ProbeFailed{Token: tok, ListID: "L1", Name: "Deals", Err: errors.New("timeout")}
		},
	} {
		s := listState(t)
		s, _ = Reduce(s, ListDrillRequested{ListID: "L1", Name: "Deals"})
		s, effects := Reduce(s, resolve(s.Probe.Token))
		f := onlyFetch(t, effects)
		if s.Frame().Level != model.LevelEntries || s.Frame().StatusID != "" {
			t.Fatalf("%s: frame = %+v", name, s.Frame())
		}
		if f.Context.Frame.ListID != "L1" {
			t.Fatalf("%s: fetch context = %+v", name, f.Context)
		}
	}
}

func TestListDrill_StatusFilterCarriesForwardAndBack(t *testing.T) {
	s := listState(t)
	s, _ = Reduce(s, ListDrillIntoStatuses{ListID: "L1", Name: "Deals", StatusAttribute: "stage"})
	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: []model.Item{
		{ID: "st-lead", Title: "Lead"}, {ID: "st-won", Title: "Won"},
	}}})
	s, _ = Reduce(s, MoveSelection{Delta: 1})
	s, effects := Reduce(s, Activate{})
	f := onlyFetch(t, effects)

	frame := s.Frame()
	if frame.Level != model.LevelEntries || frame.StatusID != "st-won" || frame.StatusTitle != "Won" || frame.StatusAttribute != "stage" {
		t.Fatalf("entries frame = %+v", frame)
	}
	if len(s.Drill) != 3 || f.Context.Label() != "List browser / Deals / Won" {
		t.Fatalf("drill = %+v label = %q", s.Drill, f.Context.Label())
	}
	if s.Results.Selected != 0 {
		t.Fatalf("child selection not reset: %d", s.Results.Selected)
	}

	s, _ = Reduce(s, DrillBack{})
	if s.Frame().Level != model.LevelStatuses {
		t.Fatalf("back from filtered entries = %s", s.Frame().Level)
	}
	s, _ = Reduce(s, DrillBack{})
	if s.Frame().Level != model.LevelLists {
		t.Fatalf("back from statuses = %s", s.Frame().Level)
	}
	if _, effects := Reduce(s, DrillBack{}); len(effects) != 0 {
		t.Fatalf("back at root should be a no-op")
	}
}

func TestFetch_StaleCompletionDropped(t *testing.T) {
	s, first := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryNotes}})
	s, _ = Reduce(s, SelectCategory{Category: model.Category{Kind: model.CategoryTasks}})

	got, _ := Reduce(s, FetchSucceeded{Token: onlyFetch(t, first).Token, Page: model.Page{Items: items("n1")}})
	if len(got.Results.Items) != 0 || !got.Results.Loading {
		t.Fatalf("stale page applied: %+v", got.Results)
	}
	got, effects := Reduce(s, FetchFailed{Token: onlyFetch(t, first).Token, Err: errors.New("boom")})
	if len(effects) != 0 || got.Status.Text != "" {
		t.Fatalf("stale failure surfaced: %+v", got.Status)
	}
}

func TestLoadMore_AppendsAndPreservesSelection(t *testing.T) {
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryTasks}})
	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: items("a", "b"), NextCursor: "2"}})
	s, _ = Reduce(s, SelectIndex{Index: 1})
	before := s

	s, effects := Reduce(s, LoadMore{})
	f := onlyFetch(t, effects)
	if !f.Append || f.Cursor != "2" || !s.Results.LoadingMore {
		t.Fatalf("load more fetch = %+v", f)
	}
	// A second LoadMore while one is running is ignored.
	if _, effects := Reduce(s, LoadMore{}); len(effects) != 0 {
		t.Fatalf("concurrent load more not suppressed")
	}

	s, _ = Reduce(s, FetchSucceeded{Token: f.Token, Append: true, Page: model.Page{Items: items("c")}})
	if len(s.Results.Items) != 3 || s.Results.Selected != 1 || s.Results.NextCursor != "" {
		t.Fatalf("results = %+v", s.Results)
	}
	if len(before.Results.Items) != 2 {
		t.Fatalf("earlier snapshot mutated: %+v", before.Results.Items)
	}
	if _, effects := Reduce(s, LoadMore{}); len(effects) != 0 {
		t.Fatalf("load more without cursor should be a no-op")
	}
}

func TestFetchFailure_ClearsAndClamps(t *testing.T) {
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryTasks}})
	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: items("a", "b", "c")}})
	s, _ = Reduce(s, SelectIndex{Index: 2})
	s, effects := Reduce(s, Refresh{})
	f := onlyFetch(t, effects)
	if len(s.Results.Items) != 3 {
		t.Fatalf("refresh should keep items until replaced")
	}

	s, effects = Reduce(s, FetchFailed{Token: f.Token, Context: f.Context, Err: errors.New("503 unavailable")})
	if len(s.Results.Items) != 0 || s.Results.Selected != 0 || s.Results.Err != "503 unavailable" {
		t.Fatalf("results = %+v", s.Results)
	}
	if s.Status.Tone != ToneError || len(effects) != 1 {
		t.Fatalf("status = %+v effects = %#v", s.Status, effects)
	}
	if _, ok := effects[0].(ScheduleStatusExpiry); !ok {
		t.Fatalf("effect = %#v", effects[0])
	}
}

func TestSelection_AlwaysClamped(t *testing.T) {
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryNotes}})
	s, _ = Reduce(s, MoveSelection{Delta: 5})
	if s.Results.Selected != 0 {
		t.Fatalf("empty list selection = %d", s.Results.Selected)
	}
	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: items("a", "b")}})
	s, _ = Reduce(s, MoveSelection{Delta: 10})
	if s.Results.Selected != 1 {
		t.Fatalf("selection = %d, want 1", s.Results.Selected)
	}
	s, _ = Reduce(s, MoveSelection{Delta: -10})
	if s.Results.Selected != 0 {
		t.Fatalf("selection = %d, want 0", s.Results.Selected)
	}

	s, _ = Reduce(s, SelectIndex{Index: 1})
	s, effects := Reduce(s, Refresh{})
	s, _ = Reduce(s, FetchSucceeded{Token: onlyFetch(t, effects).Token, Page: model.Page{Items: items("only")}})
	if s.Results.Selected != 0 {
		t.Fatalf("selection after shrink = %d", s.Results.Selected)
	}
}

func TestPalette_QueryResetsSelectionAndExecuteCloses(t *testing.T) {
	s, _ := apply(Initial(), OpenPalette{}, PaletteMove{Delta: 3})
	if s.Palette.Selected != 3 {
		t.Fatalf("selected = %d", s.Palette.Selected)
	}
	s, _ = Reduce(s, PaletteQueryChanged{Query: "go to"})
	if s.Palette.Selected != 0 {
		t.Fatalf("query change did not reset selection")
	}
	s, _ = Reduce(s, PaletteMove{Delta: 100})
	n := len(commands.Filter(commands.All(), "go to"))
	if s.Palette.Selected != n-1 {
		t.Fatalf("selected = %d, want %d", s.Palette.Selected, n-1)
	}

	s, _ = apply(s, PaletteQueryChanged{Query: "tasks"})
	cmd, ok := SelectedCommand(s)
	if !ok || cmd.ID != "nav:tasks" {
		t.Fatalf("selected command = %+v", cmd)
	}
	s, effects := Reduce(s, ExecutePaletteSelection{})
	onlyFetch(t, effects)
	if s.Palette.Open || s.Palette.Query != "" || s.Category.Kind != model.CategoryTasks {
		t.Fatalf("palette = %+v category = %s", s.Palette, s.Category)
	}

	s, _ = apply(s, OpenPalette{}, PaletteQueryChanged{Query: "zzz"}, ClosePalette{})
	if s.Palette != (Palette{}) {
		t.Fatalf("close did not discard query: %+v", s.Palette)
	}
	s, _ = apply(s, OpenPalette{})
	if s.Palette.Query != "" || s.Palette.Selected != 0 {
		t.Fatalf("reopen = %+v", s.Palette)
	}
}

func TestRunAction_ItemActionsNeedSelection(t *testing.T) {
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryNotes}})
	got, effects := Reduce(s, RunAction{Action: commands.Fire(commands.FireCopyID)})
	if got.Status.Tone != ToneError || len(effects) != 1 {
		t.Fatalf("status = %+v", got.Status)
	}

	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: items("n1")}})
	_, effects = Reduce(s, RunAction{Action: commands.Fire(commands.FireCopyID)})
	fire, ok := effects[0].(FireAction)
	if !ok || !fire.HasItem || fire.Item.ID != "n1" {
		t.Fatalf("effect = %#v", effects[0])
	}

	_, effects = Reduce(s, RunAction{Action: commands.Fire(commands.FireQuit)})
	if _, ok := effects[0].(Quit); !ok {
		t.Fatalf("quit effect = %#v", effects)
	}
	got, _ = Reduce(s, RunAction{Action: commands.Toggle(commands.FlagDebugPanel)})
	if !got.DebugPanelOpen {
		t.Fatalf("debug panel not toggled")
	}
}

func TestWebhookModal(t *testing.T) {
	s, _ := Reduce(Initial(), SelectCategory{Category: model.Category{Kind: model.CategoryNotes}})
	got, _ := Reduce(s, OpenWebhookModal{Mode: WebhookModalCreate})
	if got.Webhook.Mode != WebhookModalClosed || got.Status.Tone != ToneError {
		t.Fatalf("modal opened outside webhooks: %+v", got.Webhook)
	}

	s, _ = Reduce(s, SelectCategory{Category: model.Category{Kind: model.CategoryWebhooks}})
	s, _ = Reduce(s, FetchSucceeded{Token: s.Results.Token, Page: model.Page{Items: []model.Item{
		{ID: "wh1", Title: "https://example.com/hook", Subtitle: "active", Raw: map[string]any{"target_url": "https://example.com/hook"}},
	}}})

	s, _ = apply(s, OpenWebhookModal{Mode: WebhookModalCreate}, WebhookURLChanged{URL: "ftp://nope"}, SubmitWebhookModal{})
	if s.Webhook.Mode != WebhookModalCreate || s.Webhook.Err == "" {
		t.Fatalf("invalid URL accepted: %+v", s.Webhook)
	}
	s, _ = Reduce(s, WebhookURLChanged{URL: " https://hooks.example.com/in "})
	if s.Webhook.Err != "" {
		t.Fatalf("editing should clear the error")
	}
	s, effects := Reduce(s, SubmitWebhookModal{})
	fire := effects[0].(FireAction)
	if s.Webhook.Mode != WebhookModalClosed || fire.ID != commands.FireCreateWebhook || fire.WebhookURL != "https://hooks.example.com/in" {
		t.Fatalf("create = %+v, modal = %+v", fire, s.Webhook)
	}

	s, _ = Reduce(s, OpenWebhookModal{Mode: WebhookModalEdit})
	if s.Webhook.WebhookID != "wh1" || s.Webhook.TargetURL != "https://example.com/hook" {
		t.Fatalf("edit prefill = %+v", s.Webhook)
	}
	s, _ = Reduce(s, CloseWebhookModal{})

	s, _ = Reduce(s, RunAction{Action: commands.Fire(commands.FireDeleteWebhook)})
	if s.Webhook.Mode != WebhookModalConfirmDelete {
		t.Fatalf("delete did not ask for confirmation")
	}
	s, effects = Reduce(s, SubmitWebhookModal{})
	fire = effects[0].(FireAction)
	if fire.ID != commands.FireDeleteWebhook || fire.WebhookID != "wh1" {
		t.Fatalf("delete = %+v", fire)
	}

	s, effects = Reduce(s, ActionFinished{ID: commands.FireDeleteWebhook, Label: "Delete webhook"})
	var sawFetch bool
	for _, e := range effects {
		if _, ok := e.(Fetch); ok {
			sawFetch = true
		}
	}
	if !sawFetch || s.Status.Text != "Delete webhook" {
		t.Fatalf("webhook mutation should refresh: %#v status %+v", effects, s.Status)
	}
}

func TestStatus_OlderExpiryDoesNotClearNewerMessage(t *testing.T) {
	s, effects := Reduce(Initial(), ShowStatus{Text: "first"})
	firstSeq := effects[0].(ScheduleStatusExpiry).Seq
	if effects[0].(ScheduleStatusExpiry).After != StatusTTL {
		t.Fatalf("expiry = %#v", effects[0])
	}
	s, _ = Reduce(s, ShowStatus{Text: "second", Tone: ToneError})
	s, _ = Reduce(s, ExpireStatus{Seq: firstSeq})
	if s.Status.Text != "second" {
		t.Fatalf("newer message cleared: %+v", s.Status)
	}
	s, _ = Reduce(s, ExpireStatus{Seq: s.Status.Seq})
	if s.Status.Text != "" {
		t.Fatalf("message not cleared: %+v", s.Status)
	}
}

func TestTabsRotate(t *testing.T) {
	s, _ := apply(Initial(), PrevTab{})
	if s.ActiveTab != TabActions {
		t.Fatalf("prev from summary = %s", s.ActiveTab)
	}
	s, _ = apply(s, NextTab{}, NextTab{}, SetTab{Tab: TabSDK})
	if s.ActiveTab != TabSDK {
		t.Fatalf("tab = %s", s.ActiveTab)
	}
}
