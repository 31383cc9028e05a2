// Package state is the navigation engine: one State value, advanced only by Reduce.
// Rendering and I/O live elsewhere; the host turns Effects into work and feeds the
// outcome back as Events.
package state

import (
	"github.com/attio-tui/attio-tui/internal/commands"
	"github.com/attio-tui/attio-tui/internal/model"
)

type Pane int

const (
	PaneNavigator Pane = iota
	PaneResults
	PaneDetail
)

var paneOrder = []Pane{PaneNavigator, PaneResults, PaneDetail}

func (p Pane) String() string {
	switch p {
	case PaneNavigator:
		return "navigator"
	case PaneResults:
		return "results"
	case PaneDetail:
		return "detail"
	}
	return "unknown"
}

type Tab int

const (
	TabSummary Tab = iota
	TabJSON
	TabSDK
	TabActions
)

var tabOrder = []Tab{TabSummary, TabJSON, TabSDK, TabActions}

// Tabs lists the detail tabs in display order.
func Tabs() []Tab {
	out := make([]Tab, len(tabOrder))
	copy(out, tabOrder)
	return out
}

func (t Tab) String() string {
	switch t {
	case TabSummary:
		return "summary"
	case TabJSON:
		return "json"
	case TabSDK:
		return "sdk"
	case TabActions:
		return "actions"
	}
	return "unknown"
}

func ParseTab(s string) (Tab, bool) {
	for _, t := range tabOrder {
		if t.String() == s {
			return t, true
		}
	}
	return TabSummary, false
}

type WebhookModal int

const (
	WebhookModalClosed WebhookModal = iota
	WebhookModalCreate
	WebhookModalEdit
	WebhookModalConfirmDelete
)

func (m WebhookModal) String() string {
	switch m {
	case WebhookModalCreate:
		return "create"
	case WebhookModalEdit:
		return "edit"
	case WebhookModalConfirmDelete:
		return "confirm-delete"
	}
	return "closed"
}

type Tone int

const (
	ToneInfo Tone = iota
	ToneError
)

func (t Tone) String() string {
	if t == ToneError {
		return "error"
	}
	return "info"
}

// StatusMessage is a transient footer message. Seq ties it to its expiry tick so an
// older tick cannot clear a newer message.
type StatusMessage struct {
	Text string
	Tone Tone
	Seq  uint64
}

type Results struct {
	Items       []model.Item
	NextCursor  string
	Loading     bool
	LoadingMore bool
	Err         string
	Selected    int
	// Token of the fetch whose completion will be accepted.
	Token uint64
}

type Palette struct {
	Open     bool
	Query    string
	Selected int
}

// Probe tracks the outstanding list schema probe, if any.
type Probe struct {
	InFlight bool
	ListID   string
	ListName string
	Token    uint64
}

type WebhookForm struct {
	Mode      WebhookModal
	WebhookID string
	TargetURL string
	Err       string
}

type State struct {
	FocusedPane Pane
	Category    model.Category
	// Drill is the active category's path, root first. It is never empty.
	Drill          []model.Frame
	Results        Results
	ActiveTab      Tab
	Palette        Palette
	Webhook        WebhookForm
	DebugPanelOpen bool
	Status         StatusMessage
	Probe          Probe

	NextToken uint64
	StatusSeq uint64
}

// Initial is the state before the first category is selected.
func Initial() State {
	c := model.NavigatorCategories()[0]
	return State{
		FocusedPane: PaneNavigator,
		Category:    c,
		Drill:       []model.Frame{model.RootFrame(c)},
	}
}

// Frame is the current drill level.
func (s State) Frame() model.Frame {
	if len(s.Drill) == 0 {
		return model.RootFrame(s.Category)
	}
	return s.Drill[len(s.Drill)-1]
}

func (s State) Context() model.DrillContext {
	return model.DrillContext{Category: s.Category, Frame: s.Frame()}
}

// SelectedItem returns the highlighted result, if there is one.
func (s State) SelectedItem() (model.Item, bool) {
	if len(s.Results.Items) == 0 {
		return model.Item{}, false
	}
	return s.Results.Items[commands.ClampSelection(s.Results.Selected, len(s.Results.Items))], true
}
