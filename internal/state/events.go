package state

import (
	"time"

	"github.com/attio-tui/attio-tui/internal/columns"
	"github.com/attio-tui/attio-tui/internal/commands"
	"github.com/attio-tui/attio-tui/internal/model"
)

// Event is anything Reduce understands. The set is closed.
type Event interface{ isEvent() }

type (
	FocusNextPane struct{}
	FocusPrevPane struct{}
	FocusPane     struct{ Pane Pane }

	SelectCategory struct{ Category model.Category }

	ObjectDrillIntoRecords struct{ Slug, Name string }

	// ListDrillRequested asks for a schema probe before choosing between the statuses
	// and entries levels.
	ListDrillRequested struct{ ListID, Name string }
	ProbeResolved      struct {
		Token     uint64
		ListID    string
		Name      string
		Attribute *model.Attribute
		StartedAt time.Time
		Duration  time.Duration
	}
	ProbeFailed struct {
		Token     uint64
		ListID    string
		Name      string
		Err       error
		StartedAt time.Time
		Duration  time.Duration
	}
	ListDrillIntoStatuses struct{ ListID, Name, StatusAttribute string }
	ListDrillIntoEntries  struct {
		ListID          string
		Name            string
		StatusID        string
		StatusTitle     string
		StatusAttribute string
	}
	DrillBack struct{}

	MoveSelection struct{ Delta int }
	SelectIndex   struct{ Index int }
	// Activate drills into the selected item, or focuses the detail pane when the
	// current level has nothing below it.
	Activate struct{}

	Refresh  struct{}
	LoadMore struct{}

	FetchSucceeded struct {
		Token     uint64
		Context   model.DrillContext
		Append    bool
		Page      model.Page
		StartedAt time.Time
		Duration  time.Duration
	}
	FetchFailed struct {
		Token     uint64
		Context   model.DrillContext
		Append    bool
		Err       error
		StartedAt time.Time
		Duration  time.Duration
	}

	SetTab  struct{ Tab Tab }
	NextTab struct{}
	PrevTab struct{}

	OpenPalette             struct{}
	ClosePalette            struct{}
	PaletteQueryChanged     struct{ Query string }
	PaletteMove             struct{ Delta int }
	ExecutePaletteSelection struct{}
	// RunAction fires a catalogue action directly, e.g. from a key binding.
	RunAction struct{ Action commands.Action }

	ToggleDebugPanel struct{}

	OpenWebhookModal   struct{ Mode WebhookModal }
	WebhookURLChanged  struct{ URL string }
	SubmitWebhookModal struct{}
	CloseWebhookModal  struct{}

	ShowStatus   struct {
		Text string
		Tone Tone
	}
	ExpireStatus struct{ Seq uint64 }

	ColumnsReloaded struct {
		Overrides columns.Overrides
		Err       error
	}

	// ActionFinished reports the outcome of a FireAction effect.
	ActionFinished struct {
		ID        commands.ActionID
		Label     string
		Detail    string
		Err       error
		StartedAt time.Time
		Duration  time.Duration
	}
)

func (FocusNextPane) isEvent()           {}
func (FocusPrevPane) isEvent()           {}
func (FocusPane) isEvent()               {}
func (SelectCategory) isEvent()          {}
func (ObjectDrillIntoRecords) isEvent()  {}
func (ListDrillRequested) isEvent()      {}
func (ProbeResolved) isEvent()           {}
func (ProbeFailed) isEvent()             {}
func (ListDrillIntoStatuses) isEvent()   {}
func (ListDrillIntoEntries) isEvent()    {}
func (DrillBack) isEvent()               {}
func (MoveSelection) isEvent()           {}
func (SelectIndex) isEvent()             {}
func (Activate) isEvent()                {}
func (Refresh) isEvent()                 {}
func (LoadMore) isEvent()                {}
func (FetchSucceeded) isEvent()          {}
func (FetchFailed) isEvent()             {}
func (SetTab) isEvent()                  {}
func (NextTab) isEvent()                 {}
func (PrevTab) isEvent()                 {}
func (OpenPalette) isEvent()             {}
func (ClosePalette) isEvent()            {}
func (PaletteQueryChanged) isEvent()     {}
func (PaletteMove) isEvent()             {}
func (ExecutePaletteSelection) isEvent() {}
func (RunAction) isEvent()               {}
func (ToggleDebugPanel) isEvent()        {}
func (OpenWebhookModal) isEvent()        {}
func (WebhookURLChanged) isEvent()       {}
func (SubmitWebhookModal) isEvent()      {}
func (CloseWebhookModal) isEvent()       {}
func (ShowStatus) isEvent()              {}
func (ExpireStatus) isEvent()            {}
func (ColumnsReloaded) isEvent()         {}
func (ActionFinished) isEvent()          {}

// Effect is work Reduce asks the host to perform.
type Effect interface{ isEffect() }

type (
	Fetch struct {
		Token   uint64
		Context model.DrillContext
		Cursor  string
		Append  bool
	}
	ProbeStatus struct {
		Token  uint64
		ListID string
		Name   string
	}
	// FireAction carries everything the host needs; Item is a copy of the selection.
	FireAction struct {
		ID         commands.ActionID
		Item       model.Item
		HasItem    bool
		Context    model.DrillContext
		WebhookID  string
		WebhookURL string
	}
	ScheduleStatusExpiry struct {
		Seq   uint64
		After time.Duration
	}
	Quit struct{}
)

func (Fetch) isEffect()                {}
func (ProbeStatus) isEffect()          {}
func (FireAction) isEffect()           {}
func (ScheduleStatusExpiry) isEffect() {}
func (Quit) isEffect()                 {}
