// Package commands holds the static command catalogue behind the command palette.
package commands

import (
	"strings"

	"github.com/attio-tui/attio-tui/internal/model"
)

// MaxVisible caps how many matches the palette shows.
const MaxVisible = 8

type ActionKind int

const (
	ActionNavigate ActionKind = iota
	ActionFire
	ActionToggle
)

type ActionID string

const (
	FireRefresh       ActionID = "refresh"
	FireLoadMore      ActionID = "load-more"
	FireCopyID        ActionID = "copy-id"
	FireCopyJSON      ActionID = "copy-json"
	FireOpenBrowser   ActionID = "open-browser"
	FireExportDebug   ActionID = "export-debug"
	FireCreateWebhook ActionID = "create-webhook"
	FireEditWebhook   ActionID = "edit-webhook"
	FireDeleteWebhook ActionID = "delete-webhook"
	FireBack          ActionID = "back"
	FireQuit          ActionID = "quit"
)

type FlagID string

const (
	FlagDebugPanel FlagID = "debug-panel"
)

// Action is a discriminated union: exactly one payload field matches Kind.
type Action struct {
	Kind     ActionKind
	Target   model.Category
	ActionID ActionID
	Flag     FlagID
}

func Navigate(c model.Category) Action { return Action{Kind: ActionNavigate, Target: c} }
func Fire(id ActionID) Action          { return Action{Kind: ActionFire, ActionID: id} }
func Toggle(f FlagID) Action           { return Action{Kind: ActionToggle, Flag: f} }

type Command struct {
	ID          string
	Label       string
	Description string
	Shortcut    string
	Action      Action
}

var catalogue = []Command{
	{ID: "nav:objects", Label: "Go to Objects", Description: "Browse objects and drill into their records", Shortcut: "1", Action: Navigate(model.Category{Kind: model.CategoryObjects})},
	{ID: "nav:companies", Label: "Go to Companies", Description: "Browse company records", Action: Navigate(model.ObjectCategory("companies"))},
	{ID: "nav:people", Label: "Go to People", Description: "Browse people records", Action: Navigate(model.ObjectCategory("people"))},
	{ID: "nav:deals", Label: "Go to Deals", Description: "Browse deal records", Action: Navigate(model.ObjectCategory("deals"))},
	{ID: "nav:list", Label: "Go to List browser", Description: "Drill into list entries and statuses", Shortcut: "2", Action: Navigate(model.Category{Kind: model.CategoryList})},
	{ID: "nav:lists", Label: "Go to Lists", Description: "Show every list in the workspace", Action: Navigate(model.Category{Kind: model.CategoryLists})},
	{ID: "nav:notes", Label: "Go to Notes", Description: "Browse notes", Shortcut: "3", Action: Navigate(model.Category{Kind: model.CategoryNotes})},
	{ID: "nav:tasks", Label: "Go to Tasks", Description: "Browse tasks", Shortcut: "4", Action: Navigate(model.Category{Kind: model.CategoryTasks})},
	{ID: "nav:meetings", Label: "Go to Meetings", Description: "Browse meetings", Shortcut: "5", Action: Navigate(model.Category{Kind: model.CategoryMeetings})},
	{ID: "nav:webhooks", Label: "Go to Webhooks", Description: "Manage webhooks", Shortcut: "6", Action: Navigate(model.Category{Kind: model.CategoryWebhooks})},
	{ID: "act:refresh", Label: "Refresh", Description: "Reload the current results", Shortcut: "r", Action: Fire(FireRefresh)},
	{ID: "act:load-more", Label: "Load more", Description: "Fetch the next page of results", Shortcut: "m", Action: Fire(FireLoadMore)},
	{ID: "act:back", Label: "Back", Description: "Return to the previous drill level", Shortcut: "esc", Action: Fire(FireBack)},
	{ID: "act:copy-id", Label: "Copy ID", Description: "Copy the selected item id to the clipboard", Shortcut: "y", Action: Fire(FireCopyID)},
	{ID: "act:copy-json", Label: "Copy JSON", Description: "Copy the selected item payload to the clipboard as JSON", Shortcut: "Y", Action: Fire(FireCopyJSON)},
	{ID: "act:open", Label: "Open in browser", Description: "Open the selected item in the web app", Shortcut: "o", Action: Fire(FireOpenBrowser)},
	{ID: "act:webhook-create", Label: "Create webhook", Description: "Register a new webhook target", Action: Fire(FireCreateWebhook)},
	{ID: "act:webhook-edit", Label: "Edit webhook", Description: "Change the selected webhook target", Action: Fire(FireEditWebhook)},
	{ID: "act:webhook-delete", Label: "Delete webhook", Description: "Delete the selected webhook", Action: Fire(FireDeleteWebhook)},
	{ID: "debug:toggle", Label: "Toggle debug panel", Description: "Show request and action telemetry", Shortcut: "D", Action: Toggle(FlagDebugPanel)},
	{ID: "debug:export", Label: "Export debug snapshot", Description: "Write recent telemetry and UI state to a file", Action: Fire(FireExportDebug)},
	{ID: "app:quit", Label: "Quit", Description: "Exit the application", Shortcut: "q", Action: Fire(FireQuit)},
}

// All returns a copy of the catalogue.
func All() []Command {
	out := make([]Command, len(catalogue))
	copy(out, catalogue)
	return out
}

// ByID looks up a command in the catalogue.
func ByID(id string) (Command, bool) {
	for _, c := range catalogue {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// Filter keeps commands whose label or description contains query (case-insensitive),
// in catalogue order, capped at MaxVisible.
func Filter(cmds []Command, query string) []Command {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Command, 0, MaxVisible)
	for _, c := range cmds {
		if len(out) == MaxVisible {
			break
		}
		if q == "" ||
			strings.Contains(strings.ToLower(c.Label), q) ||
			strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
		}
	}
	return out
}

// ClampSelection keeps idx inside [0, n-1], or 0 when n is 0.
func ClampSelection(idx, n int) int {
	if n <= 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
