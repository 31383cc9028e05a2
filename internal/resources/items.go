package resources

import (
	"strings"

	"github.com/attio-tui/attio-tui/internal/columns"
	"github.com/attio-tui/attio-tui/internal/model"
)

type listEnvelope struct {
	Data []map[string]any `json:"data"`
}

func str(m map[string]any, path ...string) string {
	var cur any = m
	for _, p := range path {
		mm, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = mm[p]
	}
	return columns.Stringify(cur)
}

func toItems(kind model.Resource, raws []map[string]any) []model.Item {
	out := make([]model.Item, 0, len(raws))
	for _, raw := range raws {
		out = append(out, toItem(kind, raw))
	}
	return out
}

func toItem(kind model.Resource, raw map[string]any) model.Item {
	it := model.Item{Kind: kind, Raw: raw, WebURL: str(raw, "web_url")}
	switch kind {
	case model.ResourceObjects:
		it.ID = str(raw, "id", "object_id")
		it.Title = first(str(raw, "plural_noun"), str(raw, "api_slug"))
		it.Subtitle = str(raw, "api_slug")
	case model.ResourceRecords:
		it.ID = str(raw, "id", "record_id")
		it.Title = first(recordName(raw), it.ID)
	case model.ResourceLists:
		it.ID = str(raw, "id", "list_id")
		it.Title = first(str(raw, "name"), str(raw, "api_slug"))
		it.Subtitle = str(raw, "api_slug")
	case model.ResourceEntries:
		it.ID = str(raw, "id", "entry_id")
		it.Title = first(str(raw, "parent_record_id"), it.ID)
		it.Subtitle = str(raw, "parent_object")
	case model.ResourceStatuses:
		it.ID = str(raw, "id", "status_id")
		it.Title = str(raw, "title")
	case model.ResourceNotes:
		it.ID = str(raw, "id", "note_id")
		it.Title = first(str(raw, "title"), "Untitled note")
		it.Subtitle = str(raw, "parent_object")
	case model.ResourceTasks:
		it.ID = str(raw, "id", "task_id")
		it.Title = first(firstLine(str(raw, "content_plaintext")), "Untitled task")
		it.Subtitle = str(raw, "deadline_at")
	case model.ResourceMeetings:
		it.ID = str(raw, "id", "meeting_id")
		it.Title = first(str(raw, "title"), "Untitled meeting")
		it.Subtitle = str(raw, "start", "datetime")
	case model.ResourceWebhooks:
		it.ID = str(raw, "id", "webhook_id")
		it.Title = first(str(raw, "target_url"), it.ID)
		it.Subtitle = str(raw, "status")
	}
	return it
}

// recordName picks the display name from a record's "name" attribute.
func recordName(raw map[string]any) string {
	values, _ := raw["values"].(map[string]any)
	names, _ := values["name"].([]any)
	for _, n := range names {
		m, ok := n.(map[string]any)
		if !ok {
			continue
		}
		if s := first(columns.Stringify(m["value"]), columns.Stringify(m["full_name"])); s != "" {
			return s
		}
	}
	return ""
}

func first(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
