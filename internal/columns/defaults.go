package columns

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/attio-tui/attio-tui/internal/model"
)

// Extractor renders one cell for an item.
type Extractor func(model.Item) string

// Definition is a built-in column. Extractors only ever come from here.
type Definition struct {
	Attribute string
	Label     string
	Width     int
	Value     Extractor
}

const (
	genericKey       = "*"
	genericObjectKey = "object-*"
	objectKeyPrefix  = "object-"
)

var builtins = map[string][]Definition{
	"objects": {
		{Attribute: "plural_noun", Label: "Object", Width: 20, Value: field("plural_noun")},
		{Attribute: "api_slug", Label: "Slug", Width: 18, Value: field("api_slug")},
		{Attribute: "singular_noun", Label: "Singular", Width: 16, Value: field("singular_noun")},
		{Attribute: "object_id", Label: "ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	genericObjectKey: {
		{Attribute: "name", Label: "Name", Width: 28, Value: itemTitle},
		{Attribute: "record_id", Label: "Record ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	"object-companies": {
		{Attribute: "name", Label: "Name", Width: 28, Value: recordValue("name")},
		{Attribute: "domains", Label: "Domains", Width: 24, Value: recordValue("domains")},
		{Attribute: "description", Label: "Description", Width: 40, Value: recordValue("description")},
		{Attribute: "primary_location", Label: "Location", Width: 20, Value: recordValue("primary_location")},
		{Attribute: "record_id", Label: "Record ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	"object-people": {
		{Attribute: "name", Label: "Name", Width: 24, Value: recordValue("name")},
		{Attribute: "email_addresses", Label: "Email", Width: 28, Value: recordValue("email_addresses")},
		{Attribute: "job_title", Label: "Job title", Width: 20, Value: recordValue("job_title")},
		{Attribute: "phone_numbers", Label: "Phone", Width: 16, Value: recordValue("phone_numbers")},
		{Attribute: "record_id", Label: "Record ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	"object-deals": {
		{Attribute: "name", Label: "Deal", Width: 28, Value: recordValue("name")},
		{Attribute: "stage", Label: "Stage", Width: 16, Value: recordValue("stage")},
		{Attribute: "value", Label: "Value", Width: 14, Value: recordValue("value")},
		{Attribute: "owner", Label: "Owner", Width: 20, Value: recordValue("owner")},
		{Attribute: "record_id", Label: "Record ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	"lists": {
		{Attribute: "name", Label: "List", Width: 28, Value: field("name")},
		{Attribute: "api_slug", Label: "Slug", Width: 20, Value: field("api_slug")},
		{Attribute: "parent_object", Label: "Parent", Width: 16, Value: field("parent_object")},
		{Attribute: "list_id", Label: "ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	"list": {
		{Attribute: "entry", Label: "Entry", Width: 28, Value: itemTitle},
		{Attribute: "parent_object", Label: "Parent", Width: 16, Value: field("parent_object")},
		{Attribute: "parent_record_id", Label: "Record ID", Width: 36, Value: field("parent_record_id")},
		{Attribute: "entry_id", Label: "Entry ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	"list-statuses": {
		{Attribute: "title", Label: "Status", Width: 24, Value: field("title")},
		{Attribute: "is_archived", Label: "Archived", Width: 8, Value: field("is_archived")},
		{Attribute: "status_id", Label: "ID", Width: 36, Value: itemID},
	},
	"notes": {
		{Attribute: "title", Label: "Title", Width: 32, Value: field("title")},
		{Attribute: "parent_object", Label: "Parent", Width: 16, Value: field("parent_object")},
		{Attribute: "parent_record_id", Label: "Record ID", Width: 36, Value: field("parent_record_id")},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
		{Attribute: "note_id", Label: "ID", Width: 36, Value: itemID},
	},
	"tasks": {
		{Attribute: "content", Label: "Task", Width: 40, Value: field("content_plaintext")},
		{Attribute: "deadline_at", Label: "Deadline", Width: 20, Value: field("deadline_at")},
		{Attribute: "is_completed", Label: "Done", Width: 5, Value: field("is_completed")},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
		{Attribute: "task_id", Label: "ID", Width: 36, Value: itemID},
	},
	"meetings": {
		{Attribute: "title", Label: "Meeting", Width: 32, Value: field("title")},
		{Attribute: "start", Label: "Start", Width: 20, Value: field("start", "datetime")},
		{Attribute: "end", Label: "End", Width: 20, Value: field("end", "datetime")},
		{Attribute: "meeting_id", Label: "ID", Width: 36, Value: itemID},
	},
	"webhooks": {
		{Attribute: "target_url", Label: "Target", Width: 40, Value: field("target_url")},
		{Attribute: "status", Label: "Status", Width: 10, Value: field("status")},
		{Attribute: "subscriptions", Label: "Events", Width: 28, Value: subscriptions},
		{Attribute: "webhook_id", Label: "ID", Width: 36, Value: itemID},
		{Attribute: "created_at", Label: "Created", Width: 20, Value: field("created_at")},
	},
	genericKey: {
		{Attribute: "title", Label: "Title", Width: 32, Value: itemTitle},
		{Attribute: "subtitle", Label: "Details", Width: 32, Value: itemSubtitle},
		{Attribute: "id", Label: "ID", Width: 36, Value: itemID},
	},
}

// Definitions returns the built-in definitions for key, falling back to the generic
// object set for unknown "object-" keys and to the generic set for anything else.
func Definitions(key string) []Definition {
	if defs, ok := builtins[key]; ok && key != genericKey && key != genericObjectKey {
		return defs
	}
	if strings.HasPrefix(key, objectKeyPrefix) {
		return builtins[genericObjectKey]
	}
	return builtins[genericKey]
}

// Keys lists the entity keys that have specific built-in defaults.
func Keys() []string {
	out := make([]string, 0, len(builtins))
	for k := range builtins {
		if k == genericKey || k == genericObjectKey {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func itemID(it model.Item) string       { return it.ID }
func itemTitle(it model.Item) string    { return it.Title }
func itemSubtitle(it model.Item) string { return it.Subtitle }

func field(path ...string) Extractor {
	return func(it model.Item) string {
		var cur any = it.Raw
		for _, p := range path {
			m, ok := cur.(map[string]any)
			if !ok {
				return ""
			}
			cur = m[p]
		}
		return Stringify(cur)
	}
}

func subscriptions(it model.Item) string {
	subs, _ := it.Raw["subscriptions"].([]any)
	names := make([]string, 0, len(subs))
	for _, s := range subs {
		if m, ok := s.(map[string]any); ok {
			if ev := Stringify(m["event_type"]); ev != "" {
				names = append(names, ev)
			}
		}
	}
	return strings.Join(names, ", ")
}

// recordValue reads a record attribute from the "values" map. Attribute values are
// arrays of typed value objects; the first recognizable field of each is shown.
func recordValue(attr string) Extractor {
	return func(it model.Item) string {
		values, _ := it.Raw["values"].(map[string]any)
		entries, _ := values[attr].([]any)
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			if s := valueText(e); s != "" {
				out = append(out, s)
			}
		}
		return strings.Join(out, ", ")
	}
}

var valueKeys = []string{
	"value",
	"full_name",
	"domain",
	"email_address",
	"original_phone_number",
	"currency_value",
	"locality",
	"target_record_id",
	"referenced_actor_id",
}

func valueText(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return Stringify(v)
	}
	for _, k := range valueKeys {
		if s := Stringify(m[k]); s != "" {
			return s
		}
	}
	for _, nested := range []string{"status", "option"} {
		if inner, ok := m[nested].(map[string]any); ok {
			if s := Stringify(inner["title"]); s != "" {
				return s
			}
		}
	}
	return ""
}

// Stringify renders scalar JSON values; composite values render empty.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
