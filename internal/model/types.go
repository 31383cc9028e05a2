package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type CategoryKind int

const (
	CategoryObject CategoryKind = iota
	CategoryList
	CategoryLists
	CategoryObjects
	CategoryNotes
	CategoryTasks
	CategoryMeetings
	CategoryWebhooks
)

var categoryNames = map[CategoryKind]string{
	CategoryObject:   "object",
	CategoryList:     "list",
	CategoryLists:    "lists",
	CategoryObjects:  "objects",
	CategoryNotes:    "notes",
	CategoryTasks:    "tasks",
	CategoryMeetings: "meetings",
	CategoryWebhooks: "webhooks",
}

func (k CategoryKind) String() string {
	if s, ok := categoryNames[k]; ok {
		return s
	}
	return "unknown"
}

// Category is a top-level navigator entry. Only CategoryObject carries a payload (Slug).
type Category struct {
	Kind CategoryKind `json:"kind"`
	Slug string       `json:"slug,omitempty"`
}

func ObjectCategory(slug string) Category {
	return Category{Kind: CategoryObject, Slug: strings.TrimSpace(slug)}
}

func (c Category) String() string {
	if c.Kind == CategoryObject {
		return "object:" + c.Slug
	}
	return c.Kind.String()
}

func (c Category) Label() string {
	switch c.Kind {
	case CategoryObject:
		return TitleCase(c.Slug)
	case CategoryList:
		return "List browser"
	default:
		return TitleCase(c.Kind.String())
	}
}

// ParseCategory accepts the String() form ("notes", "object:companies").
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if slug, ok := strings.CutPrefix(s, "object:"); ok {
		if strings.TrimSpace(slug) == "" {
			return Category{}, false
		}
		return ObjectCategory(slug), true
	}
	for k, name := range categoryNames {
		if k != CategoryObject && name == s {
			return Category{Kind: k}, true
		}
	}
	return Category{}, false
}

// NavigatorCategories is the fixed navigator order.
func NavigatorCategories() []Category {
	return []Category{
		{Kind: CategoryObjects},
		ObjectCategory("companies"),
		ObjectCategory("people"),
		ObjectCategory("deals"),
		{Kind: CategoryList},
		{Kind: CategoryLists},
		{Kind: CategoryNotes},
		{Kind: CategoryTasks},
		{Kind: CategoryMeetings},
		{Kind: CategoryWebhooks},
	}
}

type Level int

const (
	LevelCollection Level = iota
	LevelObjects
	LevelRecords
	LevelLists
	LevelEntries
	LevelStatuses
)

func (l Level) String() string {
	switch l {
	case LevelObjects:
		return "objects"
	case LevelRecords:
		return "records"
	case LevelLists:
		return "lists"
	case LevelEntries:
		return "entries"
	case LevelStatuses:
		return "statuses"
	default:
		return "collection"
	}
}

// Frame is one level of a drill path together with the payload that level needs.
type Frame struct {
	Level           Level  `json:"level"`
	ObjectSlug      string `json:"objectSlug,omitempty"`
	ObjectName      string `json:"objectName,omitempty"`
	ListID          string `json:"listId,omitempty"`
	ListName        string `json:"listName,omitempty"`
	StatusAttribute string `json:"statusAttribute,omitempty"`
	StatusID        string `json:"statusId,omitempty"`
	StatusTitle     string `json:"statusTitle,omitempty"`
}

// RootFrame returns the level a category starts at.
func RootFrame(c Category) Frame {
	switch c.Kind {
	case CategoryObjects:
		return Frame{Level: LevelObjects}
	case CategoryObject:
		return Frame{Level: LevelRecords, ObjectSlug: c.Slug, ObjectName: TitleCase(c.Slug)}
	case CategoryList, CategoryLists:
		return Frame{Level: LevelLists}
	default:
		return Frame{Level: LevelCollection}
	}
}

type Resource int

const (
	ResourceObjects Resource = iota
	ResourceRecords
	ResourceLists
	ResourceEntries
	ResourceStatuses
	ResourceNotes
	ResourceTasks
	ResourceMeetings
	ResourceWebhooks
)

func (r Resource) String() string {
	switch r {
	case ResourceObjects:
		return "objects"
	case ResourceRecords:
		return "records"
	case ResourceLists:
		return "lists"
	case ResourceEntries:
		return "entries"
	case ResourceStatuses:
		return "statuses"
	case ResourceNotes:
		return "notes"
	case ResourceTasks:
		return "tasks"
	case ResourceMeetings:
		return "meetings"
	case ResourceWebhooks:
		return "webhooks"
	default:
		return "unknown"
	}
}

// DrillContext is everything a fetch needs to know about where the user is.
type DrillContext struct {
	Category Category `json:"category"`
	Frame    Frame    `json:"frame"`
}

func (c DrillContext) Resource() Resource {
	switch c.Frame.Level {
	case LevelObjects:
		return ResourceObjects
	case LevelRecords:
		return ResourceRecords
	case LevelLists:
		return ResourceLists
	case LevelEntries:
		return ResourceEntries
	case LevelStatuses:
		return ResourceStatuses
	}
	switch c.Category.Kind {
	case CategoryNotes:
		return ResourceNotes
	case CategoryTasks:
		return ResourceTasks
	case CategoryMeetings:
		return ResourceMeetings
	case CategoryWebhooks:
		return ResourceWebhooks
	}
	return ResourceObjects
}

// EntityKey selects the column set for the context, e.g. "object-companies", "list".
func (c DrillContext) EntityKey() string {
	switch c.Resource() {
	case ResourceRecords:
		return "object-" + c.Frame.ObjectSlug
	case ResourceEntries:
		return "list"
	case ResourceStatuses:
		return "list-statuses"
	default:
		return c.Resource().String()
	}
}

// Label is a breadcrumb for headers and debug output.
func (c DrillContext) Label() string {
	parts := []string{c.Category.Label()}
	switch c.Frame.Level {
	case LevelRecords:
		if c.Category.Kind == CategoryObjects {
			parts = append(parts, firstNonEmpty(c.Frame.ObjectName, c.Frame.ObjectSlug))
		}
	case LevelEntries:
		parts = append(parts, firstNonEmpty(c.Frame.ListName, c.Frame.ListID))
		if c.Frame.StatusTitle != "" {
			parts = append(parts, c.Frame.StatusTitle)
		}
	case LevelStatuses:
		parts = append(parts, firstNonEmpty(c.Frame.ListName, c.Frame.ListID), "statuses")
	}
	return strings.Join(parts, " / ")
}

type Item struct {
	Kind     Resource       `json:"kind"`
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle,omitempty"`
	WebURL   string         `json:"webUrl,omitempty"`
	Raw      map[string]any `json:"raw,omitempty"`
}

type Page struct {
	Items      []Item `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// Attribute describes one attribute of an object or list schema.
type Attribute struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// TitleCase turns "job_title" or "job-title" into "Job Title".
func TitleCase(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = string(unicode.ToUpper(r)) + f[size:]
	}
	return strings.Join(fields, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
