package resources

import (
	"net/url"

	"github.com/attio-tui/attio-tui/internal/model"
)

// ItemPath is the REST path that returns it on its own, or "" when there is none.
func ItemPath(dc model.DrillContext, it model.Item) string {
	id := url.PathEscape(it.ID)
	if it.ID == "" {
		return ""
	}
	switch dc.Resource() {
	case model.ResourceObjects:
		return "/v2/objects/" + id
	case model.ResourceRecords:
		return "/v2/objects/" + url.PathEscape(dc.Frame.ObjectSlug) + "/records/" + id
	case model.ResourceLists:
		return "/v2/lists/" + id
	case model.ResourceEntries:
		return "/v2/lists/" + url.PathEscape(dc.Frame.ListID) + "/entries/" + id
	case model.ResourceStatuses:
		return "/v2/lists/" + url.PathEscape(dc.Frame.ListID) + "/attributes/" + url.PathEscape(dc.Frame.StatusAttribute) + "/statuses"
	case model.ResourceNotes:
		return "/v2/notes/" + id
	case model.ResourceTasks:
		return "/v2/tasks/" + id
	case model.ResourceMeetings:
		return "/v2/meetings/" + id
	case model.ResourceWebhooks:
		return "/v2/webhooks/" + id
	}
	return ""
}
