package resources

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/attio-tui/attio-tui/internal/model"
	"github.com/attio-tui/attio-tui/internal/pagination"
)

func offsetQuery(req pagination.Request) url.Values {
	q := url.Values{"limit": []string{strconv.Itoa(req.RequestLimit)}}
	if req.HasOffset {
		q.Set("offset", strconv.Itoa(req.Offset))
	}
	return q
}

func offsetBody(req pagination.Request) map[string]any {
	return map[string]any{"limit": req.RequestLimit, "offset": req.Offset}
}

func finalize(kind model.Resource, raws []map[string]any, req pagination.Request) model.Page {
	p := pagination.FinalizeOffset(toItems(kind, raws), req.Limit, req.Offset)
	return model.Page{Items: p.Items, NextCursor: p.NextCursor}
}

// fetchAll is for endpoints that return the whole collection at once. The offset window
// is applied locally so paging still behaves the same.
func fetchAll(ctx context.Context, c API, path string, kind model.Resource, limit int, cursor string) (model.Page, error) {
	req := pagination.BuildOffsetRequest(limit, cursor, pagination.DefaultLimit)
	var env listEnvelope
	if err := c.Get(ctx, path, nil, &env); err != nil {
		return model.Page{}, err
	}
	return finalize(kind, pagination.Window(env.Data, req), req), nil
}

type objectsPager struct {
	api   API
	limit int
}

func (p objectsPager) FetchPage(ctx context.Context, _ model.DrillContext, cursor string) (model.Page, error) {
	return fetchAll(ctx, p.api, "/v2/objects", model.ResourceObjects, p.limit, cursor)
}

type recordsPager struct {
	api   API
	limit int
}

func (p recordsPager) FetchPage(ctx context.Context, dc model.DrillContext, cursor string) (model.Page, error) {
	slug := dc.Frame.ObjectSlug
	if slug == "" {
		return model.Page{}, errors.New("records: missing object")
	}
	req := pagination.BuildOffsetRequest(p.limit, cursor, pagination.DefaultLimit)
	var env listEnvelope
	if err := p.api.Query(ctx, "/v2/objects/"+url.PathEscape(slug)+"/records/query", offsetBody(req), &env); err != nil {
		return model.Page{}, err
	}
	return finalize(model.ResourceRecords, env.Data, req), nil
}

type listsPager struct {
	api   API
	limit int
}

func (p listsPager) FetchPage(ctx context.Context, _ model.DrillContext, cursor string) (model.Page, error) {
	return fetchAll(ctx, p.api, "/v2/lists", model.ResourceLists, p.limit, cursor)
}

type entriesPager struct {
	api   API
	limit int
}

func (p entriesPager) FetchPage(ctx context.Context, dc model.DrillContext, cursor string) (model.Page, error) {
	f := dc.Frame
	if f.ListID == "" {
		return model.Page{}, errors.New("entries: missing list")
	}
	req := pagination.BuildOffsetRequest(p.limit, cursor, pagination.DefaultLimit)
	body := offsetBody(req)
	if filter := statusFilter(f); filter != nil {
		body["filter"] = filter
	}
	var env listEnvelope
	if err := p.api.Query(ctx, "/v2/lists/"+url.PathEscape(f.ListID)+"/entries/query", body, &env); err != nil {
		return model.Page{}, err
	}
	return finalize(model.ResourceEntries, env.Data, req), nil
}

// statusFilter narrows entries to one status, matched by title.
func statusFilter(f model.Frame) map[string]any {
	if f.StatusAttribute == "" || (f.StatusID == "" && f.StatusTitle == "") {
		return nil
	}
	return map[string]any{f.StatusAttribute: first(f.StatusTitle, f.StatusID)}
}

type statusesPager struct {
	api   API
	limit int
}

func (p statusesPager) FetchPage(ctx context.Context, dc model.DrillContext, cursor string) (model.Page, error) {
	f := dc.Frame
	if f.ListID == "" || f.StatusAttribute == "" {
		return model.Page{}, errors.New("statuses: missing list or attribute")
	}
	path := "/v2/lists/" + url.PathEscape(f.ListID) + "/attributes/" + url.PathEscape(f.StatusAttribute) + "/statuses"
	return fetchAll(ctx, p.api, path, model.ResourceStatuses, p.limit, cursor)
}

type notesPager struct {
	api   API
	limit int
}

func (p notesPager) FetchPage(ctx context.Context, _ model.DrillContext, cursor string) (model.Page, error) {
	return getOffsetPage(ctx, p.api, "/v2/notes", model.ResourceNotes, p.limit, cursor)
}

type tasksPager struct {
	api   API
	limit int
}

func (p tasksPager) FetchPage(ctx context.Context, _ model.DrillContext, cursor string) (model.Page, error) {
	return getOffsetPage(ctx, p.api, "/v2/tasks", model.ResourceTasks, p.limit, cursor)
}

type webhooksPager struct {
	api   API
	limit int
}

func (p webhooksPager) FetchPage(ctx context.Context, _ model.DrillContext, cursor string) (model.Page, error) {
	return getOffsetPage(ctx, p.api, "/v2/webhooks", model.ResourceWebhooks, p.limit, cursor)
}

func getOffsetPage(ctx context.Context, c API, path string, kind model.Resource, limit int, cursor string) (model.Page, error) {
	req := pagination.BuildOffsetRequest(limit, cursor, pagination.DefaultLimit)
	var env listEnvelope
	if err := c.Get(ctx, path, offsetQuery(req), &env); err != nil {
		return model.Page{}, err
	}
	return finalize(kind, env.Data, req), nil
}

// meetingsPager trusts the server's next_cursor instead of over-fetching.
type meetingsPager struct {
	api   API
	limit int
}

func (p meetingsPager) FetchPage(ctx context.Context, _ model.DrillContext, cursor string) (model.Page, error) {
	limit := p.limit
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	q := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	var env struct {
		Data       []map[string]any `json:"data"`
		Pagination struct {
			NextCursor string `json:"next_cursor"`
		} `json:"pagination"`
	}
	if err := p.api.Get(ctx, "/v2/meetings", q, &env); err != nil {
		return model.Page{}, err
	}
	page := pagination.FromServerCursor(toItems(model.ResourceMeetings, env.Data), env.Pagination.NextCursor)
	return model.Page{Items: page.Items, NextCursor: page.NextCursor}, nil
}
